package booking

import (
	"context"

	"github.com/studysync/tutor-scheduler/internal/audit"
	"github.com/studysync/tutor-scheduler/internal/clock"
	domain "github.com/studysync/tutor-scheduler/internal/domain/booking"
	"github.com/studysync/tutor-scheduler/internal/events"
	"github.com/studysync/tutor-scheduler/internal/httperr"
	"github.com/studysync/tutor-scheduler/internal/models"
)

type CancelBooking struct {
	repo   domain.Repository
	audit  auditor
	events publisher
	now    clock.Clock
}

func NewCancelBooking(
	repo domain.Repository,
	audit auditor,
	events publisher,
	now clock.Clock,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		audit:  audit,
		events: events,
		now:    now,
	}
}

// Execute cancels a request the student no longer wants. Only the
// requesting student or an admin may cancel.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	actorID uint,
	actorRole string,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if b.StudentID != actorID && actorRole != models.RoleAdmin {
		return nil, httperr.ErrBusiness("not_allowed")
	}

	if err := domain.Cancel(b, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.events.Publish(events.Event{
		Kind:      events.BookingCancelled,
		BookingID: b.ID,
		TeacherID: b.TeacherID,
		Date:      b.Date,
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
