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

type CompleteBooking struct {
	repo   domain.Repository
	audit  auditor
	events publisher
	now    clock.Clock
}

func NewCompleteBooking(
	repo domain.Repository,
	audit auditor,
	events publisher,
	now clock.Clock,
) *CompleteBooking {
	return &CompleteBooking{
		repo:   repo,
		audit:  audit,
		events: events,
		now:    now,
	}
}

// Execute marks an approved lesson as held. Only the booked teacher or an
// admin may complete.
func (uc *CompleteBooking) Execute(
	ctx context.Context,
	actorID uint,
	actorRole string,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if b.TeacherID != actorID && actorRole != models.RoleAdmin {
		return nil, httperr.ErrBusiness("not_allowed")
	}

	if err := domain.Complete(b, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.events.Publish(events.Event{
		Kind:      events.BookingCompleted,
		BookingID: b.ID,
		TeacherID: b.TeacherID,
		Date:      b.Date,
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "booking_completed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
