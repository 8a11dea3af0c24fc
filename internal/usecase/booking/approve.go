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

type ApproveBooking struct {
	repo   domain.Repository
	audit  auditor
	events publisher
	now    clock.Clock
}

func NewApproveBooking(
	repo domain.Repository,
	audit auditor,
	events publisher,
	now clock.Clock,
) *ApproveBooking {
	return &ApproveBooking{
		repo:   repo,
		audit:  audit,
		events: events,
		now:    now,
	}
}

// Execute approves a pending request. Only the booked teacher or an admin
// may approve.
func (uc *ApproveBooking) Execute(
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

	if err := domain.Approve(b, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.events.Publish(events.Event{
		Kind:      events.BookingApproved,
		BookingID: b.ID,
		TeacherID: b.TeacherID,
		Date:      b.Date,
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "booking_approved",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
