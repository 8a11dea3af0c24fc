package booking

import (
	"context"

	"github.com/studysync/tutor-scheduler/internal/audit"
	"github.com/studysync/tutor-scheduler/internal/clock"
	domain "github.com/studysync/tutor-scheduler/internal/domain/booking"
	"github.com/studysync/tutor-scheduler/internal/events"
)

type CompletePastBookings struct {
	repo   domain.Repository
	audit  auditor
	events publisher
	now    clock.Clock
}

func NewCompletePastBookings(
	repo domain.Repository,
	audit auditor,
	events publisher,
	now clock.Clock,
) *CompletePastBookings {
	return &CompletePastBookings{
		repo:   repo,
		audit:  audit,
		events: events,
		now:    now,
	}
}

// Execute promotes approved bookings on past days to completed. Returns how
// many were promoted. Called periodically by the sweeper in cmd/api.
func (uc *CompletePastBookings) Execute(ctx context.Context) (int, error) {

	rows, err := uc.repo.ListApprovedBefore(ctx, clock.Today(uc.now))
	if err != nil {
		return 0, err
	}

	promoted := 0
	for i := range rows {
		b := &rows[i]

		if err := domain.Complete(b, uc.now()); err != nil {
			continue
		}

		if err := uc.repo.UpdateBooking(ctx, b); err != nil {
			return promoted, err
		}

		uc.events.Publish(events.Event{
			Kind:      events.BookingCompleted,
			BookingID: b.ID,
			TeacherID: b.TeacherID,
			Date:      b.Date,
		})

		uc.audit.Dispatch(audit.Event{
			Action:   "booking_auto_completed",
			Entity:   "booking",
			EntityID: &b.ID,
		})

		promoted++
	}

	return promoted, nil
}
