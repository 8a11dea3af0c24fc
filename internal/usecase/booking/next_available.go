package booking

import (
	"context"
	"time"

	domain "github.com/studysync/tutor-scheduler/internal/domain/booking"
	"github.com/studysync/tutor-scheduler/internal/httperr"
)

type NextAvailable struct {
	repo domain.Repository

	// upper bound on any horizon a client may ask for
	maxHorizonDays int
}

func NewNextAvailable(
	repo domain.Repository,
	maxHorizonDays int,
) *NextAvailable {
	return &NextAvailable{
		repo:           repo,
		maxHorizonDays: maxHorizonDays,
	}
}

// Execute finds the first free slot from fromDate onwards, scanning at most
// horizonDays days. Returns nil when the teacher is fully booked for the
// whole horizon.
func (uc *NextAvailable) Execute(
	ctx context.Context,
	teacherID uint,
	fromDate string,
	horizonDays int,
) (*domain.TimeSlot, error) {

	if horizonDays <= 0 {
		return nil, domain.ErrValidation("horizon_days", "must be positive")
	}
	if horizonDays > uc.maxHorizonDays {
		horizonDays = uc.maxHorizonDays
	}

	if err := domain.ValidateDate(fromDate); err != nil {
		return nil, err
	}

	teacher, err := uc.repo.GetTeacherByID(ctx, teacherID)
	if err != nil {
		return nil, httperr.ErrBusiness("teacher_not_found")
	}

	wh, err := uc.repo.GetWorkingHours(ctx, teacher.ID)
	if err != nil {
		wh = nil
	}

	from, _ := time.Parse(domain.DateLayout, fromDate)
	toDate := from.AddDate(0, 0, horizonDays-1).Format(domain.DateLayout)

	rows, err := uc.repo.ListBookingsForRange(ctx, teacher.ID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	return domain.NextAvailableSlot(
		domain.Snapshot(rows),
		teacher.ID,
		fromDate,
		domain.WindowOf(wh),
		horizonDays,
	)
}
