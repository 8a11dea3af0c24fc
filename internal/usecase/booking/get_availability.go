package booking

import (
	"context"

	"github.com/studysync/tutor-scheduler/internal/cache"
	domain "github.com/studysync/tutor-scheduler/internal/domain/booking"
	"github.com/studysync/tutor-scheduler/internal/httperr"
)

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.Availability
}

func NewGetAvailability(
	repo domain.Repository,
	cache *cache.Availability,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: cache,
	}
}

// Execute lists the free slots of one teacher on one day. Results are
// cached per teacher and day; booking events invalidate the entry.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	teacherID uint,
	date string,
) ([]domain.TimeSlot, error) {

	if err := domain.ValidateDate(date); err != nil {
		return nil, err
	}

	teacher, err := uc.repo.GetTeacherByID(ctx, teacherID)
	if err != nil {
		return nil, httperr.ErrBusiness("teacher_not_found")
	}

	if slots, ok := uc.cache.Get(ctx, teacher.ID, date); ok {
		return slots, nil
	}

	wh, err := uc.repo.GetWorkingHours(ctx, teacher.ID)
	if err != nil {
		wh = nil // default window applies
	}

	rows, err := uc.repo.ListBookingsForDay(ctx, teacher.ID, date)
	if err != nil {
		return nil, err
	}

	slots, err := domain.AvailableSlots(
		domain.Snapshot(rows),
		teacher.ID,
		date,
		domain.WindowOf(wh),
	)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(ctx, teacher.ID, date, slots)

	return slots, nil
}
