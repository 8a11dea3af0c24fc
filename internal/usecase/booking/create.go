package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/studysync/tutor-scheduler/internal/audit"
	"github.com/studysync/tutor-scheduler/internal/clock"
	domain "github.com/studysync/tutor-scheduler/internal/domain/booking"
	"github.com/studysync/tutor-scheduler/internal/events"
	"github.com/studysync/tutor-scheduler/internal/httperr"
	"github.com/studysync/tutor-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	StudentID uint
	TeacherID uint

	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM
	DurationMin int    // 0 means the default lesson length
	Note        string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	audit  auditor
	events publisher
	now    clock.Clock
}

func NewCreateBooking(
	repo domain.Repository,
	audit auditor,
	events publisher,
	now clock.Clock,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		audit:  audit,
		events: events,
		now:    now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	teacher, err := uc.repo.GetTeacherByID(ctx, in.TeacherID)
	if err != nil {
		return nil, httperr.ErrBusiness("teacher_not_found")
	}

	duration := in.DurationMin
	if duration == 0 {
		duration = domain.DefaultSlotMin
	}

	candidate := domain.Booking{
		TeacherID:   teacher.ID,
		StudentID:   in.StudentID,
		Date:        in.Date,
		StartTime:   in.StartTime,
		DurationMin: duration,
		Status:      domain.InitialStatus(),
	}

	if err := domain.ValidateDate(in.Date); err != nil {
		return nil, err
	}

	// No booking in the past; day keys sort lexically.
	if in.Date < clock.Today(uc.now) {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	wh, err := uc.repo.GetWorkingHours(ctx, teacher.ID)
	if err != nil {
		wh = nil // fall back to the default window
	}

	window := domain.WindowOf(wh)
	ok, err := domain.WithinWindow(candidate, window)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	b := &models.Booking{
		PublicID:    uuid.NewString(),
		TeacherID:   teacher.ID,
		StudentID:   in.StudentID,
		Date:        in.Date,
		StartTime:   in.StartTime,
		DurationMin: duration,
		Status:      string(domain.InitialStatus()),
		Note:        in.Note,
	}

	// The repository re-runs the conflict predicate inside the insert
	// transaction, so a race between two students surfaces as ConflictError.
	if err := uc.repo.InsertIfNoConflict(ctx, b); err != nil {
		return nil, err
	}

	uc.events.Publish(events.Event{
		Kind:      events.BookingCreated,
		BookingID: b.ID,
		TeacherID: b.TeacherID,
		Date:      b.Date,
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.StudentID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
