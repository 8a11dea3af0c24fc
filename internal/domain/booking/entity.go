package booking

import (
	"time"

	"github.com/studysync/tutor-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================
//
// Each action guards the status change against the state machine before
// mutating the model, so a terminal booking can never be overwritten.

func Approve(b *models.Booking, now time.Time) error {
	if err := CanApprove(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusApproved)
	b.ApprovedAt = &now
	return nil
}

func Reject(b *models.Booking, now time.Time) error {
	if err := CanReject(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusRejected)
	b.RejectedAt = &now
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

// Snapshot converts persisted rows into the engine's value form.
func Snapshot(rows []models.Booking) []Booking {
	out := make([]Booking, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(&r))
	}
	return out
}

func FromModel(m *models.Booking) Booking {
	return Booking{
		TeacherID:   m.TeacherID,
		StudentID:   m.StudentID,
		Date:        m.Date,
		StartTime:   m.StartTime,
		DurationMin: m.DurationMin,
		Status:      Status(m.Status),
	}
}

// WindowOf maps a teacher's configured hours onto the engine's working-hours
// value, falling back to the product default (9-17, half-hour slots) when
// the teacher has none configured. An explicitly inactive row yields an
// empty window, so the teacher has no slots at all.
func WindowOf(wh *models.WorkingHours) WorkingHours {
	if wh == nil {
		return WorkingHours{StartHour: 9, EndHour: 17, SlotMin: DefaultSlotMin}
	}
	if !wh.Active {
		return WorkingHours{}
	}
	return WorkingHours{
		StartHour: wh.StartHour,
		EndHour:   wh.EndHour,
		SlotMin:   wh.SlotMin,
	}
}
