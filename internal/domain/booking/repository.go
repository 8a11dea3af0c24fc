package booking

import (
	"context"

	"github.com/studysync/tutor-scheduler/internal/models"
)

type Repository interface {
	// -------- User --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetTeacherByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Booking (create / conflict) --------

	// InsertIfNoConflict re-checks the conflict predicate inside the same
	// transaction that performs the insert and returns ConflictError when
	// the slot was taken between check and commit.
	InsertIfNoConflict(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (snapshot) --------
	ListBookingsForDay(
		ctx context.Context,
		teacherID uint,
		date string,
	) ([]models.Booking, error)

	ListBookingsForRange(
		ctx context.Context,
		teacherID uint,
		fromDate string,
		toDate string,
	) ([]models.Booking, error)

	// -------- Booking (state change) --------
	GetBookingByID(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (sweep) --------

	// ListApprovedBefore returns approved bookings on days strictly before
	// the given day key. Day keys sort lexically, so the comparison is done
	// in SQL.
	ListApprovedBefore(
		ctx context.Context,
		date string,
	) ([]models.Booking, error)

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		teacherID uint,
	) (*models.WorkingHours, error)
}
