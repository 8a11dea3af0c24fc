package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/studysync/tutor-scheduler/internal/domain/booking"
	"github.com/studysync/tutor-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *BookingGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *BookingGormRepository) GetTeacherByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RoleTeacher).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

// InsertIfNoConflict locks the teacher's rows for the day, re-runs the
// conflict predicate on the locked snapshot and only then inserts. Two
// concurrent requests for the same slot serialize on the row lock, so the
// second one sees the first one's insert and gets ConflictError.
func (r *BookingGormRepository) InsertIfNoConflict(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var rows []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"teacher_id = ? AND date = ? AND status NOT IN ?",
				b.TeacherID, b.Date,
				[]string{string(domain.StatusCancelled), string(domain.StatusRejected)},
			).
			Find(&rows).Error; err != nil {
			return err
		}

		conflict, err := domain.HasConflict(domain.Snapshot(rows), domain.FromModel(b))
		if err != nil {
			return err
		}
		if conflict {
			return domain.ConflictError{
				TeacherID: b.TeacherID,
				Date:      b.Date,
				StartTime: b.StartTime,
			}
		}

		return tx.Create(b).Error
	})
}

// --------------------------------------------------
// Booking (snapshot)
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	teacherID uint,
	date string,
) ([]models.Booking, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND date = ?", teacherID, date).
		Order("date ASC, start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *BookingGormRepository) ListBookingsForRange(
	ctx context.Context,
	teacherID uint,
	fromDate string,
	toDate string,
) ([]models.Booking, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"teacher_id = ? AND date >= ? AND date <= ?",
			teacherID, fromDate, toDate,
		).
		Order("date ASC, start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Booking (sweep)
// --------------------------------------------------

func (r *BookingGormRepository) ListApprovedBefore(
	ctx context.Context,
	date string,
) ([]models.Booking, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"status = ? AND date < ?",
			string(domain.StatusApproved), date,
		).
		Order("date ASC, start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) GetWorkingHours(
	ctx context.Context,
	teacherID uint,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
