package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/studysync/tutor-scheduler/internal/audit"
	"github.com/studysync/tutor-scheduler/internal/clock"
	domain "github.com/studysync/tutor-scheduler/internal/domain/booking"
	"github.com/studysync/tutor-scheduler/internal/events"
	"github.com/studysync/tutor-scheduler/internal/httperr"
	"github.com/studysync/tutor-scheduler/internal/models"
)

// ======================================================
// FAKES
// ======================================================

type fakeRepo struct {
	users        map[uint]*models.User
	workingHours map[uint]*models.WorkingHours
	bookings     []*models.Booking
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:        map[uint]*models.User{},
		workingHours: map[uint]*models.WorkingHours{},
		nextID:       1,
	}
}

func (r *fakeRepo) addUser(id uint, role string) *models.User {
	u := &models.User{ID: id, Role: role}
	r.users[id] = u
	return u
}

func (r *fakeRepo) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetTeacherByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok && u.Role == models.RoleTeacher {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) InsertIfNoConflict(_ context.Context, b *models.Booking) error {
	var sameDay []models.Booking
	for _, ex := range r.bookings {
		if ex.TeacherID == b.TeacherID && ex.Date == b.Date {
			sameDay = append(sameDay, *ex)
		}
	}

	conflict, err := domain.HasConflict(domain.Snapshot(sameDay), domain.FromModel(b))
	if err != nil {
		return err
	}
	if conflict {
		return domain.ConflictError{TeacherID: b.TeacherID, Date: b.Date, StartTime: b.StartTime}
	}

	b.ID = r.nextID
	r.nextID++
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeRepo) ListBookingsForDay(_ context.Context, teacherID uint, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.TeacherID == teacherID && b.Date == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBookingsForRange(_ context.Context, teacherID uint, fromDate, toDate string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.TeacherID == teacherID && b.Date >= fromDate && b.Date <= toDate {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetBookingByID(_ context.Context, id uint) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	for _, ex := range r.bookings {
		if ex.ID == b.ID {
			*ex = *b
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRepo) ListApprovedBefore(_ context.Context, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == string(domain.StatusApproved) && b.Date < date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetWorkingHours(_ context.Context, teacherID uint) (*models.WorkingHours, error) {
	if wh, ok := r.workingHours[teacherID]; ok {
		return wh, nil
	}
	return nil, gorm.ErrRecordNotFound
}

var _ domain.Repository = (*fakeRepo)(nil)

type recorder struct {
	audits []audit.Event
	events []events.Event
}

func (rec *recorder) Dispatch(ev audit.Event) { rec.audits = append(rec.audits, ev) }
func (rec *recorder) Publish(ev events.Event) { rec.events = append(rec.events, ev) }

func fixedClock() clock.Clock {
	return func() time.Time {
		return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	}
}

func setup() (*fakeRepo, *recorder, clock.Clock) {
	repo := newFakeRepo()
	repo.addUser(1, models.RoleTeacher)
	repo.addUser(2, models.RoleStudent)
	repo.addUser(3, models.RoleAdmin)
	return repo, &recorder{}, fixedClock()
}

// ======================================================
// CREATE
// ======================================================

func TestCreateBooking(t *testing.T) {
	repo, rec, now := setup()
	uc := NewCreateBooking(repo, rec, rec, now)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		StudentID: 2,
		TeacherID: 1,
		Date:      "2026-09-01",
		StartTime: "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), b.Status)
	assert.Equal(t, 30, b.DurationMin, "duration defaults to 30")
	assert.NotEmpty(t, b.PublicID)

	require.Len(t, rec.events, 1)
	assert.Equal(t, events.BookingCreated, rec.events[0].Kind)
	require.Len(t, rec.audits, 1)
	assert.Equal(t, "booking_created", rec.audits[0].Action)
}

func TestCreateBooking_ConflictSurfaces(t *testing.T) {
	repo, rec, now := setup()
	uc := NewCreateBooking(repo, rec, rec, now)

	in := CreateBookingInput{
		StudentID: 2,
		TeacherID: 1,
		Date:      "2026-09-01",
		StartTime: "10:00",
	}

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))

	// overlapping but not identical
	in.StartTime = "10:15"
	_, err = uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))

	// back-to-back is allowed
	in.StartTime = "10:30"
	_, err = uc.Execute(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateBooking_UnknownTeacher(t *testing.T) {
	repo, rec, now := setup()
	uc := NewCreateBooking(repo, rec, rec, now)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		StudentID: 2,
		TeacherID: 99,
		Date:      "2026-09-01",
		StartTime: "10:00",
	})
	assert.True(t, httperr.IsBusiness(err, "teacher_not_found"))

	// a student id is not a teacher id
	_, err = uc.Execute(context.Background(), CreateBookingInput{
		StudentID: 2,
		TeacherID: 2,
		Date:      "2026-09-01",
		StartTime: "10:00",
	})
	assert.True(t, httperr.IsBusiness(err, "teacher_not_found"))
}

func TestCreateBooking_PastDate(t *testing.T) {
	repo, rec, now := setup()
	uc := NewCreateBooking(repo, rec, rec, now)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		StudentID: 2,
		TeacherID: 1,
		Date:      "2026-08-31",
		StartTime: "10:00",
	})
	assert.True(t, httperr.IsBusiness(err, "date_in_past"))
}

func TestCreateBooking_OutsideWorkingHours(t *testing.T) {
	repo, rec, now := setup()
	repo.workingHours[1] = &models.WorkingHours{
		TeacherID: 1, StartHour: 9, EndHour: 12, SlotMin: 30, Active: true,
	}
	uc := NewCreateBooking(repo, rec, rec, now)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		StudentID: 2,
		TeacherID: 1,
		Date:      "2026-09-01",
		StartTime: "14:00",
	})
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}

func TestCreateBooking_InvalidInput(t *testing.T) {
	repo, rec, now := setup()
	uc := NewCreateBooking(repo, rec, rec, now)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		StudentID: 2,
		TeacherID: 1,
		Date:      "2026-09-01",
		StartTime: "not-a-time",
	})
	assert.True(t, domain.IsValidation(err))

	_, err = uc.Execute(context.Background(), CreateBookingInput{
		StudentID: 2,
		TeacherID: 1,
		Date:      "tomorrow",
		StartTime: "10:00",
	})
	assert.True(t, domain.IsValidation(err))
}

// ======================================================
// TRANSITIONS
// ======================================================

func createPending(t *testing.T, repo *fakeRepo, rec *recorder, now clock.Clock) *models.Booking {
	t.Helper()

	uc := NewCreateBooking(repo, rec, rec, now)
	b, err := uc.Execute(context.Background(), CreateBookingInput{
		StudentID: 2,
		TeacherID: 1,
		Date:      "2026-09-02",
		StartTime: "10:00",
	})
	require.NoError(t, err)
	return b
}

func TestApproveBooking(t *testing.T) {
	repo, rec, now := setup()
	b := createPending(t, repo, rec, now)

	uc := NewApproveBooking(repo, rec, rec, now)

	// the wrong teacher may not approve
	_, err := uc.Execute(context.Background(), 42, models.RoleTeacher, b.ID)
	assert.True(t, httperr.IsBusiness(err, "not_allowed"))

	// the booked teacher may
	got, err := uc.Execute(context.Background(), 1, models.RoleTeacher, b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusApproved), got.Status)
	assert.NotNil(t, got.ApprovedAt)

	// approving twice hits the state machine
	_, err = uc.Execute(context.Background(), 1, models.RoleTeacher, b.ID)
	assert.True(t, domain.IsInvalidTransition(err))
}

func TestApproveBooking_AdminOverride(t *testing.T) {
	repo, rec, now := setup()
	b := createPending(t, repo, rec, now)

	uc := NewApproveBooking(repo, rec, rec, now)

	got, err := uc.Execute(context.Background(), 3, models.RoleAdmin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusApproved), got.Status)
}

func TestCancelBooking_OnlyRequester(t *testing.T) {
	repo, rec, now := setup()
	b := createPending(t, repo, rec, now)

	uc := NewCancelBooking(repo, rec, rec, now)

	// the teacher is not the requester
	_, err := uc.Execute(context.Background(), 1, models.RoleTeacher, b.ID)
	assert.True(t, httperr.IsBusiness(err, "not_allowed"))

	got, err := uc.Execute(context.Background(), 2, models.RoleStudent, b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
}

func TestRejectedBookingIsFinal(t *testing.T) {
	repo, rec, now := setup()
	b := createPending(t, repo, rec, now)

	reject := NewRejectBooking(repo, rec, rec, now)
	_, err := reject.Execute(context.Background(), 1, models.RoleTeacher, b.ID)
	require.NoError(t, err)

	approve := NewApproveBooking(repo, rec, rec, now)
	_, err = approve.Execute(context.Background(), 1, models.RoleTeacher, b.ID)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidTransition(err))

	cancel := NewCancelBooking(repo, rec, rec, now)
	_, err = cancel.Execute(context.Background(), 2, models.RoleStudent, b.ID)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidTransition(err))
}

func TestCompleteBooking_RequiresApproved(t *testing.T) {
	repo, rec, now := setup()
	b := createPending(t, repo, rec, now)

	complete := NewCompleteBooking(repo, rec, rec, now)
	_, err := complete.Execute(context.Background(), 1, models.RoleTeacher, b.ID)
	assert.True(t, domain.IsInvalidTransition(err), "pending cannot jump to completed")

	approve := NewApproveBooking(repo, rec, rec, now)
	_, err = approve.Execute(context.Background(), 1, models.RoleTeacher, b.ID)
	require.NoError(t, err)

	got, err := complete.Execute(context.Background(), 1, models.RoleTeacher, b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)
}

func TestTransition_UnknownBooking(t *testing.T) {
	repo, rec, now := setup()

	uc := NewApproveBooking(repo, rec, rec, now)
	_, err := uc.Execute(context.Background(), 1, models.RoleTeacher, 999)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

// ======================================================
// AVAILABILITY
// ======================================================

func TestGetAvailability(t *testing.T) {
	repo, rec, now := setup()
	repo.workingHours[1] = &models.WorkingHours{
		TeacherID: 1, StartHour: 9, EndHour: 11, SlotMin: 30, Active: true,
	}

	create := NewCreateBooking(repo, rec, rec, now)
	_, err := create.Execute(context.Background(), CreateBookingInput{
		StudentID: 2,
		TeacherID: 1,
		Date:      "2026-09-01",
		StartTime: "09:00",
		Note:      "algebra help",
	})
	require.NoError(t, err)

	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), 1, "2026-09-01")
	require.NoError(t, err)

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	assert.Equal(t, []string{"09:30", "10:00", "10:30"}, starts)
}

func TestGetAvailability_DefaultWindowWhenUnconfigured(t *testing.T) {
	repo, _, _ := setup()

	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), 1, "2026-09-01")
	require.NoError(t, err)
	assert.Len(t, slots, 16, "9-17 with 30 min slots")
}

func TestGetAvailability_InactiveTeacherHasNoSlots(t *testing.T) {
	repo, _, _ := setup()
	repo.workingHours[1] = &models.WorkingHours{
		TeacherID: 1, StartHour: 9, EndHour: 17, SlotMin: 30, Active: false,
	}

	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), 1, "2026-09-01")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestNextAvailable_ClampsHorizon(t *testing.T) {
	repo, _, _ := setup()
	repo.workingHours[1] = &models.WorkingHours{
		TeacherID: 1, StartHour: 9, EndHour: 17, SlotMin: 30, Active: false,
	}

	uc := NewNextAvailable(repo, 5)

	// inactive teacher: nothing within any horizon, even an oversized one
	slot, err := uc.Execute(context.Background(), 1, "2026-09-01", 10000)
	require.NoError(t, err)
	assert.Nil(t, slot)

	_, err = uc.Execute(context.Background(), 1, "2026-09-01", 0)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestNextAvailable_SkipsFullDay(t *testing.T) {
	repo, rec, now := setup()
	repo.workingHours[1] = &models.WorkingHours{
		TeacherID: 1, StartHour: 9, EndHour: 10, SlotMin: 30, Active: true,
	}

	create := NewCreateBooking(repo, rec, rec, now)
	for _, start := range []string{"09:00", "09:30"} {
		_, err := create.Execute(context.Background(), CreateBookingInput{
			StudentID: 2,
			TeacherID: 1,
			Date:      "2026-09-01",
			StartTime: start,
		})
		require.NoError(t, err)
	}

	uc := NewNextAvailable(repo, 30)

	slot, err := uc.Execute(context.Background(), 1, "2026-09-01", 7)
	require.NoError(t, err)

	require.NotNil(t, slot)
	assert.Equal(t, "2026-09-02", slot.Date)
	assert.Equal(t, "09:00", slot.Start)
}

// ======================================================
// SWEEP
// ======================================================

func TestCompletePastBookings(t *testing.T) {
	repo, rec, now := setup()

	seed := func(date, status string) *models.Booking {
		b := &models.Booking{
			ID:        repo.nextID,
			TeacherID: 1,
			StudentID: 2,
			Date:      date,
			StartTime: "10:00",
			Status:    status,
		}
		repo.nextID++
		repo.bookings = append(repo.bookings, b)
		return b
	}

	past := seed("2026-08-30", string(domain.StatusApproved))
	pastPending := seed("2026-08-30", string(domain.StatusPending))
	today := seed("2026-09-01", string(domain.StatusApproved))

	uc := NewCompletePastBookings(repo, rec, rec, now)

	n, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, string(domain.StatusCompleted), past.Status)
	assert.Equal(t, string(domain.StatusPending), pastPending.Status)
	assert.Equal(t, string(domain.StatusApproved), today.Status, "today is not past yet")

	// the sweep is idempotent
	n, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCompletePastBookings_StopsOnRepoError(t *testing.T) {
	repo, rec, now := setup()
	uc := NewCompletePastBookings(&failingRepo{fakeRepo: repo}, rec, rec, now)

	_, err := uc.Execute(context.Background())
	assert.Error(t, err)
}

type failingRepo struct {
	*fakeRepo
}

func (r *failingRepo) ListApprovedBefore(context.Context, string) ([]models.Booking, error) {
	return nil, errors.New("db down")
}
