package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studysync/tutor-scheduler/internal/httperr"
	"github.com/studysync/tutor-scheduler/internal/middleware"
	"github.com/studysync/tutor-scheduler/internal/models"
	ucBooking "github.com/studysync/tutor-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db *gorm.DB

	createUC   *ucBooking.CreateBooking
	approveUC  *ucBooking.ApproveBooking
	rejectUC   *ucBooking.RejectBooking
	cancelUC   *ucBooking.CancelBooking
	completeUC *ucBooking.CompleteBooking
}

func NewBookingHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateBooking,
	approveUC *ucBooking.ApproveBooking,
	rejectUC *ucBooking.RejectBooking,
	cancelUC *ucBooking.CancelBooking,
	completeUC *ucBooking.CompleteBooking,
) *BookingHandler {
	return &BookingHandler{
		db:         db,
		createUC:   createUC,
		approveUC:  approveUC,
		rejectUC:   rejectUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	TeacherID   uint   `json:"teacher_id" binding:"required"`
	Date        string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime   string `json:"start_time" binding:"required"` // HH:MM
	DurationMin int    `json:"duration_min"`
	Note        string `json:"note"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	studentID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	if req.DurationMin < 0 {
		httperr.BadRequest(c, "invalid_duration", "Duration must be positive.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		StudentID:   studentID,
		TeacherID:   req.TeacherID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		DurationMin: req.DurationMin,
		Note:        req.Note,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(201, b)
}

// ======================================================
// LIST
// ======================================================

// List returns the caller's bookings for one day: a teacher sees their
// schedule, a student their requests, an admin everything.
func (h *BookingHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	q := h.db.
		Preload("Teacher").
		Preload("Student").
		Where("date = ?", date)

	switch role {
	case models.RoleTeacher:
		q = q.Where("teacher_id = ?", userID)
	case models.RoleAdmin:
		// no extra scoping
	default:
		q = q.Where("student_id = ?", userID)
	}

	var bookings []models.Booking
	if err := q.Order("start_time ASC").Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(200, bookings)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *BookingHandler) Approve(c *gin.Context) {
	h.transition(c, h.approveUC.Execute)
}

func (h *BookingHandler) Reject(c *gin.Context) {
	h.transition(c, h.rejectUC.Execute)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cancelUC.Execute)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, h.completeUC.Execute)
}

type transitionFn func(
	ctx context.Context,
	actorID uint,
	actorRole string,
	bookingID uint,
) (*models.Booking, error)

func (h *BookingHandler) transition(c *gin.Context, run transitionFn) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := run(c.Request.Context(), userID, role, uint(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(200, b)
}
