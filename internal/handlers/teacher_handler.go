package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studysync/tutor-scheduler/internal/clock"
	"github.com/studysync/tutor-scheduler/internal/httperr"
	"github.com/studysync/tutor-scheduler/internal/httpresp"
	"github.com/studysync/tutor-scheduler/internal/models"
	ucBooking "github.com/studysync/tutor-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// TeacherHandler serves the public teacher directory and the availability
// queries students browse before booking.
type TeacherHandler struct {
	db *gorm.DB

	availabilityUC  *ucBooking.GetAvailability
	nextAvailableUC *ucBooking.NextAvailable
	now             clock.Clock
}

func NewTeacherHandler(
	db *gorm.DB,
	availabilityUC *ucBooking.GetAvailability,
	nextAvailableUC *ucBooking.NextAvailable,
	now clock.Clock,
) *TeacherHandler {
	return &TeacherHandler{
		db:              db,
		availabilityUC:  availabilityUC,
		nextAvailableUC: nextAvailableUC,
		now:             now,
	}
}

////////////////////////////////////////////////////////
// DIRECTORY
////////////////////////////////////////////////////////

type TeacherDTO struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
}

func (h *TeacherHandler) List(c *gin.Context) {
	subject := c.Query("subject")

	q := h.db.Model(&models.User{}).Where("role = ?", models.RoleTeacher)
	if subject != "" {
		q = q.Where("LOWER(subject) = LOWER(?)", subject)
	}

	var teachers []models.User
	if err := q.Order("name ASC").Find(&teachers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_teachers", "Could not list teachers.")
		return
	}

	out := make([]TeacherDTO, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, TeacherDTO{ID: t.ID, Name: t.Name, Subject: t.Subject})
	}

	httpresp.List(c, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *TeacherHandler) Availability(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_teacher_id", "Invalid teacher id.")
		return
	}

	date := c.Query("date")
	if date == "" {
		date = clock.Today(h.now)
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), uint(teacherID), date)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"teacher_id": teacherID,
		"date":       date,
		"slots":      slots,
	})
}

func (h *TeacherHandler) NextAvailable(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_teacher_id", "Invalid teacher id.")
		return
	}

	from := c.Query("from")
	if from == "" {
		from = clock.Today(h.now)
	}

	days := 7
	if daysStr := c.Query("days"); daysStr != "" {
		days, err = strconv.Atoi(daysStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_days", "Invalid horizon.")
			return
		}
	}

	slot, err := h.nextAvailableUC.Execute(c.Request.Context(), uint(teacherID), from, days)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if slot == nil {
		httperr.NotFound(c, "no_slot_available", "No free slot within the horizon.")
		return
	}

	c.JSON(200, slot)
}
