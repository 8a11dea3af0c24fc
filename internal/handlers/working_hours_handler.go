package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studysync/tutor-scheduler/internal/httperr"
	"github.com/studysync/tutor-scheduler/internal/middleware"
	"github.com/studysync/tutor-scheduler/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	teacherID := c.MustGet(middleware.ContextUserID).(uint)

	var wh models.WorkingHours
	if err := h.db.Where("teacher_id = ?", teacherID).First(&wh).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// defaults apply until the teacher saves their own hours
			c.JSON(200, models.WorkingHours{
				TeacherID: teacherID,
				StartHour: 9,
				EndHour:   17,
				SlotMin:   30,
				Active:    true,
			})
			return
		}
		httperr.Internal(c, "failed_to_load_working_hours", "Could not load working hours.")
		return
	}

	c.JSON(200, wh)
}

type UpdateWorkingHoursRequest struct {
	StartHour int  `json:"start_hour" binding:"min=0,max=23"`
	EndHour   int  `json:"end_hour" binding:"min=0,max=24"`
	SlotMin   int  `json:"slot_min" binding:"min=5,max=240"`
	Active    bool `json:"active"`
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	teacherID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid working hours payload.")
		return
	}

	var wh models.WorkingHours
	err := h.db.Where("teacher_id = ?", teacherID).First(&wh).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		httperr.Internal(c, "failed_to_load_working_hours", "Could not load working hours.")
		return
	}

	wh.TeacherID = teacherID
	wh.StartHour = req.StartHour
	wh.EndHour = req.EndHour
	wh.SlotMin = req.SlotMin
	wh.Active = req.Active

	if err := h.db.Save(&wh).Error; err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Could not save working hours.")
		return
	}

	c.JSON(200, wh)
}
