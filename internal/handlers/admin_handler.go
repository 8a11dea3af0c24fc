package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/studysync/tutor-scheduler/internal/domain/booking"
	"github.com/studysync/tutor-scheduler/internal/httperr"
	"github.com/studysync/tutor-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// ======================================================
// STATS
// ======================================================

func (h *AdminHandler) Stats(c *gin.Context) {
	statuses := []domain.Status{
		domain.StatusPending,
		domain.StatusApproved,
		domain.StatusCancelled,
		domain.StatusRejected,
		domain.StatusCompleted,
	}

	byStatus := gin.H{}
	for _, s := range statuses {
		var count int64
		if err := h.db.
			Model(&models.Booking{}).
			Where("status = ?", string(s)).
			Count(&count).Error; err != nil {
			httperr.Internal(c, "stats_failed", "Could not compute stats.")
			return
		}
		byStatus[string(s)] = count
	}

	var students, teachers int64
	h.db.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&students)
	h.db.Model(&models.User{}).Where("role = ?", models.RoleTeacher).Count(&teachers)

	c.JSON(200, gin.H{
		"bookings": byStatus,
		"users": gin.H{
			"students": students,
			"teachers": teachers,
		},
	})
}

// ======================================================
// USERS
// ======================================================

func (h *AdminHandler) ListUsers(c *gin.Context) {
	role := c.Query("role")

	q := h.db.Model(&models.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var users []models.User
	if err := q.Order("id ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Could not list users.")
		return
	}

	c.JSON(200, gin.H{
		"users": users,
		"total": len(users),
	})
}

// ======================================================
// AUDIT LOGS
// ======================================================

func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.Model(&models.AuditLog{})

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}

	if toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("created_at <= ?", to.Add(24*time.Hour))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Could not count logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Could not list logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
