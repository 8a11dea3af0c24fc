package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/studysync/tutor-scheduler/internal/domain/booking"
	"github.com/studysync/tutor-scheduler/internal/httperr"
)

// writeDomainError translates engine and business errors into the API's
// error shape. Unknown errors become a 500 so nothing leaks.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		httperr.BadRequest(c, "validation_error", err.Error())

	case domain.IsInvalidTransition(err):
		httperr.Conflict(c, "invalid_transition", err.Error())

	case domain.IsConflict(err):
		// client should re-fetch slots and retry the flow
		httperr.Conflict(c, "time_conflict", "Requested slot is no longer free.")

	case httperr.IsBusiness(err, "teacher_not_found"):
		httperr.NotFound(c, "teacher_not_found", "Teacher not found.")

	case httperr.IsBusiness(err, "booking_not_found"):
		httperr.NotFound(c, "booking_not_found", "Booking not found.")

	case httperr.IsBusiness(err, "not_allowed"):
		httperr.Forbidden(c, "not_allowed", "You may not change this booking.")

	case httperr.IsBusiness(err, "date_in_past"):
		httperr.BadRequest(c, "date_in_past", "Bookings cannot be made in the past.")

	case httperr.IsBusiness(err, "outside_working_hours"):
		httperr.BadRequest(c, "outside_working_hours", "Requested time is outside the teacher's hours.")

	default:
		httperr.Internal(c, "internal_error", "Something went wrong.")
	}
}
