package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTooManyRequests):
		TooManyRequests(w, 60)
	case errors.Is(err, user.ErrOwnerAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrEmployeeIDRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrCompanyIDRequired):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Company and employee
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists),
		errors.Is(err, employee.ErrStatusUnchanged),
		errors.Is(err, employee.ErrEmployeeHasTimeEntries):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Holidays
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, err.Error())
	case errors.Is(err, holiday.ErrInvalidYear):
		BadRequest(w, err.Error(), nil)

	// Work shifts and schedules
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Work shift not found")
	case errors.Is(err, shift.ErrShiftNameExists),
		errors.Is(err, shift.ErrShiftInUse):
		Conflict(w, err.Error())
	case errors.Is(err, shift.ErrInvalidClock),
		errors.Is(err, shift.ErrInvalidShiftWindow),
		errors.Is(err, schedule.ErrInvalidDayOfWeek),
		errors.Is(err, schedule.ErrDuplicateDay),
		errors.Is(err, schedule.ErrShiftRequired),
		errors.Is(err, schedule.ErrShiftNotAllowed):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, schedule.ErrInactiveWorkShift):
		UnprocessableEntity(w, err.Error())

	// Time entries
	case errors.Is(err, timeentry.ErrTimeEntryNotFound):
		NotFound(w, "Time entry not found")
	case errors.Is(err, timeentry.ErrTimeEntryExists),
		errors.Is(err, timeentry.ErrAlreadyClockedIn),
		errors.Is(err, timeentry.ErrAlreadyClockedOut):
		Conflict(w, err.Error())
	case errors.Is(err, timeentry.ErrNotClockedIn),
		errors.Is(err, timeentry.ErrEmployeeNotActive):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, timeentry.ErrClockOutBeforeClockIn):
		BadRequest(w, err.Error(), nil)

	// Attendance
	case errors.Is(err, attendance.ErrInvalidDate):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
