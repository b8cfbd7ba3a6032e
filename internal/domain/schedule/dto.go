package schedule

import (
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

type DayScheduleRequest struct {
	DayOfWeek   int     `json:"day_of_week" validate:"weekday"`
	IsWorkDay   bool    `json:"is_work_day"`
	WorkShiftID *string `json:"work_shift_id,omitempty" validate:"omitempty,uuid"`
}

func (r *DayScheduleRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.IsWorkDay && r.WorkShiftID == nil {
		return validator.ValidationErrors{{Field: "work_shift_id", Message: ErrShiftRequired.Error()}}
	}
	if !r.IsWorkDay && r.WorkShiftID != nil {
		return validator.ValidationErrors{{Field: "work_shift_id", Message: ErrShiftNotAllowed.Error()}}
	}
	return nil
}

type ReplaceWeekRequest struct {
	Days []DayScheduleRequest `json:"days" validate:"required,min=1,max=7,dive"`
}

func (r *ReplaceWeekRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	seen := make(map[int]bool, len(r.Days))
	for i := range r.Days {
		if err := r.Days[i].Validate(); err != nil {
			return err
		}
		if seen[r.Days[i].DayOfWeek] {
			return validator.ValidationErrors{{Field: "days", Message: ErrDuplicateDay.Error()}}
		}
		seen[r.Days[i].DayOfWeek] = true
	}
	return nil
}

type DayScheduleResponse struct {
	DayOfWeek int                      `json:"day_of_week"`
	DayName   string                   `json:"day_name"`
	IsWorkDay bool                     `json:"is_work_day"`
	WorkShift *shift.WorkShiftResponse `json:"work_shift,omitempty"`
}

type WeeklyScheduleResponse struct {
	EmployeeID string                `json:"employee_id"`
	Days       []DayScheduleResponse `json:"days"`
}

func ToDayResponse(s Schedule) DayScheduleResponse {
	resp := DayScheduleResponse{
		DayOfWeek: s.DayOfWeek,
		DayName:   DayName(s.DayOfWeek),
		IsWorkDay: s.IsWorkDay,
	}
	if s.WorkShift != nil {
		ws := shift.ToResponse(*s.WorkShift)
		resp.WorkShift = &ws
	}
	return resp
}

// ToWeeklyResponse returns all seven days, filling days without a row as non-work days.
func ToWeeklyResponse(employeeID string, rows []Schedule) WeeklyScheduleResponse {
	byDay := make(map[int]Schedule, len(rows))
	for _, r := range rows {
		byDay[r.DayOfWeek] = r
	}
	resp := WeeklyScheduleResponse{EmployeeID: employeeID, Days: make([]DayScheduleResponse, 0, 7)}
	for day := 0; day < 7; day++ {
		row, ok := byDay[day]
		if !ok {
			row = Schedule{EmployeeID: employeeID, DayOfWeek: day}
		}
		resp.Days = append(resp.Days, ToDayResponse(row))
	}
	return resp
}
