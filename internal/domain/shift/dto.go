package shift

import (
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

type CreateWorkShiftRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	StartTime    string `json:"start_time" validate:"required,clock"`
	EndTime      string `json:"end_time" validate:"required,clock"`
	IsNightShift bool   `json:"is_night_shift"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

func (r *CreateWorkShiftRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	return windowError(WorkShift{StartTime: r.StartTime, EndTime: r.EndTime, IsNightShift: r.IsNightShift})
}

type UpdateWorkShiftRequest struct {
	ID           string `json:"-"`
	Name         string `json:"name" validate:"required,max=100"`
	StartTime    string `json:"start_time" validate:"required,clock"`
	EndTime      string `json:"end_time" validate:"required,clock"`
	IsNightShift bool   `json:"is_night_shift"`
	IsActive     bool   `json:"is_active"`
}

func (r *UpdateWorkShiftRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	return windowError(WorkShift{StartTime: r.StartTime, EndTime: r.EndTime, IsNightShift: r.IsNightShift})
}

func windowError(s WorkShift) error {
	if err := s.CheckWindow(); err != nil {
		return validator.ValidationErrors{{Field: "end_time", Message: err.Error()}}
	}
	return nil
}

type WorkShiftResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	IsNightShift  bool   `json:"is_night_shift"`
	IsActive      bool   `json:"is_active"`
	DurationHours string `json:"duration"`
}

func ToResponse(s WorkShift) WorkShiftResponse {
	resp := WorkShiftResponse{
		ID:           s.ID,
		Name:         s.Name,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		IsNightShift: s.IsNightShift,
		IsActive:     s.IsActive,
	}
	if d, err := s.Duration(); err == nil {
		resp.DurationHours = d.String()
	}
	return resp
}
