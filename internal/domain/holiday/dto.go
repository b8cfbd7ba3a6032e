package holiday

import (
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Name        string  `json:"name" validate:"required,max=150"`
	Date        string  `json:"date" validate:"required,date"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	IsRecurring bool    `json:"is_recurring"`
}

func (r *CreateHolidayRequest) Validate() error {
	return validator.Struct(r)
}

type UpdateHolidayRequest struct {
	ID          string  `json:"-"`
	Name        string  `json:"name" validate:"required,max=150"`
	Date        string  `json:"date" validate:"required,date"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	IsRecurring bool    `json:"is_recurring"`
}

func (r *UpdateHolidayRequest) Validate() error {
	return validator.Struct(r)
}

type GenerateRecurringRequest struct {
	Year int `json:"year" validate:"required,min=1900,max=2200"`
}

func (r *GenerateRecurringRequest) Validate() error {
	return validator.Struct(r)
}

type GenerateRecurringResponse struct {
	Year    int `json:"year"`
	Created int `json:"created"`
}

type HolidayResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Description *string `json:"description,omitempty"`
	IsRecurring bool    `json:"is_recurring"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date.Format("2006-01-02"),
		Description: h.Description,
		IsRecurring: h.IsRecurring,
		CreatedAt:   h.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   h.UpdatedAt.Format(time.RFC3339),
	}
}
