package timeentry

import (
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

type TimeEntryFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	From       *string `json:"from,omitempty"`
	To         *string `json:"to,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`

	FromDate *time.Time `json:"-"`
	ToDate   *time.Time `json:"-"`
}

func (f *TimeEntryFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

// Validate parses From and To into FromDate and ToDate.
func (f *TimeEntryFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.From != nil {
		d, ok := validator.IsValidDate(*f.From)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be in YYYY-MM-DD format"})
		} else {
			f.FromDate = &d
		}
	}
	if f.To != nil {
		d, ok := validator.IsValidDate(*f.To)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be in YYYY-MM-DD format"})
		} else {
			f.ToDate = &d
		}
	}
	if f.FromDate != nil && f.ToDate != nil && f.ToDate.Before(*f.FromDate) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must not be before from"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateTimeEntryRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required,uuid"`
	Date       string  `json:"date" validate:"required,date"`
	ClockIn    *string `json:"clock_in,omitempty"`
	ClockOut   *string `json:"clock_out,omitempty"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=500"`

	ParsedDate     time.Time  `json:"-"`
	ParsedClockIn  *time.Time `json:"-"`
	ParsedClockOut *time.Time `json:"-"`
}

func (r *CreateTimeEntryRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	r.ParsedDate, _ = validator.IsValidDate(r.Date)
	in, out, err := parseClockPair(r.ClockIn, r.ClockOut)
	if err != nil {
		return err
	}
	r.ParsedClockIn, r.ParsedClockOut = in, out
	return nil
}

type UpdateTimeEntryRequest struct {
	ID       string  `json:"-"`
	ClockIn  *string `json:"clock_in,omitempty"`
	ClockOut *string `json:"clock_out,omitempty"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=500"`

	ParsedClockIn  *time.Time `json:"-"`
	ParsedClockOut *time.Time `json:"-"`
}

func (r *UpdateTimeEntryRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	in, out, err := parseClockPair(r.ClockIn, r.ClockOut)
	if err != nil {
		return err
	}
	r.ParsedClockIn, r.ParsedClockOut = in, out
	return nil
}

// ClockRequest is the optional body of the self-service clock endpoints.
type ClockRequest struct {
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

func (r *ClockRequest) Validate() error {
	return validator.Struct(r)
}

func parseClockPair(clockIn, clockOut *string) (*time.Time, *time.Time, error) {
	var errs validator.ValidationErrors
	var in, out *time.Time
	if clockIn != nil {
		t, ok := validator.IsValidDateTime(*clockIn)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "clock_in must be an RFC3339 timestamp"})
		} else {
			t = t.UTC()
			in = &t
		}
	}
	if clockOut != nil {
		t, ok := validator.IsValidDateTime(*clockOut)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "clock_out must be an RFC3339 timestamp"})
		} else {
			t = t.UTC()
			out = &t
		}
	}
	if len(errs) > 0 {
		return nil, nil, errs
	}
	return in, out, nil
}

type TimeEntryResponse struct {
	ID            string   `json:"id"`
	EmployeeID    string   `json:"employee_id"`
	Date          string   `json:"date"`
	ClockIn       *string  `json:"clock_in"`
	ClockOut      *string  `json:"clock_out"`
	WorkedMinutes *float64 `json:"worked_minutes,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

type ListTimeEntryResponse struct {
	TotalCount  int64               `json:"total_count"`
	Page        int                 `json:"page"`
	Limit       int                 `json:"limit"`
	TotalPages  int                 `json:"total_pages"`
	TimeEntries []TimeEntryResponse `json:"time_entries"`
}

func ToResponse(e TimeEntry) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		Date:       e.Date.Format("2006-01-02"),
		Notes:      e.Notes,
	}
	if e.ClockIn != nil {
		s := e.ClockIn.UTC().Format(time.RFC3339)
		resp.ClockIn = &s
	}
	if e.ClockOut != nil {
		s := e.ClockOut.UTC().Format(time.RFC3339)
		resp.ClockOut = &s
	}
	if d := e.WorkedDuration(); d != nil {
		m := d.Minutes()
		resp.WorkedMinutes = &m
	}
	return resp
}
