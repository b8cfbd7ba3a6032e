package timeentry

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/timeentry"
)

// EmployeeLookup is the employee access needed to validate time entries.
type EmployeeLookup interface {
	GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error)
}

type TimeEntryServiceImpl struct {
	entryRepo    timeentry.TimeEntryRepository
	employeeRepo EmployeeLookup
	now          func() time.Time
}

func NewTimeEntryService(entryRepo timeentry.TimeEntryRepository, employeeRepo EmployeeLookup) timeentry.TimeEntryService {
	return &TimeEntryServiceImpl{
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

func today(now time.Time) time.Time {
	u := now.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func checkOrder(clockIn, clockOut *time.Time) error {
	if clockIn != nil && clockOut != nil && !clockOut.After(*clockIn) {
		return timeentry.ErrClockOutBeforeClockIn
	}
	return nil
}

// ListTimeEntries implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) ListTimeEntries(ctx context.Context, companyID string, filter timeentry.TimeEntryFilter) (timeentry.ListTimeEntryResponse, error) {
	filter.Normalize()
	if err := filter.Validate(); err != nil {
		return timeentry.ListTimeEntryResponse{}, err
	}

	entries, total, err := s.entryRepo.List(ctx, filter, companyID)
	if err != nil {
		return timeentry.ListTimeEntryResponse{}, fmt.Errorf("failed to list time entries: %w", err)
	}

	responses := make([]timeentry.TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, timeentry.ToResponse(e))
	}
	return timeentry.ListTimeEntryResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		TimeEntries: responses,
	}, nil
}

// GetTimeEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) GetTimeEntry(ctx context.Context, companyID string, id string) (timeentry.TimeEntryResponse, error) {
	e, err := s.entryRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	return timeentry.ToResponse(e), nil
}

// CreateTimeEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) CreateTimeEntry(ctx context.Context, companyID string, req timeentry.CreateTimeEntryRequest) (timeentry.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	if err := checkOrder(req.ParsedClockIn, req.ParsedClockOut); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	existing, err := s.entryRepo.GetForDate(ctx, companyID, req.EmployeeID, req.ParsedDate)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	if existing != nil {
		return timeentry.TimeEntryResponse{}, timeentry.ErrTimeEntryExists
	}

	created, err := s.entryRepo.Create(ctx, timeentry.TimeEntry{
		EmployeeID: req.EmployeeID,
		CompanyID:  companyID,
		Date:       req.ParsedDate,
		ClockIn:    req.ParsedClockIn,
		ClockOut:   req.ParsedClockOut,
		Notes:      req.Notes,
	})
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	return timeentry.ToResponse(created), nil
}

// UpdateTimeEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) UpdateTimeEntry(ctx context.Context, companyID string, req timeentry.UpdateTimeEntryRequest) (timeentry.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	current, err := s.entryRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	if req.ParsedClockIn != nil {
		current.ClockIn = req.ParsedClockIn
	}
	if req.ParsedClockOut != nil {
		current.ClockOut = req.ParsedClockOut
	}
	if req.Notes != nil {
		current.Notes = req.Notes
	}
	if err := checkOrder(current.ClockIn, current.ClockOut); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	updated, err := s.entryRepo.Update(ctx, current)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	return timeentry.ToResponse(updated), nil
}

// DeleteTimeEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) DeleteTimeEntry(ctx context.Context, companyID string, id string) error {
	return s.entryRepo.Delete(ctx, id, companyID)
}

// ClockIn implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) ClockIn(ctx context.Context, companyID string, employeeID string, req timeentry.ClockRequest) (timeentry.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	if err := s.ensureActive(ctx, companyID, employeeID); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	now := s.now().UTC()
	existing, err := s.entryRepo.GetForDate(ctx, companyID, employeeID, today(now))
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	if existing == nil {
		created, err := s.entryRepo.Create(ctx, timeentry.TimeEntry{
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Date:       today(now),
			ClockIn:    &now,
			Notes:      req.Notes,
		})
		if err != nil {
			return timeentry.TimeEntryResponse{}, err
		}
		return timeentry.ToResponse(created), nil
	}

	if existing.ClockIn != nil {
		return timeentry.TimeEntryResponse{}, timeentry.ErrAlreadyClockedIn
	}
	existing.ClockIn = &now
	if req.Notes != nil {
		existing.Notes = req.Notes
	}
	if err := checkOrder(existing.ClockIn, existing.ClockOut); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	updated, err := s.entryRepo.Update(ctx, *existing)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	return timeentry.ToResponse(updated), nil
}

// ClockOut implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) ClockOut(ctx context.Context, companyID string, employeeID string, req timeentry.ClockRequest) (timeentry.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	if err := s.ensureActive(ctx, companyID, employeeID); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	now := s.now().UTC()
	existing, err := s.entryRepo.GetForDate(ctx, companyID, employeeID, today(now))
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	if existing == nil || existing.ClockIn == nil {
		return timeentry.TimeEntryResponse{}, timeentry.ErrNotClockedIn
	}
	if existing.ClockOut != nil {
		return timeentry.TimeEntryResponse{}, timeentry.ErrAlreadyClockedOut
	}

	existing.ClockOut = &now
	if req.Notes != nil {
		existing.Notes = req.Notes
	}
	updated, err := s.entryRepo.Update(ctx, *existing)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	return timeentry.ToResponse(updated), nil
}

func (s *TimeEntryServiceImpl) ensureActive(ctx context.Context, companyID string, employeeID string) error {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return err
	}
	if emp.Status != employee.StatusActive {
		return timeentry.ErrEmployeeNotActive
	}
	return nil
}
