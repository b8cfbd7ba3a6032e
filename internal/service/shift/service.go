package shift

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/shift"
)

type WorkShiftServiceImpl struct {
	shiftRepo shift.WorkShiftRepository
}

func NewWorkShiftService(shiftRepo shift.WorkShiftRepository) shift.WorkShiftService {
	return &WorkShiftServiceImpl{shiftRepo: shiftRepo}
}

// ListShifts implements shift.WorkShiftService.
func (s *WorkShiftServiceImpl) ListShifts(ctx context.Context, companyID string, activeOnly bool) ([]shift.WorkShiftResponse, error) {
	shifts, err := s.shiftRepo.List(ctx, companyID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list work shifts: %w", err)
	}
	responses := make([]shift.WorkShiftResponse, 0, len(shifts))
	for _, ws := range shifts {
		responses = append(responses, shift.ToResponse(ws))
	}
	return responses, nil
}

// GetShift implements shift.WorkShiftService.
func (s *WorkShiftServiceImpl) GetShift(ctx context.Context, companyID string, id string) (shift.WorkShiftResponse, error) {
	ws, err := s.shiftRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return shift.WorkShiftResponse{}, err
	}
	return shift.ToResponse(ws), nil
}

// CreateShift implements shift.WorkShiftService.
func (s *WorkShiftServiceImpl) CreateShift(ctx context.Context, companyID string, req shift.CreateWorkShiftRequest) (shift.WorkShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.WorkShiftResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	exists, err := s.shiftRepo.ExistsByName(ctx, companyID, name, nil)
	if err != nil {
		return shift.WorkShiftResponse{}, err
	}
	if exists {
		return shift.WorkShiftResponse{}, shift.ErrShiftNameExists
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	created, err := s.shiftRepo.Create(ctx, shift.WorkShift{
		CompanyID:    companyID,
		Name:         name,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		IsNightShift: req.IsNightShift,
		IsActive:     active,
	})
	if err != nil {
		return shift.WorkShiftResponse{}, err
	}
	return shift.ToResponse(created), nil
}

// UpdateShift implements shift.WorkShiftService.
func (s *WorkShiftServiceImpl) UpdateShift(ctx context.Context, companyID string, req shift.UpdateWorkShiftRequest) (shift.WorkShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.WorkShiftResponse{}, err
	}

	current, err := s.shiftRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return shift.WorkShiftResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	exists, err := s.shiftRepo.ExistsByName(ctx, companyID, name, &req.ID)
	if err != nil {
		return shift.WorkShiftResponse{}, err
	}
	if exists {
		return shift.WorkShiftResponse{}, shift.ErrShiftNameExists
	}

	current.Name = name
	current.StartTime = req.StartTime
	current.EndTime = req.EndTime
	current.IsNightShift = req.IsNightShift
	current.IsActive = req.IsActive

	updated, err := s.shiftRepo.Update(ctx, current)
	if err != nil {
		return shift.WorkShiftResponse{}, err
	}
	return shift.ToResponse(updated), nil
}

// DeleteShift implements shift.WorkShiftService.
func (s *WorkShiftServiceImpl) DeleteShift(ctx context.Context, companyID string, id string) error {
	if _, err := s.shiftRepo.GetByID(ctx, id, companyID); err != nil {
		return err
	}

	referenced, err := s.shiftRepo.IsReferenced(ctx, id, companyID)
	if err != nil {
		return err
	}
	if referenced {
		return shift.ErrShiftInUse
	}
	return s.shiftRepo.Delete(ctx, id, companyID)
}
