package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/holiday"
)

type HolidayServiceImpl struct {
	holidayRepo holiday.HolidayRepository
}

func NewHolidayService(holidayRepo holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{holidayRepo: holidayRepo}
}

func parseDay(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

// ListHolidays implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListHolidays(ctx context.Context, companyID string, year *int) ([]holiday.HolidayResponse, error) {
	if year != nil && (*year < 1900 || *year > 2200) {
		return nil, holiday.ErrInvalidYear
	}
	holidays, err := s.holidayRepo.List(ctx, companyID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.ToResponse(h))
	}
	return responses, nil
}

// GetHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) GetHoliday(ctx context.Context, companyID string, id string) (holiday.HolidayResponse, error) {
	h, err := s.holidayRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return holiday.ToResponse(h), nil
}

// CreateHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) CreateHoliday(ctx context.Context, companyID string, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	date := parseDay(req.Date)
	exists, err := s.holidayRepo.ExistsByDateAndName(ctx, companyID, date, name, nil)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	if exists {
		return holiday.HolidayResponse{}, holiday.ErrHolidayExists
	}

	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		CompanyID:   companyID,
		Name:        name,
		Date:        date,
		Description: req.Description,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return holiday.ToResponse(created), nil
}

// UpdateHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) UpdateHoliday(ctx context.Context, companyID string, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	current, err := s.holidayRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	date := parseDay(req.Date)
	exists, err := s.holidayRepo.ExistsByDateAndName(ctx, companyID, date, name, &req.ID)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	if exists {
		return holiday.HolidayResponse{}, holiday.ErrHolidayExists
	}

	current.Name = name
	current.Date = date
	current.Description = req.Description
	current.IsRecurring = req.IsRecurring

	updated, err := s.holidayRepo.Update(ctx, current)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return holiday.ToResponse(updated), nil
}

// DeleteHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) DeleteHoliday(ctx context.Context, companyID string, id string) error {
	return s.holidayRepo.Delete(ctx, id, companyID)
}

// GenerateRecurring implements holiday.HolidayService.
func (s *HolidayServiceImpl) GenerateRecurring(ctx context.Context, companyID string, year int) (holiday.GenerateRecurringResponse, error) {
	if year < 1900 || year > 2200 {
		return holiday.GenerateRecurringResponse{}, holiday.ErrInvalidYear
	}

	recurring, err := s.holidayRepo.ListRecurring(ctx, companyID)
	if err != nil {
		return holiday.GenerateRecurringResponse{}, fmt.Errorf("failed to list recurring holidays: %w", err)
	}

	resp := holiday.GenerateRecurringResponse{Year: year}
	planned := make(map[string]bool)
	for _, h := range recurring {
		if h.Date.Year() == year {
			continue
		}
		date, ok := h.ProjectTo(year)
		if !ok {
			continue
		}
		key := date.Format("2006-01-02") + "|" + h.Name
		if planned[key] {
			continue
		}
		planned[key] = true

		exists, err := s.holidayRepo.ExistsByDateAndName(ctx, companyID, date, h.Name, nil)
		if err != nil {
			return resp, err
		}
		if exists {
			continue
		}

		if _, err := s.holidayRepo.Create(ctx, holiday.Holiday{
			CompanyID:   companyID,
			Name:        h.Name,
			Date:        date,
			Description: h.Description,
			IsRecurring: true,
		}); err != nil {
			return resp, err
		}
		resp.Created++
	}

	if resp.Created > 0 {
		slog.Info("recurring holidays generated", "company_id", companyID, "year", year, "created", resp.Created)
	}
	return resp, nil
}
