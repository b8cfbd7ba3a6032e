package holiday

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
	nextID   int
}

func (f *fakeHolidayRepo) FindForDate(_ context.Context, companyID string, date time.Time) (*holiday.Holiday, error) {
	for i := range f.holidays {
		if f.holidays[i].CompanyID == companyID && f.holidays[i].Date.Equal(date) {
			return &f.holidays[i], nil
		}
	}
	return nil, nil
}

func (f *fakeHolidayRepo) GetByID(_ context.Context, id string, companyID string) (holiday.Holiday, error) {
	for _, h := range f.holidays {
		if h.ID == id && h.CompanyID == companyID {
			return h, nil
		}
	}
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) List(_ context.Context, companyID string, year *int) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.holidays {
		if h.CompanyID == companyID && (year == nil || h.Date.Year() == *year) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHolidayRepo) ListRecurring(_ context.Context, companyID string) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.holidays {
		if h.CompanyID == companyID && h.IsRecurring {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	f.nextID++
	h.ID = "h-" + strconv.Itoa(f.nextID)
	f.holidays = append(f.holidays, h)
	return h, nil
}

func (f *fakeHolidayRepo) Update(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	for i := range f.holidays {
		if f.holidays[i].ID == h.ID {
			f.holidays[i] = h
			return h, nil
		}
	}
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) Delete(_ context.Context, id string, companyID string) error {
	for i, h := range f.holidays {
		if h.ID == id && h.CompanyID == companyID {
			f.holidays = append(f.holidays[:i], f.holidays[i+1:]...)
			return nil
		}
	}
	return holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) ExistsByDateAndName(_ context.Context, companyID string, date time.Time, name string, excludeID *string) (bool, error) {
	for _, h := range f.holidays {
		if excludeID != nil && h.ID == *excludeID {
			continue
		}
		if h.CompanyID == companyID && h.Date.Equal(date) && h.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHolidayRepo) Count(context.Context, string, time.Time, time.Time) (holiday.Counts, error) {
	return holiday.Counts{}, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateRecurring(t *testing.T) {
	ctx := context.Background()
	repo := &fakeHolidayRepo{holidays: []holiday.Holiday{
		{ID: "new-year", CompanyID: "c1", Name: "Confraternização Universal", Date: day(2024, time.January, 1), IsRecurring: true},
		{ID: "leap", CompanyID: "c1", Name: "Leap Day", Date: day(2024, time.February, 29), IsRecurring: true},
		{ID: "one-off", CompanyID: "c1", Name: "Company Offsite", Date: day(2024, time.June, 7)},
		{ID: "other", CompanyID: "c2", Name: "Natal", Date: day(2024, time.December, 25), IsRecurring: true},
	}}
	svc := NewHolidayService(repo)

	resp, err := svc.GenerateRecurring(ctx, "c1", 2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, 1, resp.Created, "Feb 29 has no 2025 counterpart")

	found, err := repo.FindForDate(ctx, "c1", day(2025, time.January, 1))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Confraternização Universal", found.Name)
	assert.True(t, found.IsRecurring)

	t.Run("idempotent", func(t *testing.T) {
		again, err := svc.GenerateRecurring(ctx, "c1", 2025)
		require.NoError(t, err)
		assert.Zero(t, again.Created)
	})

	t.Run("leap year target keeps Feb 29", func(t *testing.T) {
		resp, err := svc.GenerateRecurring(ctx, "c1", 2028)
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Created)

		leap, err := repo.FindForDate(ctx, "c1", day(2028, time.February, 29))
		require.NoError(t, err)
		require.NotNil(t, leap)
		assert.Equal(t, "Leap Day", leap.Name)
	})

	t.Run("other tenants untouched", func(t *testing.T) {
		none, err := repo.FindForDate(ctx, "c2", day(2025, time.December, 25))
		require.NoError(t, err)
		assert.Nil(t, none)
	})

	t.Run("year out of range", func(t *testing.T) {
		_, err := svc.GenerateRecurring(ctx, "c1", 1800)
		assert.ErrorIs(t, err, holiday.ErrInvalidYear)
	})
}

func TestCreateHoliday(t *testing.T) {
	ctx := context.Background()
	repo := &fakeHolidayRepo{}
	svc := NewHolidayService(repo)

	created, err := svc.CreateHoliday(ctx, "c1", holiday.CreateHolidayRequest{Name: "  Tiradentes ", Date: "2025-04-21", IsRecurring: true})
	require.NoError(t, err)
	assert.Equal(t, "Tiradentes", created.Name)
	assert.Equal(t, "2025-04-21", created.Date)

	_, err = svc.CreateHoliday(ctx, "c1", holiday.CreateHolidayRequest{Name: "Tiradentes", Date: "2025-04-21"})
	assert.ErrorIs(t, err, holiday.ErrHolidayExists)

	_, err = svc.CreateHoliday(ctx, "c2", holiday.CreateHolidayRequest{Name: "Tiradentes", Date: "2025-04-21"})
	assert.NoError(t, err)

	_, err = svc.CreateHoliday(ctx, "c1", holiday.CreateHolidayRequest{Name: "Bad", Date: "21/04/2025"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "date")
}

func TestUpdateHoliday(t *testing.T) {
	ctx := context.Background()
	repo := &fakeHolidayRepo{holidays: []holiday.Holiday{
		{ID: "a", CompanyID: "c1", Name: "Carnaval", Date: day(2025, time.March, 3)},
		{ID: "b", CompanyID: "c1", Name: "Carnaval", Date: day(2025, time.March, 4)},
	}}
	svc := NewHolidayService(repo)

	updated, err := svc.UpdateHoliday(ctx, "c1", holiday.UpdateHolidayRequest{ID: "a", Name: "Carnaval", Date: "2025-03-03", IsRecurring: true})
	require.NoError(t, err, "keeping its own name and date is not a duplicate")
	assert.True(t, updated.IsRecurring)

	_, err = svc.UpdateHoliday(ctx, "c1", holiday.UpdateHolidayRequest{ID: "a", Name: "Carnaval", Date: "2025-03-04"})
	assert.ErrorIs(t, err, holiday.ErrHolidayExists)

	_, err = svc.UpdateHoliday(ctx, "c2", holiday.UpdateHolidayRequest{ID: "a", Name: "Carnaval", Date: "2025-03-05"})
	assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)
}

func TestListHolidays_InvalidYear(t *testing.T) {
	svc := NewHolidayService(&fakeHolidayRepo{})
	year := 3000
	_, err := svc.ListHolidays(context.Background(), "c1", &year)
	assert.ErrorIs(t, err, holiday.ErrInvalidYear)
}
