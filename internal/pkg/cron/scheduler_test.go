package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRun struct {
	name string
	err  error
}

type recordingObserver struct {
	mu   sync.Mutex
	runs []recordedRun
}

func (o *recordingObserver) ObserveJob(name string, err error, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.runs = append(o.runs, recordedRun{name: name, err: err})
}

func TestRunOnce_RecoversPanicsAndCountsFailures(t *testing.T) {
	obs := &recordingObserver{}
	s := NewScheduler(WithObserver(obs))

	ran := false
	s.AddJob("ok", time.Hour, func(context.Context) error { ran = true; return nil })
	s.AddJob("fails", time.Hour, func(context.Context) error { return errors.New("boom") })
	s.AddJob("panics", time.Hour, func(context.Context) error { panic("oops") })
	s.AddJob("no_interval", 0, func(context.Context) error { return nil })

	failed := s.RunOnce(context.Background())

	assert.True(t, ran)
	assert.Equal(t, 2, failed)
	require.Len(t, obs.runs, 3)
	assert.NoError(t, obs.runs[0].err)
	assert.Error(t, obs.runs[1].err)
	assert.ErrorContains(t, obs.runs[2].err, "panicked")
}

func TestJobTimeoutCancelsContext(t *testing.T) {
	s := NewScheduler(WithJobTimeout(10 * time.Millisecond))
	s.AddJob("slow", time.Hour, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.Equal(t, 1, s.RunOnce(context.Background()))
}

func TestStartStop(t *testing.T) {
	s := NewScheduler()
	done := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(context.Context) error {
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

type stubCompanies []string

func (s stubCompanies) ListIDs(context.Context) ([]string, error) { return s, nil }

type stubGenerator struct {
	years map[string]int
	fail  string
}

func (g *stubGenerator) GenerateRecurring(_ context.Context, companyID string, year int) (holiday.GenerateRecurringResponse, error) {
	if companyID == g.fail {
		return holiday.GenerateRecurringResponse{}, errors.New("db down")
	}
	g.years[companyID] = year
	return holiday.GenerateRecurringResponse{Year: year, Created: 2}, nil
}

func TestGenerateNextYear(t *testing.T) {
	gen := &stubGenerator{years: map[string]int{}, fail: "c2"}
	jobs := NewHolidayJobs(stubCompanies{"c1", "c2", "c3"}, gen)
	jobs.now = func() time.Time { return time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC) }

	err := jobs.GenerateNextYear(context.Background())

	require.Error(t, err)
	assert.ErrorContains(t, err, "c2")
	assert.Equal(t, map[string]int{"c1": 2025, "c3": 2025}, gen.years)
}
