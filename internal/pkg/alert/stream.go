package alert

import (
	"context"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/sse"
)

// EventAttendanceAlert is the SSE event type of a streamed alert.
const EventAttendanceAlert = "attendance_alert"

// StreamPublisher pushes alerts to the live streams of the alert's company.
// Having no connected subscriber is not an error.
type StreamPublisher struct {
	hub *sse.Hub
}

func NewStreamPublisher(hub *sse.Hub) *StreamPublisher {
	return &StreamPublisher{hub: hub}
}

// Publish implements alert.Publisher.
func (p *StreamPublisher) Publish(_ context.Context, a alert.AttendanceAlert) error {
	p.hub.Publish(a.CompanyID, sse.Event{Type: EventAttendanceAlert, Data: a})
	return nil
}

// MultiPublisher publishes to each publisher in order and stops at the first failure.
// A later publisher only sees alerts every earlier one accepted, so a retried alert
// is never delivered twice to it.
type MultiPublisher []alert.Publisher

// Publish implements alert.Publisher.
func (m MultiPublisher) Publish(ctx context.Context, a alert.AttendanceAlert) error {
	for _, p := range m {
		if err := p.Publish(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
