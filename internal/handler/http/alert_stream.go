package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/sse"
)

type AlertStreamHandler interface {
	// Stream pushes the company's attendance alerts as server-sent events
	Stream(w http.ResponseWriter, r *http.Request)
}

type alertStreamHandlerImpl struct {
	hub       *sse.Hub
	keepalive time.Duration
}

func NewAlertStreamHandler(hub *sse.Hub, keepalive time.Duration) AlertStreamHandler {
	if keepalive <= 0 {
		keepalive = 30 * time.Second
	}
	return &alertStreamHandlerImpl{hub: hub, keepalive: keepalive}
}

// Stream handles GET /alerts/stream
func (h *alertStreamHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rc := http.NewResponseController(w)
	// The server write timeout would cut long-lived streams.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		slog.Warn("failed to clear stream write deadline", "error", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(companyID)
	defer cleanup()
	slog.Debug("alert stream connected", "company_id", companyID, "subscribers", h.hub.SubscriberCount(companyID))

	fmt.Fprintf(w, "event: connected\ndata: {\"company_id\":%q}\n\n", companyID)
	if err := rc.Flush(); err != nil {
		slog.Warn("alert stream closed", "company_id", companyID, "error", err)
		return
	}

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("failed to encode stream event", "type", event.Type, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
			if err := rc.Flush(); err != nil {
				return
			}

		case <-keepalive.C:
			fmt.Fprintf(w, ": ping %d\n\n", time.Now().Unix())
			if err := rc.Flush(); err != nil {
				return
			}

		case <-r.Context().Done():
			return
		}
	}
}
