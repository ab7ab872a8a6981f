package service

import (
	"context"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/models"
)

const (
	defaultEventsLimit = 20
	maxEventsLimit     = 100
)

// eventRecorder appends to the user-event log. Failures are logged and
// never returned: the log must not break the operation it describes.
type eventRecorder struct {
	events store.EventRepository
}

func newEventRecorder(events store.EventRepository) *eventRecorder {
	return &eventRecorder{events: events}
}

func (r *eventRecorder) record(ctx context.Context, userID int64, kind models.EventKind, detail string) {
	event := models.UserEvent{Kind: kind, Detail: detail}
	if userID > 0 {
		event.UserID = &userID
	}
	r.save(ctx, event)
}

func (r *eventRecorder) save(ctx context.Context, event models.UserEvent) {
	if r == nil || r.events == nil {
		return
	}

	if err := r.events.SaveEvent(ctx, event); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*eventRecorder.save").
			Str("kind", string(event.Kind)).
			Msg("failed to record user event")
	}
}

type eventService struct {
	events store.EventRepository
	logger *logger.Logger
}

func NewEventService(events store.EventRepository, logger *logger.Logger) EventService {
	return &eventService{events: events, logger: logger}
}

// ListEvents returns the newest events of userID. limit defaults to 20 and
// is capped at 100.
func (s *eventService) ListEvents(ctx context.Context, userID int64, limit int) ([]models.UserEvent, error) {
	switch {
	case limit <= 0:
		limit = defaultEventsLimit
	case limit > maxEventsLimit:
		limit = maxEventsLimit
	}

	events, err := s.events.ListEvents(ctx, userID, limit)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*eventService.ListEvents").Int64("user_id", userID).Msg("listing events failed")
		return nil, mapStoreError(err, "listing events failed")
	}

	return events, nil
}
