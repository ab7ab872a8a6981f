package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
	sq "github.com/Masterminds/squirrel"
)

type eventRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewEventRepository(db *DB, logger *logger.Logger) EventRepository {
	return &eventRepository{db: db, logger: logger}
}

func (r *eventRepository) SaveEvent(ctx context.Context, event models.UserEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	_, err := exec(ctx, r.db, r.db.builder.
		Insert(eventsTable).
		Columns("user_id", "kind", "detail", "created_at").
		Values(event.UserID, string(event.Kind), event.Detail, event.CreatedAt))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*eventRepository.SaveEvent").
			Str("kind", string(event.Kind)).
			Msg("error saving event")
		return err
	}

	return nil
}

// ListEvents returns the newest limit events of userID.
func (r *eventRepository) ListEvents(ctx context.Context, userID int64, limit int) ([]models.UserEvent, error) {
	log := logger.FromContext(ctx)

	rows, err := query(ctx, r.db, r.db.builder.
		Select(eventColumns...).
		From(eventsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)))
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.ListEvents").Int64("user_id", userID).Msg("failed to query events")
		return nil, err
	}
	defer rows.Close()

	events := make([]models.UserEvent, 0, limit)
	for rows.Next() {
		var (
			e      models.UserEvent
			userID sql.NullInt64
		)
		if err = rows.Scan(&e.EventID, &userID, &e.Kind, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if userID.Valid {
			e.UserID = &userID.Int64
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return events, nil
}
