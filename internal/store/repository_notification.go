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

type notificationRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewNotificationRepository(db *DB, logger *logger.Logger) NotificationRepository {
	return &notificationRepository{db: db, logger: logger}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	n.CreatedAt = time.Now().UTC()
	n.Read = false

	row, err := queryRow(ctx, r.db, r.db.builder.
		Insert(notificationsTable).
		Columns("user_id", "actor_id", "kind", "post_id", "comment_id", "read", "created_at").
		Values(n.UserID, n.ActorID, string(n.Kind), n.PostID, n.CommentID, n.Read, n.CreatedAt).
		Suffix("RETURNING id"))
	if err != nil {
		return models.Notification{}, err
	}

	if err = row.Scan(&n.NotificationID); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*notificationRepository.CreateNotification").
			Int64("user_id", n.UserID).
			Msg("error creating notification")
		return models.Notification{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return n, nil
}

// ListNotifications returns userID's notifications, newest first.
func (r *notificationRepository) ListNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]models.Notification, error) {
	log := logger.FromContext(ctx)

	where := sq.Eq{"user_id": userID}
	if unreadOnly {
		where["read"] = false
	}

	rows, err := query(ctx, r.db, r.db.builder.
		Select(notificationColumns...).
		From(notificationsTable).
		Where(where).
		OrderBy("created_at DESC", "id DESC"))
	if err != nil {
		log.Err(err).Str("func", "*notificationRepository.ListNotifications").Int64("user_id", userID).Msg("failed to query notifications")
		return nil, err
	}
	defer rows.Close()

	list := make([]models.Notification, 0)
	for rows.Next() {
		var (
			n         models.Notification
			commentID sql.NullInt64
		)
		if err = rows.Scan(&n.NotificationID, &n.UserID, &n.ActorID, &n.Kind, &n.PostID, &commentID, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if commentID.Valid {
			n.CommentID = &commentID.Int64
		}
		list = append(list, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return list, nil
}

// MarkRead marks a notification read. Notifications of other users are
// reported as not found.
func (r *notificationRepository) MarkRead(ctx context.Context, notificationID, userID int64) error {
	res, err := exec(ctx, r.db, r.db.builder.
		Update(notificationsTable).
		Set("read", true).
		Where(sq.Eq{"id": notificationID, "user_id": userID}))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	row, err := queryRow(ctx, r.db, r.db.builder.
		Select("COUNT(*)").
		From(notificationsTable).
		Where(sq.Eq{"user_id": userID, "read": false}))
	if err != nil {
		return 0, err
	}

	var n int64
	if err = row.Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return n, nil
}
