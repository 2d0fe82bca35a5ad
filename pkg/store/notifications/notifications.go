package notifications

import (
	"context"
	"time"

	"github.com/autoqa/autoqa/pkg/core"
	errs "github.com/autoqa/autoqa/pkg/errors"
	"github.com/autoqa/autoqa/pkg/lumber"
	"github.com/jmoiron/sqlx"
)

type notificationStore struct {
	db     core.DB
	logger lumber.Logger
}

// New returns a new NotificationStore.
func New(db core.DB, logger lumber.Logger) core.NotificationStore {
	return &notificationStore{db: db, logger: logger}
}

func (n *notificationStore) Create(ctx context.Context, notification *core.Notification) error {
	return n.db.Execute(func(db *sqlx.DB) error {
		if _, err := db.ExecContext(ctx, insertQuery, notification.UserID, notification.Message, time.Now()); err != nil {
			return errs.SQLError(err)
		}
		return nil
	})
}

func (n *notificationStore) FindByUser(ctx context.Context, userID string, offset, limit int) ([]*core.Notification, error) {
	notifications := make([]*core.Notification, 0)
	return notifications, n.db.Execute(func(db *sqlx.DB) error {
		args := map[string]interface{}{"user_id": userID, "offset": offset, "limit": limit}
		rows, err := db.NamedQueryContext(ctx, findByUserQuery, args)
		if err != nil {
			return errs.SQLError(err)
		}
		defer rows.Close()
		for rows.Next() {
			notification := new(core.Notification)
			if err = rows.Scan(&notification.ID, &notification.Message, &notification.Read, &notification.Created); err != nil {
				return errs.SQLError(err)
			}
			notification.UserID = userID
			notifications = append(notifications, notification)
		}
		return nil
	})
}

func (n *notificationStore) MarkRead(ctx context.Context, userID string, notificationID int64) error {
	return n.db.Execute(func(db *sqlx.DB) error {
		result, err := db.ExecContext(ctx, markReadQuery, notificationID, userID)
		if err != nil {
			return errs.SQLError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return errs.SQLError(err)
		}
		if affected == 0 {
			return errs.ErrRowsNotFound
		}
		return nil
	})
}

const insertQuery = `
INSERT
	INTO
	notifications(
		user_id,
		message,
		created_at
	)
VALUES (?,?,?)
`

const findByUserQuery = `
SELECT
	n.id,
	n.message,
	n.is_read,
	n.created_at
FROM
	notifications n
WHERE
	n.user_id = :user_id
ORDER BY
	n.created_at DESC
LIMIT :limit OFFSET :offset
`

const markReadQuery = `
UPDATE
	notifications
SET
	is_read = TRUE
WHERE
	id = ?
	AND user_id = ?
	AND is_read = FALSE
`
