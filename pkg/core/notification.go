package core

import (
	"context"
	"time"
)

// Notification is a user facing event record, shown on the dashboard.
type Notification struct {
	ID      int64     `db:"id" json:"id"`
	UserID  string    `db:"user_id" json:"-"`
	Message string    `db:"message" json:"message"`
	Read    bool      `db:"is_read" json:"read"`
	Created time.Time `db:"created_at" json:"createdAt"`
}

// NotificationStore defines datastore operation for working with notifications.
type NotificationStore interface {
	// Create persists a new notification.
	Create(ctx context.Context, notification *Notification) error
	// FindByUser returns the notifications of a user, newest first.
	FindByUser(ctx context.Context, userID string, offset, limit int) ([]*Notification, error)
	// MarkRead flags a user's notification as read.
	MarkRead(ctx context.Context, userID string, notificationID int64) error
}
