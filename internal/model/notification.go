package model

import "time"

// NotificationType classifies a notification for display.
type NotificationType string

// Notification type constants.
const (
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
	NotificationOverdue NotificationType = "overdue"
)

// Notification is a short-lived message raised by a store event.
// It is never persisted.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// Type selects the toast style.
	Type NotificationType `json:"type"`

	// Title is the short headline.
	Title string `json:"title"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// Timestamp is when this notification was generated.
	Timestamp time.Time `json:"timestamp"`

	// ExpiresAt is when the notification leaves the active set on its own.
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the notification's lifetime has elapsed at now.
func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}
