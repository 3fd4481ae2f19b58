package form

import "time"

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

const (
	SuccessNotificationTTL = 4 * time.Second
	ErrorNotificationTTL   = 6 * time.Second
)

// Notification is a transient message for the toast area. Clients hide it
// after DurationMs.
type Notification struct {
	Kind       NotificationKind `json:"kind"`
	Message    string           `json:"message"`
	DurationMs int64            `json:"durationMs"`
	ExpiresAt  time.Time        `json:"expiresAt"`
}
