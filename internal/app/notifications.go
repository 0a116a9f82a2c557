package app

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// NotificationType selects the glyph, color and default lifetime of a toast.
type NotificationType int

// Notification types.
const (
	NotificationSuccess NotificationType = iota
	NotificationError
	NotificationWarning
	NotificationInfo
	// NotificationLoading renders with the spinner instead of a glyph.
	NotificationLoading
)

// LoadingNotificationID is the fixed ID of the spinner toast.
const LoadingNotificationID = "loading"

const maxNotifications = 10

var notificationNames = map[NotificationType]string{
	NotificationSuccess: "success",
	NotificationError:   "error",
	NotificationWarning: "warning",
	NotificationInfo:    "info",
	NotificationLoading: "loading",
}

func (n NotificationType) String() string {
	if name, ok := notificationNames[n]; ok {
		return name
	}
	return "unknown"
}

// Notification is a toast shown in the top-right corner.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the toast outlived its duration. Toasts without
// a duration never expire.
func (n Notification) IsExpired() bool {
	return n.Duration > 0 && time.Since(n.CreatedAt) > n.Duration
}

// toastQueue keeps at most maxNotifications toasts, dropping the oldest.
// It is not synchronized; State guards it.
type toastQueue []Notification

func (q *toastQueue) push(t NotificationType, message string, d time.Duration) string {
	id := uuid.NewString()
	*q = append(*q, Notification{ID: id, Type: t, Message: message, CreatedAt: time.Now(), Duration: d})
	if over := len(*q) - maxNotifications; over > 0 {
		*q = slices.Delete(*q, 0, over)
	}
	return id
}

func (q *toastQueue) remove(id string) {
	*q = slices.DeleteFunc(*q, func(n Notification) bool { return n.ID == id })
}

func (q *toastQueue) prune() {
	*q = slices.DeleteFunc(*q, Notification.IsExpired)
}

func (q toastQueue) active() []Notification {
	out := make([]Notification, 0, len(q))
	for _, n := range q {
		if !n.IsExpired() {
			out = append(out, n)
		}
	}
	return out
}

func (q *toastQueue) upsertLoading(message string) {
	if i := slices.IndexFunc(*q, func(n Notification) bool { return n.ID == LoadingNotificationID }); i >= 0 {
		(*q)[i].Message = message
		return
	}
	*q = append(*q, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}
