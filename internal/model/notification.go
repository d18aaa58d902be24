package model

import "time"

// NotificationType identifies the kind of activity a notification describes.
type NotificationType string

const (
	TypeFileUpload   NotificationType = "file_upload"
	TypeRecordCreate NotificationType = "record_create"
	TypeRecordUpdate NotificationType = "record_update"
	TypeUserAction   NotificationType = "user_action"
	TypeOther        NotificationType = "other"
)

// FilterableTypes lists the notification types offered as filter chips,
// in display order.
var FilterableTypes = []NotificationType{
	TypeFileUpload,
	TypeRecordCreate,
	TypeRecordUpdate,
	TypeUserAction,
}

// Notification is a single feed entry. Records are created by decoding a
// backend response (or the built-in fallback dataset) and are only ever
// mutated by marking them read; everything else changes through a
// wholesale list replacement on reload.
type Notification struct {
	// ID is the backend identifier, unique within the store.
	ID string `json:"id"`

	// Type categorizes the activity that produced this notification.
	Type NotificationType `json:"type"`

	// Title is the short headline shown for the entry.
	Title string `json:"title"`

	// Description is the longer human-readable summary.
	Description string `json:"description"`

	// UserName is the display name of the manager who triggered the event.
	UserName string `json:"user_name"`

	// UserID identifies that manager; it is the manager filter axis value.
	UserID string `json:"user_id"`

	// Timestamp is when the event happened.
	Timestamp time.Time `json:"timestamp"`

	// Read reports whether the user has acted on this entry.
	Read bool `json:"read"`

	// Details holds short context tags; at most three are rendered.
	Details []string `json:"details"`
}

// ManagerOption is a (UserID, UserName) pair offered in the manager
// filter select.
type ManagerOption struct {
	UserID   string
	UserName string
}
