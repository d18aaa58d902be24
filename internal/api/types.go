package api

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"notifeed/internal/model"
)

// listResponse is the envelope returned by GET /notifications.
type listResponse struct {
	Notifications []wireNotification `json:"notifications"`
}

// wireNotification mirrors one backend notification record. Several
// fields are decoded leniently because two variants of the backend have
// been observed in the wild: one serializes timestamps as epoch millis
// and details as an array, the other uses date strings and an object.
type wireNotification struct {
	ID          wireID      `json:"id"`
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	UserName    string      `json:"user_name"`
	UserID      string      `json:"user_id"`
	Timestamp   wireTime    `json:"timestamp"`
	Status      string      `json:"status"`
	Details     wireDetails `json:"details"`
}

// toModel converts a wire record into the store representation.
// status=="read" is the only value that marks a record read; unknown
// types are kept in the feed under the catch-all type.
func (w wireNotification) toModel() model.Notification {
	return model.Notification{
		ID:          string(w.ID),
		Type:        normalizeType(w.Type),
		Title:       w.Title,
		Description: w.Description,
		UserName:    w.UserName,
		UserID:      w.UserID,
		Timestamp:   w.Timestamp.Time,
		Read:        w.Status == "read",
		Details:     w.Details,
	}
}

// normalizeType maps a backend type string to a known notification type.
func normalizeType(t string) model.NotificationType {
	switch nt := model.NotificationType(t); nt {
	case model.TypeFileUpload, model.TypeRecordCreate,
		model.TypeRecordUpdate, model.TypeUserAction:
		return nt
	default:
		return model.TypeOther
	}
}

// wireID accepts both string and numeric identifiers.
type wireID string

func (id *wireID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = wireID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = wireID(n.String())
		return nil
	}

	return fmt.Errorf("id is neither string nor number: %s", data)
}

// wireTime accepts epoch milliseconds (numeric), epoch seconds for
// values too small to be millis, and common date-string layouts.
type wireTime struct {
	time.Time
}

// timeLayouts are tried in order when the timestamp is a string.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		for _, layout := range timeLayouts {
			if parsed, perr := time.Parse(layout, s); perr == nil {
				t.Time = parsed
				return nil
			}
		}
		return fmt.Errorf("unrecognized timestamp format %q", s)
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("timestamp is neither string nor number: %s", data)
	}

	millis := int64(n)
	// Values below ~1e12 cannot be millisecond timestamps for any
	// plausible date; treat them as seconds.
	if millis < 1e12 {
		millis *= 1000
	}
	t.Time = time.UnixMilli(millis)
	return nil
}

// wireDetails accepts either an array of strings or an object, in which
// case the values are taken in sorted key order for determinism.
type wireDetails []string

func (d *wireDetails) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*d = list
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("details is neither array nor object: %s", data)
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		var s string
		if err := json.Unmarshal(obj[k], &s); err == nil {
			values = append(values, s)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(obj[k], &n); err == nil {
			values = append(values, n.String())
			continue
		}
		values = append(values, string(obj[k]))
	}
	*d = values
	return nil
}
