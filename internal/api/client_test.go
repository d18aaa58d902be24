package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"notifeed/internal/model"
)

func TestListNotificationsDecodesNumericVariant(t *testing.T) {
	// Variant one: numeric ids, epoch-millis timestamps, details array.
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/notifications", r.URL.Path)
			require.Equal(t, "100", r.URL.Query().Get("limit"))
			require.Equal(t, "0", r.URL.Query().Get("offset"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"notifications":[{
				"id": 7,
				"type": "file_upload",
				"title": "File uploaded",
				"description": "Report.xlsx",
				"user_name": "Alice",
				"user_id": "manager_a",
				"timestamp": 1710512345000,
				"status": "unread",
				"details": ["Airtable", "Documents"]
			}]}`))
		},
	))
	defer srv.Close()

	c := NewClient(srv.URL)
	records, err := c.ListNotifications(context.Background(), ListQuery{Limit: 100})

	require.NoError(t, err)
	require.Len(t, records, 1)

	n := records[0]
	require.Equal(t, "7", n.ID)
	require.Equal(t, model.TypeFileUpload, n.Type)
	require.Equal(t, "Alice", n.UserName)
	require.False(t, n.Read)
	require.Equal(t, []string{"Airtable", "Documents"}, n.Details)
	require.Equal(t, time.UnixMilli(1710512345000), n.Timestamp)
}

func TestListNotificationsDecodesStringVariant(t *testing.T) {
	// Variant two: string ids, date-string timestamps, details object.
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"notifications":[{
				"id": "abc",
				"type": "mystery",
				"title": "Something",
				"description": "Else",
				"user_name": "Bob",
				"user_id": "manager_b",
				"timestamp": "2024-03-15T14:19:05Z",
				"status": "read",
				"details": {"base": "Airtable", "table": "Orders"}
			}]}`))
		},
	))
	defer srv.Close()

	c := NewClient(srv.URL)
	records, err := c.ListNotifications(context.Background(), ListQuery{Limit: 10})

	require.NoError(t, err)
	require.Len(t, records, 1)

	n := records[0]
	require.Equal(t, "abc", n.ID)
	// Unknown types land in the catch-all so they still render.
	require.Equal(t, model.TypeOther, n.Type)
	require.True(t, n.Read)
	require.Equal(t,
		time.Date(2024, 3, 15, 14, 19, 5, 0, time.UTC),
		n.Timestamp.UTC(),
	)
	// Object values arrive in sorted key order.
	require.Equal(t, []string{"Airtable", "Orders"}, n.Details)
}

func TestListNotificationsOmitsOpenAxes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			require.False(t, q.Has("type"))
			require.False(t, q.Has("user_id"))
			w.Write([]byte(`{"notifications":[]}`))
		},
	))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ListNotifications(context.Background(), ListQuery{Limit: 100})
	require.NoError(t, err)
}

func TestListNotificationsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ListNotifications(context.Background(), ListQuery{Limit: 100})

	require.Error(t, err)
	require.True(t, IsStatusError(err))
}

func TestListNotificationsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"notifications": "not a list"`))
		},
	))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ListNotifications(context.Background(), ListQuery{Limit: 100})

	require.Error(t, err)
	require.False(t, IsStatusError(err))
}

func TestMarkRead(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotMethod = r.Method
			w.WriteHeader(http.StatusNoContent)
		},
	))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.MarkRead(context.Background(), "42")

	require.NoError(t, err)
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/notifications/42/read", gotPath)
}

func TestMarkReadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadGateway)
		},
	))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.MarkRead(context.Background(), "42")

	require.Error(t, err)
	require.True(t, IsStatusError(err))
}

func TestGetStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/stats", r.URL.Path)
			require.Equal(t, "manager_a", r.URL.Query().Get("user_id"))
			w.Write([]byte(`{
				"total": 12, "unread": 4, "today": 2,
				"by_user": {"Alice": 8, "Bob": 4}
			}`))
		},
	))
	defer srv.Close()

	c := NewClient(srv.URL)
	stats, err := c.GetStats(context.Background(), "manager_a")

	require.NoError(t, err)
	require.Equal(t, 12, stats.Total)
	require.Equal(t, 4, stats.Unread)
	require.Equal(t, 2, stats.Today)
	require.Equal(t, map[string]int{"Alice": 8, "Bob": 4}, stats.ByUser)
	require.Equal(t, model.StatsRemote, stats.Origin)
}

func TestGetStatsOmitsEmptyUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.False(t, r.URL.Query().Has("user_id"))
			w.Write([]byte(`{"total": 0, "unread": 0, "today": 0, "by_user": {}}`))
		},
	))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GetStats(context.Background(), "")
	require.NoError(t, err)
}

func TestWireTimeAcceptsEpochSeconds(t *testing.T) {
	var ts wireTime
	require.NoError(t, ts.UnmarshalJSON([]byte(`1710512345`)))
	require.Equal(t, time.UnixMilli(1710512345000), ts.Time)
}
