package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"notifeed/internal/api"
	"notifeed/internal/model"
)

var errBackendDown = errors.New("backend down")

// fakeBackend scripts the engine's view of the REST client.
type fakeBackend struct {
	listFn    func(q api.ListQuery) ([]model.Notification, error)
	statsFn   func(userID string) (model.Stats, error)
	markErr   error
	markCalls []string
}

func (f *fakeBackend) ListNotifications(
	_ context.Context, q api.ListQuery,
) ([]model.Notification, error) {
	return f.listFn(q)
}

func (f *fakeBackend) MarkRead(_ context.Context, id string) error {
	f.markCalls = append(f.markCalls, id)
	return f.markErr
}

func (f *fakeBackend) GetStats(
	_ context.Context, userID string,
) (model.Stats, error) {
	if f.statsFn == nil {
		return model.Stats{}, errBackendDown
	}
	return f.statsFn(userID)
}

func newTestEngine(b Backend) (*Engine, *Store) {
	s := NewStore()
	return NewEngine(b, s, 100, zerolog.Nop()), s
}

func TestReloadReplacesStore(t *testing.T) {
	want := testRecords()
	b := &fakeBackend{
		listFn: func(q api.ListQuery) ([]model.Notification, error) {
			return want, nil
		},
	}
	e, s := newTestEngine(b)

	res := e.Reload(context.Background(), model.DefaultFilter())

	require.NoError(t, res.Err)
	require.False(t, res.Stale)
	require.False(t, res.FromFallback)
	require.Equal(t, want, s.Records())
}

func TestReloadBuildsQueryFromFilter(t *testing.T) {
	var got api.ListQuery
	b := &fakeBackend{
		listFn: func(q api.ListQuery) ([]model.Notification, error) {
			got = q
			return nil, nil
		},
	}
	e, _ := newTestEngine(b)

	e.Reload(context.Background(), model.Filter{
		Type:    string(model.TypeFileUpload),
		Manager: "manager_a",
	})

	require.Equal(t, "file_upload", got.Type)
	require.Equal(t, "manager_a", got.UserID)
	require.Equal(t, 100, got.Limit)
	require.Zero(t, got.Offset)

	// Open axes are omitted from the query.
	e.Reload(context.Background(), model.DefaultFilter())
	require.Empty(t, got.Type)
	require.Empty(t, got.UserID)
}

func TestReloadFailureSeedsFallbackIntoEmptyStore(t *testing.T) {
	b := &fakeBackend{
		listFn: func(q api.ListQuery) ([]model.Notification, error) {
			return nil, errBackendDown
		},
	}
	e, s := newTestEngine(b)

	res := e.Reload(context.Background(), model.DefaultFilter())

	require.Error(t, res.Err)
	require.True(t, res.FromFallback)
	require.NotZero(t, s.Len())

	unread := 0
	for _, n := range s.Records() {
		if !n.Read {
			unread++
		}
	}
	require.GreaterOrEqual(t, unread, 1)
}

func TestReloadFailureKeepsExistingData(t *testing.T) {
	calls := 0
	existing := testRecords()
	b := &fakeBackend{
		listFn: func(q api.ListQuery) ([]model.Notification, error) {
			calls++
			if calls == 1 {
				return existing, nil
			}
			return nil, errBackendDown
		},
	}
	e, s := newTestEngine(b)

	first := e.Reload(context.Background(), model.DefaultFilter())
	require.NoError(t, first.Err)

	second := e.Reload(context.Background(), model.DefaultFilter())
	require.Error(t, second.Err)
	require.False(t, second.FromFallback)
	require.Equal(t, existing, s.Records())
}

func TestReloadSupersededResultIsDiscarded(t *testing.T) {
	slowStarted := make(chan struct{})
	release := make(chan struct{})
	slow := []model.Notification{{ID: "slow"}}
	fast := []model.Notification{{ID: "fast"}}

	calls := 0
	b := &fakeBackend{
		listFn: func(q api.ListQuery) ([]model.Notification, error) {
			calls++
			if calls == 1 {
				close(slowStarted)
				<-release
				return slow, nil
			}
			return fast, nil
		},
	}
	e, s := newTestEngine(b)

	done := make(chan ReloadResult, 1)
	go func() {
		done <- e.Reload(context.Background(), model.DefaultFilter())
	}()
	<-slowStarted

	// A second reload supersedes the in-flight one.
	fastRes := e.Reload(context.Background(), model.DefaultFilter())
	require.NoError(t, fastRes.Err)
	require.Equal(t, fast, s.Records())

	close(release)
	select {
	case slowRes := <-done:
		require.True(t, slowRes.Stale)
	case <-time.After(5 * time.Second):
		t.Fatal("slow reload never returned")
	}

	// The stale result must not have overwritten the newer data.
	require.Equal(t, fast, s.Records())
}

func TestMarkReadOptimisticOnRemoteFailure(t *testing.T) {
	b := &fakeBackend{markErr: errBackendDown}
	e, s := newTestEngine(b)
	s.ReplaceAll(testRecords())

	err := e.MarkRead(context.Background(), "1")

	require.Error(t, err)
	require.True(t, s.Records()[0].Read)
}

func TestMarkReadIdempotent(t *testing.T) {
	b := &fakeBackend{}
	e, s := newTestEngine(b)
	s.ReplaceAll(testRecords())

	require.NoError(t, e.MarkRead(context.Background(), "1"))
	require.NoError(t, e.MarkRead(context.Background(), "1"))
	require.True(t, s.Records()[0].Read)
}

func TestMarkReadAbsentIDSkipsBackend(t *testing.T) {
	b := &fakeBackend{markErr: errBackendDown}
	e, _ := newTestEngine(b)

	require.NoError(t, e.MarkRead(context.Background(), "nope"))
	require.Empty(t, b.markCalls)
}

func TestFetchStatsPrefersRemoteSnapshot(t *testing.T) {
	remote := model.Stats{
		Total:  42,
		Unread: 7,
		Today:  3,
		ByUser: map[string]int{"Alice": 40, "Bob": 2},
		Origin: model.StatsRemote,
	}
	b := &fakeBackend{
		statsFn: func(userID string) (model.Stats, error) {
			return remote, nil
		},
	}
	e, s := newTestEngine(b)
	s.ReplaceAll(testRecords())

	got := e.FetchStats(context.Background(), model.DefaultFilter())

	// The remote snapshot wins verbatim even though the local page
	// would produce different counts.
	require.Equal(t, remote, got)
}

func TestFetchStatsFallsBackToLocalRecomputation(t *testing.T) {
	b := &fakeBackend{}
	e, s := newTestEngine(b)
	s.ReplaceAll(testRecords())

	filter := model.DefaultFilter()
	got := e.FetchStats(context.Background(), filter)

	require.Equal(t, model.StatsLocal, got.Origin)
	require.Equal(t, e.LocalStats(filter).Total, got.Total)
	require.Equal(t, s.Len(), got.Total)
}

func TestFetchStatsSendsManagerAxis(t *testing.T) {
	var gotUserID string
	b := &fakeBackend{
		statsFn: func(userID string) (model.Stats, error) {
			gotUserID = userID
			return model.Stats{Origin: model.StatsRemote}, nil
		},
	}
	e, _ := newTestEngine(b)

	e.FetchStats(context.Background(), model.Filter{
		Type:    model.FilterAll,
		Manager: "manager_b",
	})
	require.Equal(t, "manager_b", gotUserID)

	e.FetchStats(context.Background(), model.DefaultFilter())
	require.Empty(t, gotUserID)
}
