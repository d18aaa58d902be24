package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"notifeed/internal/model"
)

func testRecords() []model.Notification {
	now := time.Now()
	return []model.Notification{
		{ID: "1", UserID: "a", UserName: "Alice", Timestamp: now, Read: false},
		{ID: "2", UserID: "b", UserName: "Bob", Timestamp: now, Read: false},
		{ID: "3", UserID: "a", UserName: "Alice", Timestamp: now, Read: true},
		{ID: "4", UserID: "c", UserName: "Carol", Timestamp: now, Read: false},
	}
}

func TestStoreReplaceAllCopies(t *testing.T) {
	s := NewStore()
	in := testRecords()
	s.ReplaceAll(in)

	// Mutating the input slice must not reach the store.
	in[0].Read = true
	require.False(t, s.Records()[0].Read)

	// Mutating a returned copy must not reach the store either.
	out := s.Records()
	out[1].Read = true
	require.False(t, s.Records()[1].Read)
}

func TestStoreMarkRead(t *testing.T) {
	s := NewStore()
	s.ReplaceAll(testRecords())

	require.True(t, s.MarkRead("2"))
	require.True(t, s.Records()[1].Read)

	// Marking twice stays read and is still a success.
	require.True(t, s.MarkRead("2"))
	require.True(t, s.Records()[1].Read)
}

func TestStoreMarkReadAbsentIsNoop(t *testing.T) {
	s := NewStore()
	s.ReplaceAll(testRecords())

	require.False(t, s.MarkRead("nope"))

	for _, n := range s.Records()[:2] {
		require.False(t, n.Read)
	}
}

func TestStoreManagerOptionsFirstSeenOrder(t *testing.T) {
	s := NewStore()
	s.ReplaceAll(testRecords())

	require.Equal(t, []model.ManagerOption{
		{UserID: "a", UserName: "Alice"},
		{UserID: "b", UserName: "Bob"},
		{UserID: "c", UserName: "Carol"},
	}, s.ManagerOptions())
}

func TestStoreManagerOptionsSkipBlankIDs(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]model.Notification{
		{ID: "1", UserID: "", UserName: "Nobody"},
		{ID: "2", UserID: "a", UserName: "Alice"},
	})

	require.Equal(t, []model.ManagerOption{
		{UserID: "a", UserName: "Alice"},
	}, s.ManagerOptions())
}
