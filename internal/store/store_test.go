package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-journal/internal/config"
	"github.com/tartampluch/go-journal/internal/engine"
	"github.com/tartampluch/go-journal/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), config.CacheDBFileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_ReplaceAndReadSnapshot(t *testing.T) {
	s := openTestStore(t)

	entries := []engine.Entry{
		{ID: "1", Name: "Flying", Kind: config.KindDream, RawType: "dream",
			Emoji: "🌙", Dream: &engine.DreamDetail{Lucidity: 4, Vividness: 5},
			Timestamp: time.Date(2025, 6, 14, 23, 0, 0, 0, time.UTC)},
		{ID: "2", Name: "Morning pages", Kind: config.KindJournal, RawType: "note",
			Timestamp: time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)},
	}

	require.NoError(t, s.ReplaceSnapshot(entries))

	got, err := s.Snapshot()
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "1", got[1].ID)

	// Dream payload round-trips
	require.NotNil(t, got[1].Dream)
	assert.Equal(t, 4, got[1].Dream.Lucidity)
	assert.Nil(t, got[0].Dream, "Non-dream entries carry no payload")

	assert.True(t, entries[0].Timestamp.Equal(got[1].Timestamp))
}

func TestStore_ReplaceSnapshot_DropsPrevious(t *testing.T) {
	s := openTestStore(t)

	first := []engine.Entry{{ID: "old", Name: "Old", Kind: config.KindJournal,
		Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}}
	second := []engine.Entry{{ID: "new", Name: "New", Kind: config.KindTada,
		Timestamp: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)}}

	require.NoError(t, s.ReplaceSnapshot(first))
	require.NoError(t, s.ReplaceSnapshot(second))

	got, err := s.Snapshot()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)
}

func TestStore_UpdateEmoji(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.ReplaceSnapshot([]engine.Entry{
		{ID: "5", Name: "Target", Kind: config.KindJournal,
			Timestamp: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "6", Name: "Bystander", Kind: config.KindJournal, Emoji: "📝",
			Timestamp: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
	}))

	require.NoError(t, s.UpdateEmoji("5", "✨"))

	got, err := s.Snapshot()
	require.NoError(t, err)
	for _, e := range got {
		switch e.ID {
		case "5":
			assert.Equal(t, "✨", e.Emoji)
		case "6":
			assert.Equal(t, "📝", e.Emoji, "Other entries must be untouched")
		}
	}
}

func TestStore_UpdateEmoji_UnknownID(t *testing.T) {
	s := openTestStore(t)

	err := s.UpdateEmoji("missing", "✨")

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrEntryNotFound)
}

func TestStore_EmptySnapshot(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, got)
}
