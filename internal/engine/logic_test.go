package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-journal/internal/config"
)

// TestDayDelta_Boundaries verifies the floor-based millisecond arithmetic
// of the relative date policy. The divisor is a fixed 86,400,000 ms/day;
// the computation is intentionally not calendar-aware.
func TestDayDelta_Boundaries(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deltaMS  int64
		expected int64
	}{
		{"Zero", 0, 0},
		{"JustUnderOneDay", config.MillisPerDay - 1, 0},
		{"ExactlyOneDay", config.MillisPerDay, 1},
		{"SixDays", 6 * config.MillisPerDay, 6},
		{"JustUnderSevenDays", 7*config.MillisPerDay - 1, 6},
		{"SevenDays", 7 * config.MillisPerDay, 7},
		{"FutureTimestamp", -1, -1}, // floor, not truncation
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := now.Add(-time.Duration(tt.deltaMS) * time.Millisecond)
			assert.Equal(t, tt.expected, DayDelta(now, ts))
		})
	}
}

// TestFormatRelative_Policy covers the full display policy:
// 0 -> Today, 1 -> Yesterday, 2..6 -> "N days ago", 7+ -> month/day.
func TestFormatRelative_Policy(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		deltaMS int64
		want    string
	}{
		{"SameInstant", 0, config.FallbackToday},
		{"LateToday", config.MillisPerDay - 1, config.FallbackToday},
		{"ExactlyYesterday", config.MillisPerDay, config.FallbackYesterday},
		{"TwoDays", 2 * config.MillisPerDay, fmt.Sprintf(config.FallbackDaysAgo, 2)},
		{"SixDays", 6 * config.MillisPerDay, fmt.Sprintf(config.FallbackDaysAgo, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := now.Add(-time.Duration(tt.deltaMS) * time.Millisecond)
			assert.Equal(t, tt.want, FormatRelative(now, ts, nil))
		})
	}

	// Seven full days falls through to the abbreviated month/day format.
	weekOld := now.Add(-time.Duration(7*config.MillisPerDay) * time.Millisecond)
	assert.Equal(t, weekOld.Format(config.DateFormatMonthDay), FormatRelative(now, weekOld, nil))
	assert.Equal(t, "Jun 8", FormatRelative(now, weekOld, nil))
}

// TestFormatRelative_InjectedFormatter verifies the UI hook receives the
// classified bucket and the raw day count.
func TestFormatRelative_InjectedFormatter(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	ts := now.Add(-time.Duration(3*config.MillisPerDay) * time.Millisecond)

	got := FormatRelative(now, ts, func(bucket RelBucket, days int64, _ time.Time) string {
		assert.Equal(t, RelDaysAgo, bucket)
		assert.Equal(t, int64(3), days)
		return "localized"
	})
	assert.Equal(t, "localized", got)
}

// TestResolveKind covers canonical values and legacy aliases.
func TestResolveKind(t *testing.T) {
	tests := []struct {
		raw      string
		wantKind string
		wantOK   bool
	}{
		{"dream", config.KindDream, true},
		{"journal", config.KindJournal, true},
		{"note", config.KindJournal, true}, // legacy spelling
		{"tada", config.KindTada, true},
		{"accomplishment", config.KindTada, true}, // legacy spelling
		{"gratitude", config.KindGratitude, true},
		{" Dream ", config.KindDream, true}, // whitespace + case tolerated
		{"recipe", "", false},
		{"workout", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.raw), func(t *testing.T) {
			kind, ok := ResolveKind(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

// TestResolveTimestamp_Precedence verifies the fixed fallback order
// timestamp > startedAt > date > createdAt.
func TestResolveTimestamp_Precedence(t *testing.T) {
	base := Record{
		ID:   "1",
		Type: config.KindJournal,
	}

	tests := []struct {
		name   string
		modify func(*Record)
		want   time.Time
	}{
		{
			name: "TimestampWinsOverAll",
			modify: func(r *Record) {
				r.Timestamp = "2025-01-04T08:00:00Z"
				r.StartedAt = "2025-01-03T08:00:00Z"
				r.Date = "2025-01-02"
				r.CreatedAt = "2025-01-01T08:00:00Z"
			},
			want: time.Date(2025, 1, 4, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "StartedAtBeatsDate",
			modify: func(r *Record) {
				r.StartedAt = "2025-01-03T08:00:00Z"
				r.Date = "2025-01-02"
			},
			want: time.Date(2025, 1, 3, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "DateOnly",
			modify: func(r *Record) {
				r.Date = "2025-01-02"
			},
			want: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "CreatedAtAsLastResort",
			modify: func(r *Record) {
				r.CreatedAt = "2025-01-01T08:00:00Z"
			},
			want: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.modify(&r)
			entry, err := Resolve(r)
			assert.NoError(t, err)
			assert.True(t, tt.want.Equal(entry.Timestamp), "got %v", entry.Timestamp)
		})
	}
}

// TestResolve_NoTimestamp ensures records violating the timestamp
// invariant are rejected (the loader skips them).
func TestResolve_NoTimestamp(t *testing.T) {
	_, err := Resolve(Record{ID: "7", Type: config.KindDream})
	assert.ErrorIs(t, err, ErrNoTimestamp)
}

// TestResolve_Fields checks field carry-over and the name fallback.
func TestResolve_Fields(t *testing.T) {
	entry, err := Resolve(Record{
		ID:          "42",
		Type:        "note",
		SubCategory: "morning-pages",
		Emoji:       "📝",
		Category:    "purple",
		Notes:       "slept well",
		Dream:       &DreamDetail{Lucidity: 3, Vividness: 4},
		CreatedAt:   "2025-02-01T07:30:00Z",
	})
	assert.NoError(t, err)
	assert.Equal(t, config.KindJournal, entry.Kind)
	assert.Equal(t, "note", entry.RawType, "legacy spelling must be retained for filtering")
	assert.Equal(t, config.FallbackName, entry.Name)
	assert.Equal(t, "morning-pages", entry.SubCategory)
	assert.Equal(t, 3, entry.Dream.Lucidity)
}

// TestResolveRecords_Stats verifies the ingestion counters that feed the
// load-success log line: every record is counted as processed, every
// dropped record as skipped.
func TestResolveRecords_Stats(t *testing.T) {
	j := &Journal{}

	records := []Record{
		{ID: "1", Type: "journal", Timestamp: "2025-06-14T08:00:00Z"},
		{ID: "2", Type: "recipe", Timestamp: "2025-06-14T09:00:00Z"}, // non-journal kind
		{ID: "3", Type: "journal"},                                   // no timestamp
	}

	entries, stats := j.resolveRecords(records)

	assert.Len(t, entries, 1)
	assert.Equal(t, 3, stats.processed)
	assert.Equal(t, 2, stats.skipped)
}
