package engine

import (
	"errors"
	"strings"
	"time"

	"github.com/tartampluch/go-journal/internal/config"
)

// Record is the backend wire representation of an entry, exactly as the
// REST API returns it. Older records carry legacy type spellings and any
// one of four timestamp fields; Resolve normalizes both once at ingestion
// so the rest of the application never re-checks them.
type Record struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Notes       string       `json:"notes,omitempty"`
	Type        string       `json:"type"`
	SubCategory string       `json:"subCategory,omitempty"`
	Emoji       string       `json:"emoji,omitempty"`
	Category    string       `json:"category,omitempty"`
	Dream       *DreamDetail `json:"dream,omitempty"`

	// Timestamp fields, interchangeable on the wire. Display resolution
	// follows the fixed precedence timestamp > startedAt > date > createdAt.
	Timestamp string `json:"timestamp,omitempty"`
	StartedAt string `json:"startedAt,omitempty"`
	Date      string `json:"date,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// DreamDetail is the type-specific payload attached to dream entries.
type DreamDetail struct {
	Lucidity  int `json:"lucidity,omitempty"`
	Vividness int `json:"vividness,omitempty"`
}

// Entry is the resolved in-memory representation used by the UI, the feed
// generator, and the snapshot cache.
type Entry struct {
	ID          string
	Name        string
	Notes       string
	Kind        string // canonical kind (config.KindDream, ...)
	RawType     string // legacy spelling as received, kept for filtering
	SubCategory string
	Emoji       string
	Category    string
	Dream       *DreamDetail

	// Timestamp is the single display timestamp resolved at ingestion.
	Timestamp time.Time
}

// ErrNoTimestamp is returned when a record carries none of the four
// timestamp fields. Such records violate the backend invariant and are
// skipped during ingestion.
var ErrNoTimestamp = errors.New(config.ErrDecodeEntries + ": record has no timestamp")

// timestampLayouts are tried in order when parsing a wire timestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ResolveKind maps a wire type string (including legacy aliases) onto the
// canonical kind set. The second return reports whether the type is
// journal-relevant at all; non-journal records (recipes, workouts, ...)
// return false and are dropped by the loader.
func ResolveKind(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case config.KindDream:
		return config.KindDream, true
	case config.KindJournal, config.LegacyTypeNote:
		return config.KindJournal, true
	case config.KindTada, config.LegacyTypeAccomplishment:
		return config.KindTada, true
	case config.KindGratitude:
		return config.KindGratitude, true
	default:
		return "", false
	}
}

// Resolve converts a wire record into its in-memory form. It resolves the
// kind and collapses the timestamp fields into one display timestamp.
// Records without any parseable timestamp return ErrNoTimestamp.
func Resolve(r Record) (Entry, error) {
	kind, ok := ResolveKind(r.Type)
	if !ok {
		return Entry{}, errUnknownKind(r.Type)
	}

	ts, err := resolveTimestamp(r)
	if err != nil {
		return Entry{}, err
	}

	name := r.Name
	if name == "" {
		name = config.FallbackName
	}

	return Entry{
		ID:          r.ID,
		Name:        name,
		Notes:       r.Notes,
		Kind:        kind,
		RawType:     r.Type,
		SubCategory: r.SubCategory,
		Emoji:       r.Emoji,
		Category:    r.Category,
		Dream:       r.Dream,
		Timestamp:   ts,
	}, nil
}

// KindError identifies records whose type is outside the journal set.
type KindError struct {
	Type string
}

func (e *KindError) Error() string {
	return config.MsgSkippedKind + ": " + e.Type
}

func errUnknownKind(t string) error {
	return &KindError{Type: t}
}

// resolveTimestamp applies the fixed precedence order over the four
// optional wire fields and parses the first populated one.
func resolveTimestamp(r Record) (time.Time, error) {
	for _, raw := range []string{r.Timestamp, r.StartedAt, r.Date, r.CreatedAt} {
		if raw == "" {
			continue
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, ErrNoTimestamp
}
