package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-journal/internal/config"
)

// Journal is the core service responsible for loading and resolving the
// entry collection and rendering the local iCalendar feed.
type Journal struct {
	Clock  Clock    // Interface for time mocking.
	Client EntryAPI // Interface for network abstraction.
}

// RunSync executes the fetch, resolve, and feed-generation pipeline.
// It returns the feed data, the resolved entries (newest first), the count
// of entries written today, and any error.
func (j *Journal) RunSync(ctx context.Context, cfg SyncConfig) ([]byte, []Entry, int, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompEngine)
	log.InfoContext(ctx, config.MsgSyncStarted)

	if j.Client == nil {
		return nil, nil, 0, errors.New(config.ErrClientMissing)
	}

	records, err := j.Client.List(ctx, cfg)
	if err != nil {
		// If context error occurred during the fetch, return it directly.
		if ctx.Err() != nil {
			return nil, nil, 0, ctx.Err()
		}
		return nil, nil, 0, err
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, 0, err
	}

	entries, stats := j.resolveRecords(records)
	now := j.Clock.Now()

	// Newest first; stable tie-break on name for deterministic display.
	sort.SliceStable(entries, func(i, k int) bool {
		if entries[i].Timestamp.Equal(entries[k].Timestamp) {
			return entries[i].Name < entries[k].Name
		}
		return entries[i].Timestamp.After(entries[k].Timestamp)
	})

	for _, e := range entries {
		if ClassifyDelta(DayDelta(now, e.Timestamp)) == RelToday {
			stats.today++
		}
	}

	feed, err := j.buildFeed(entries, now)
	if err != nil {
		return nil, nil, 0, err
	}

	log.Info(config.MsgLoadSuccess,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyKept, len(entries)),
			slog.Int(config.LogKeySkipped, stats.skipped),
			slog.Int(config.LogKeyToday, stats.today),
		),
	)
	log.Debug("Sync finished", config.LogKeyDuration, time.Since(start).Milliseconds())

	return feed, entries, stats.today, nil
}

// syncStats tracks ingestion counters for the final log line.
type syncStats struct {
	processed int
	skipped   int
	today     int
}

// resolveRecords narrows the raw collection to journal-relevant entries.
// Malformed or non-journal records are skipped, never fatal, to maximize
// data recovery from older backends.
func (j *Journal) resolveRecords(records []Record) ([]Entry, syncStats) {
	stats := syncStats{processed: len(records)}
	entries := make([]Entry, 0, len(records))

	for _, r := range records {
		entry, err := Resolve(r)
		if err != nil {
			stats.skipped++

			var kindErr *KindError
			if errors.As(err, &kindErr) {
				slog.Debug(config.MsgSkippedKind,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyEntryID, r.ID,
					config.LogKeyKind, r.Type)
				continue
			}

			slog.Warn(config.MsgSkippedNoTime,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyEntryID, r.ID)
			continue
		}
		entries = append(entries, entry)
	}

	return entries, stats
}

// buildFeed renders the entries as a VCALENDAR of VJOURNAL components so
// calendar clients can subscribe to the journal.
func (j *Journal) buildFeed(entries []Entry, now time.Time) ([]byte, error) {
	if len(entries) == 0 {
		// A valid stub keeps subscribed clients from flagging the feed.
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, e := range entries {
		comp := ical.NewComponent(config.ICalComponent)
		comp.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, e.ID, config.ICalDomain))
		comp.Props.SetText(config.PropSummary, feedSummary(e))
		comp.Props.SetText(config.PropCategories, e.Kind)
		if e.Notes != "" {
			comp.Props.SetText(config.PropDescription, e.Notes)
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDateTime(e.Timestamp)
		comp.Props.Set(dtStartProp)
		comp.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, comp)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// feedSummary renders the one-line summary shown by calendar clients.
func feedSummary(e Entry) string {
	if e.Emoji == "" {
		return e.Name
	}
	return e.Emoji + " " + e.Name
}
