package engine

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-journal/internal/config"
)

// RelBucket classifies a day delta for display.
type RelBucket int

const (
	// RelToday covers a delta of exactly 0 whole days.
	RelToday RelBucket = iota
	// RelYesterday covers a delta of exactly 1 whole day.
	RelYesterday
	// RelDaysAgo covers deltas of 2 to config.RelDaysAgoMax whole days.
	RelDaysAgo
	// RelMonthDay covers everything else (a week or more in the past, or
	// timestamps ahead of the clock).
	RelMonthDay
)

// DayDelta computes the whole-day difference between now and the entry
// timestamp as floor(milliseconds / config.MillisPerDay). The arithmetic
// is deliberately not calendar-aware; timestamps near midnight round per
// the raw division.
func DayDelta(now, t time.Time) int64 {
	diff := now.UnixMilli() - t.UnixMilli()
	d := diff / config.MillisPerDay
	// Go integer division truncates toward zero; force floor semantics for
	// negative deltas so future timestamps classify consistently.
	if diff < 0 && diff%config.MillisPerDay != 0 {
		d--
	}
	return d
}

// ClassifyDelta maps a whole-day delta onto its display bucket.
func ClassifyDelta(days int64) RelBucket {
	switch {
	case days == 0:
		return RelToday
	case days == 1:
		return RelYesterday
	case days >= 2 && days <= config.RelDaysAgoMax:
		return RelDaysAgo
	default:
		return RelMonthDay
	}
}

// RelativeFormatter renders a classified timestamp for display. The UI
// injects a localized implementation; FormatRelativeFallback is the
// English default.
type RelativeFormatter func(bucket RelBucket, days int64, t time.Time) string

// FormatRelativeFallback renders the relative-date policy with the
// built-in English vocabulary.
func FormatRelativeFallback(bucket RelBucket, days int64, t time.Time) string {
	switch bucket {
	case RelToday:
		return config.FallbackToday
	case RelYesterday:
		return config.FallbackYesterday
	case RelDaysAgo:
		return fmt.Sprintf(config.FallbackDaysAgo, days)
	default:
		return t.Format(config.DateFormatMonthDay)
	}
}

// FormatRelative applies the full policy in one call: delta, bucket, then
// the supplied formatter (or the fallback when nil).
func FormatRelative(now, t time.Time, f RelativeFormatter) string {
	days := DayDelta(now, t)
	bucket := ClassifyDelta(days)
	if f == nil {
		f = FormatRelativeFallback
	}
	return f(bucket, days, t)
}
