// Package eligibility resolves which phone-number last-digits may enter a
// draw on a given date.
package eligibility

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

// DefaultDigitsSource provides the per-weekday default digit sets. The draw
// engine is the production source.
type DefaultDigitsSource interface {
	DefaultDigits(ctx context.Context, weekday time.Weekday) ([]int, error)
}

// Resolver supplies the default eligible digits for a date. Results are
// memoised per weekday, so two dates sharing a weekday always resolve to
// the same set within a resolver's lifetime.
type Resolver struct {
	source DefaultDigitsSource

	mu    sync.Mutex
	cache map[time.Weekday][]int
}

// NewResolver creates a new Resolver
func NewResolver(source DefaultDigitsSource) *Resolver {
	return &Resolver{
		source: source,
		cache:  make(map[time.Weekday][]int),
	}
}

// DefaultDigitsFor returns the default digit set for the date's weekday.
// When the source is unreachable it returns an empty set with degraded=true
// instead of an error, so the configuration screen can still render.
// Degraded results are not cached; the next call retries the source.
func (r *Resolver) DefaultDigitsFor(ctx context.Context, date time.Time) (digits []int, degraded bool) {
	weekday := date.Weekday()

	r.mu.Lock()
	cached, ok := r.cache[weekday]
	r.mu.Unlock()
	if ok {
		return append([]int(nil), cached...), false
	}

	fetched, err := r.source.DefaultDigits(ctx, weekday)
	if err != nil {
		slog.Warn("Default-digit source unavailable, continuing degraded", "weekday", weekday.String(), "error", err)
		return []int{}, true
	}
	if fetched == nil {
		fetched = []int{}
	}

	r.mu.Lock()
	r.cache[weekday] = fetched
	r.mu.Unlock()

	return append([]int(nil), fetched...), false
}

// ParseWeekday parses a full weekday name, case-insensitively
func ParseWeekday(day string) (time.Weekday, bool) {
	switch strings.ToLower(day) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	default:
		return 0, false
	}
}
