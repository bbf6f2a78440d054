package models

import (
	"time"
)

// DrawStatus represents the lifecycle status of a draw
type DrawStatus string

const (
	// DrawStatusUnscheduled is a virtual status: no draw row exists for the
	// selected date. It is never persisted by the engine.
	DrawStatusUnscheduled DrawStatus = "UNSCHEDULED"
	DrawStatusScheduled   DrawStatus = "SCHEDULED"
	// DrawStatusExecuting is console-local, held while winner retrieval for a
	// triggered execution is still pending.
	DrawStatusExecuting DrawStatus = "EXECUTING"
	DrawStatusCompleted DrawStatus = "COMPLETED"
)

// DrawType represents the type of a draw
type DrawType string

const (
	DrawTypeDaily    DrawType = "DAILY"
	DrawTypeSaturday DrawType = "SATURDAY"
)

// DrawTypeForDate derives the draw type from the date's weekday. Weekend
// dates get the special draw, everything else is a daily draw.
func DrawTypeForDate(date time.Time) DrawType {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return DrawTypeSaturday
	default:
		return DrawTypeDaily
	}
}

// Draw represents a draw event as returned by the draw-execution engine.
// The ID is minted by the engine on scheduling and is absent beforehand.
type Draw struct {
	ID               string     `json:"id,omitempty"`
	DrawDate         time.Time  `json:"drawDate"`
	DrawType         DrawType   `json:"drawType"`
	EligibleDigits   []int      `json:"eligibleDigits"`
	UseDefaultDigits bool       `json:"useDefaultDigits"`
	Status           DrawStatus `json:"status"`
	NumWinners       int        `json:"numWinners"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// DigitSelection captures the default-or-explicit choice for eligible
// last-digits. Constructors keep the two cases from drifting into a
// nullable-slice convention: a default selection carries no digit set at
// all, an explicit selection owns a normalised copy of its digits.
type DigitSelection struct {
	useDefault bool
	digits     []int
}

// DefaultDigits returns a selection that tracks the weekday defaults.
func DefaultDigits() DigitSelection {
	return DigitSelection{useDefault: true}
}

// ExplicitDigits returns a manually curated selection. The digit set is
// copied, deduplicated and kept in ascending order; digits outside 0-9 are
// dropped.
func ExplicitDigits(digits []int) DigitSelection {
	var seen [10]bool
	for _, d := range digits {
		if d >= 0 && d <= 9 {
			seen[d] = true
		}
	}
	out := make([]int, 0, 10)
	for d := 0; d <= 9; d++ {
		if seen[d] {
			out = append(out, d)
		}
	}
	return DigitSelection{digits: out}
}

// IsDefault reports whether the selection tracks the weekday defaults.
func (s DigitSelection) IsDefault() bool {
	return s.useDefault
}

// Digits returns a copy of the explicit digit set, or nil for a default
// selection.
func (s DigitSelection) Digits() []int {
	if s.useDefault {
		return nil
	}
	out := make([]int, len(s.digits))
	copy(out, s.digits)
	return out
}
