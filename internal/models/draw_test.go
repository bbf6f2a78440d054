package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawTypeForDate(t *testing.T) {
	cases := []struct {
		date time.Time
		want DrawType
	}{
		{time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), DrawTypeDaily},    // Friday
		{time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), DrawTypeSaturday}, // Saturday
		{time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC), DrawTypeSaturday}, // Sunday
		{time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC), DrawTypeDaily},    // Monday
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DrawTypeForDate(tc.date), tc.date.Weekday().String())
	}
}

func TestDigitSelection(t *testing.T) {
	t.Run("default carries no digit list", func(t *testing.T) {
		sel := DefaultDigits()
		assert.True(t, sel.IsDefault())
		assert.Nil(t, sel.Digits())
	})

	t.Run("explicit keeps its digits", func(t *testing.T) {
		sel := ExplicitDigits([]int{3, 7})
		assert.False(t, sel.IsDefault())
		assert.Equal(t, []int{3, 7}, sel.Digits())
	})

	t.Run("explicit empty set is not default", func(t *testing.T) {
		sel := ExplicitDigits(nil)
		assert.False(t, sel.IsDefault())
		assert.Empty(t, sel.Digits())
	})
}

func TestValidClaimStatus(t *testing.T) {
	assert.True(t, ValidClaimStatus(ClaimStatusPending))
	assert.True(t, ValidClaimStatus(ClaimStatusPaid))
	assert.True(t, ValidClaimStatus(ClaimStatusFailed))
	assert.False(t, ValidClaimStatus(ClaimStatus("REFUNDED")))
	assert.False(t, ValidClaimStatus(ClaimStatus("")))
}

func TestDrawJSONRoundTrip(t *testing.T) {
	raw := `{"id":"draw-1","drawDate":"2025-05-03T00:00:00Z","drawType":"SATURDAY","eligibleDigits":[0,5],"useDefaultDigits":false,"status":"COMPLETED","numWinners":12}`
	var draw Draw
	require.NoError(t, json.Unmarshal([]byte(raw), &draw))
	assert.Equal(t, "draw-1", draw.ID)
	assert.Equal(t, DrawTypeSaturday, draw.DrawType)
	assert.Equal(t, []int{0, 5}, draw.EligibleDigits)
	assert.Equal(t, DrawStatusCompleted, draw.Status)
	assert.Equal(t, 12, draw.NumWinners)
}
