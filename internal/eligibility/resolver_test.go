package eligibility

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	digits map[time.Weekday][]int
	err    error
	calls  int
}

func (f *fakeSource) DefaultDigits(_ context.Context, weekday time.Weekday) ([]int, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.digits[weekday], nil
}

func TestResolverDeterminism(t *testing.T) {
	source := &fakeSource{digits: map[time.Weekday][]int{
		time.Monday: {0, 1},
		time.Friday: {8, 9},
	}}
	r := NewResolver(source)
	ctx := context.Background()

	// Two Mondays three weeks apart
	mondayA := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	mondayB := time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Monday, mondayA.Weekday())
	require.Equal(t, time.Monday, mondayB.Weekday())

	digitsA, degradedA := r.DefaultDigitsFor(ctx, mondayA)
	digitsB, degradedB := r.DefaultDigitsFor(ctx, mondayB)

	assert.False(t, degradedA)
	assert.False(t, degradedB)
	assert.Equal(t, digitsA, digitsB)
	assert.Equal(t, []int{0, 1}, digitsA)

	t.Run("same weekday hits the memo, not the source", func(t *testing.T) {
		assert.Equal(t, 1, source.calls)
	})

	t.Run("different weekday resolves independently", func(t *testing.T) {
		friday := time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC)
		require.Equal(t, time.Friday, friday.Weekday())
		digits, degraded := r.DefaultDigitsFor(ctx, friday)
		assert.False(t, degraded)
		assert.Equal(t, []int{8, 9}, digits)
	})
}

func TestResolverDegradedFallback(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	r := NewResolver(source)
	ctx := context.Background()

	digits, degraded := r.DefaultDigitsFor(ctx, time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC))

	assert.True(t, degraded)
	assert.Empty(t, digits)
	assert.NotNil(t, digits)

	t.Run("degraded results are not cached", func(t *testing.T) {
		source.err = nil
		source.digits = map[time.Weekday][]int{time.Monday: {0, 1}}

		digits, degraded := r.DefaultDigitsFor(ctx, time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC))
		assert.False(t, degraded)
		assert.Equal(t, []int{0, 1}, digits)
	})
}

func TestParseWeekday(t *testing.T) {
	for name, want := range map[string]time.Weekday{
		"monday":   time.Monday,
		"Saturday": time.Saturday,
		"SUNDAY":   time.Sunday,
	} {
		got, ok := ParseWeekday(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got)
	}

	_, ok := ParseWeekday("someday")
	assert.False(t, ok)
}
