package generator

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/synthetic-datalake-go/datalake"
)

func Test_LatestOf(t *testing.T) {
	early := time.Date(2021, time.March, 1, 8, 0, 0, 0, time.UTC)
	middle := early.Add(time.Hour)
	late := early.AddDate(1, 0, 0)

	assert.Equal(t, early, LatestOf(early))
	assert.Equal(t, late, LatestOf(early, late))
	assert.Equal(t, late, LatestOf(late, early, middle))
	assert.Equal(t, middle, LatestOf(middle, middle))
}

func Test_timestampBetween_Stays_Within_The_Bounds(t *testing.T) {
	// arrange
	faker := gofakeit.New(42)
	lower := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	upper := lower.Add(90 * time.Minute)

	for i := 0; i < 1000; i++ {
		// act
		drawn, err := timestampBetween(faker, lower, upper)

		// assert
		require.NoError(t, err)
		assert.False(t, drawn.Before(lower))
		assert.False(t, drawn.After(upper))
		assert.Zero(t, drawn.Nanosecond())
		assert.Equal(t, time.UTC, drawn.Location())
	}
}

func Test_timestampBetween_With_Equal_Bounds(t *testing.T) {
	bound := time.Date(2024, time.May, 17, 9, 30, 15, 0, time.UTC)

	drawn, err := timestampBetween(gofakeit.New(1), bound, bound)

	require.NoError(t, err)
	assert.Equal(t, bound, drawn)
}

func Test_timestampBetween_Rounds_A_Fractional_Lower_Bound_Up(t *testing.T) {
	// arrange
	lower := time.Date(2024, time.May, 17, 9, 30, 15, 500_000_000, time.UTC)
	upper := time.Date(2024, time.May, 17, 9, 30, 16, 0, time.UTC)

	// act
	drawn, err := timestampBetween(gofakeit.New(1), lower, upper)

	// assert
	require.NoError(t, err)
	assert.Equal(t, upper, drawn)
	assert.True(t, drawn.After(lower))
}

func Test_timestampBetween_Rejects_An_Inverted_Window(t *testing.T) {
	upper := time.Date(2024, time.May, 17, 0, 0, 0, 0, time.UTC)
	lower := upper.Add(time.Second)

	_, err := timestampBetween(gofakeit.New(1), lower, upper)

	assert.ErrorIs(t, err, datalake.ErrTimeWindowInverted)
}
