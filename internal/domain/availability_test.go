package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/tour-booking-api/internal/domain"
)

func day(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestValidateDates(t *testing.T) {
	window := domain.AvailabilityWindow{
		From:         day("2024-06-01"),
		To:           day("2024-06-30"),
		BlackoutDays: []time.Time{day("2024-06-15")},
	}

	t.Run("all dates inside the window pass", func(t *testing.T) {
		err := domain.ValidateDates(window, []time.Time{
			day("2024-06-01"),
			day("2024-06-10"),
			day("2024-06-30"),
		})

		assert.NoError(t, err)
	})

	t.Run("one bad date fails the whole batch and lists every offender", func(t *testing.T) {
		err := domain.ValidateDates(window, []time.Time{
			day("2024-06-10"),
			day("2024-06-15"), // blackout
			day("2024-07-01"), // after the window
		})

		var invalid *domain.InvalidDatesError
		require.ErrorAs(t, err, &invalid)
		require.Len(t, invalid.Dates, 2)
		assert.Equal(t, day("2024-06-15"), invalid.Dates[0])
		assert.Equal(t, day("2024-07-01"), invalid.Dates[1])
		assert.Contains(t, err.Error(), "2024-06-15")
		assert.Contains(t, err.Error(), "2024-07-01")
	})

	t.Run("date before the window fails", func(t *testing.T) {
		err := domain.ValidateDates(window, []time.Time{day("2024-05-31")})

		var invalid *domain.InvalidDatesError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, []time.Time{day("2024-05-31")}, invalid.Dates)
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		assert.NoError(t, domain.ValidateDates(window, []time.Time{day("2024-06-01")}))
		assert.NoError(t, domain.ValidateDates(window, []time.Time{day("2024-06-30")}))
	})

	t.Run("time of day does not matter", func(t *testing.T) {
		afternoon := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

		assert.NoError(t, domain.ValidateDates(window, []time.Time{afternoon}))
	})

	t.Run("empty batch passes", func(t *testing.T) {
		assert.NoError(t, domain.ValidateDates(window, nil))
	})

	t.Run("no blackout days configured", func(t *testing.T) {
		bare := domain.AvailabilityWindow{
			From: day("2024-06-01"),
			To:   day("2024-06-30"),
		}

		assert.NoError(t, domain.ValidateDates(bare, []time.Time{day("2024-06-15")}))
	})
}
