package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voyago/tour-booking-api/internal/domain"
)

func TestRoundAverage(t *testing.T) {
	tests := []struct {
		name string
		mean float64
		want float64
	}{
		{"whole number", 4.0, 4.0},
		{"one third", 11.0 / 3, 3.7}, // 3.666...
		{"half rounds up", 4.25, 4.3},
		{"mean of 5 4 3", 12.0 / 3, 4.0},
		{"empty set", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.RoundAverage(tt.mean))
		})
	}
}
