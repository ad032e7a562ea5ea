package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voyago/tour-booking-api/internal/domain"
)

func TestDerivePrice(t *testing.T) {
	tests := []struct {
		name           string
		netPrice       float64
		commissionRate float64
		want           float64
	}{
		{
			name:           "default rate",
			netPrice:       100,
			commissionRate: 15,
			want:           115,
		},
		{
			name:           "custom rate",
			netPrice:       200,
			commissionRate: 10,
			want:           220,
		},
		{
			name:           "fractional net price rounds to two decimals",
			netPrice:       99.99,
			commissionRate: 15,
			want:           114.99,
		},
		{
			name:           "rounding is half away from zero",
			netPrice:       10.03,
			commissionRate: 12.5,
			want:           11.28, // 11.28375
		},
		{
			name:           "zero net price",
			netPrice:       0,
			commissionRate: 15,
			want:           0,
		},
		{
			name:           "zero rate keeps the net price",
			netPrice:       49.5,
			commissionRate: 0,
			want:           49.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DerivePrice(tt.netPrice, tt.commissionRate)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriceRoomTypes(t *testing.T) {
	roomTypes := []domain.RoomType{
		{Name: "double", NetPrice: 100},
		{Name: "suite", NetPrice: 250.50},
	}

	domain.PriceRoomTypes(roomTypes, 15)

	assert.Equal(t, 115.0, roomTypes[0].DerivedPrice)
	assert.Equal(t, 288.08, roomTypes[1].DerivedPrice) // 288.075 rounds up
	assert.Equal(t, 100.0, roomTypes[0].NetPrice, "net price must stay untouched")
}

func TestEffectiveCommissionRate(t *testing.T) {
	assert.Equal(t, 20.0, domain.Vendor{CommissionRate: 20}.EffectiveCommissionRate())
	assert.Equal(t, domain.DefaultCommissionRate, domain.Vendor{}.EffectiveCommissionRate())
	assert.Equal(t, domain.DefaultCommissionRate, domain.Vendor{CommissionRate: -5}.EffectiveCommissionRate())
}
