package domain

import "math"

// DerivePrice computes the customer-facing price for a net price and a
// vendor commission percentage:
//
//	derived = net + net * rate/100
//
// Net prices are decimal currency values; the result is rounded
// half-away-from-zero to whole cents.
func DerivePrice(netPrice, commissionRate float64) float64 {
	derived := netPrice + netPrice*(commissionRate/100)

	return math.Round(derived*100) / 100
}

// PriceRoomTypes overwrites every room type's derived price using the
// given commission rate. The input slice is mutated in place.
func PriceRoomTypes(roomTypes []RoomType, commissionRate float64) {
	for i := range roomTypes {
		roomTypes[i].DerivedPrice = DerivePrice(roomTypes[i].NetPrice, commissionRate)
	}
}
