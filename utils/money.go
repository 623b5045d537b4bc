package utils

import "math"

// RoundCurrency rounds an amount to the currency's minor unit (two decimal
// places), half up. Prices are never negative, so math.Round's half-away-
// from-zero behaves as half-up here.
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// LineTotal computes a customer-visible line total: unit price times
// quantity, rounded per line before any summation.
func LineTotal(price float64, qty int) float64 {
	return RoundCurrency(price * float64(qty))
}
