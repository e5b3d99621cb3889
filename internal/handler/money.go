package handler

import "github.com/shopspring/decimal"

// money rounds v half away from zero to two decimal places for display.
// Services keep full precision; only responses are rounded.
func money(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
