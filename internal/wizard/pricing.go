package wizard

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MarkupRate is applied to an organizer's base price to get the buyer's price.
var MarkupRate = decimal.RequireFromString("1.20")

// SellingPrice is base x 1.20 rounded to a whole unit, halves rounding up.
// It is a display value; the backend computes the authoritative one.
func SellingPrice(base decimal.Decimal) decimal.Decimal {
	return base.Mul(MarkupRate).Round(0)
}

// PreviewSellingPrice computes the selling price for a raw form value. Empty or
// non-numeric input previews as zero.
func PreviewSellingPrice(raw string) decimal.Decimal {
	base, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return SellingPrice(base)
}

// BookingTotal is the unit price times the ticket quantity.
func BookingTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// ParseBasePrice parses a non-negative price typed into the listing form.
func ParseBasePrice(raw string) (decimal.Decimal, bool) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || price.IsNegative() {
		return decimal.Zero, false
	}
	return price, true
}

// ParseQuantity parses a non-negative whole number typed into the listing form.
func ParseQuantity(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
