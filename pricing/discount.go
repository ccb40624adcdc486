package pricing

import "github.com/shopspring/decimal"

// =============================================================================
// DISCOUNT RESOLVER - One discount amount from two candidate inputs
// =============================================================================

// ResolveDiscount returns a single discount amount for a subtotal.
//
// Tie-break: a positive flat USD discount wins outright and is returned
// verbatim - it is NOT capped against the subtotal, so callers can produce
// a negative final amount when the flat discount exceeds the subtotal.
// Otherwise a positive percentage yields subtotal * pct/100 (zero subtotal
// yields zero). The two inputs are never combined.
//
// Every place discounts are applied in this package goes through this
// function so the tie-break holds everywhere.
func ResolveDiscount(subtotal, discountUSD, discountPct decimal.Decimal) decimal.Decimal {
	if discountUSD.IsPositive() {
		return discountUSD
	}
	if discountPct.IsPositive() {
		if subtotal.IsZero() {
			return decimal.Zero
		}
		return subtotal.Mul(discountPct).Div(decimal.NewFromInt(100))
	}
	return decimal.Zero
}
