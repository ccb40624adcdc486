package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/brightline/quote-engine/pricing"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func eq(t *testing.T, got decimal.Decimal, want float64, label string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Errorf("%s: expected %v, got %v", label, want, got)
	}
}

// testCatalog mirrors the reference pricing configuration: $100/hr, a Growth
// tier at $150/mo, and a Split Pay plan with 50% of build due upfront.
func testCatalog() pricing.Catalog {
	return pricing.Catalog{
		HourlyRate: d(100),
		Project:    &pricing.ModelInfo{DisplayName: "Project Buyout"},
		Subscription: &pricing.SubscriptionModel{
			ModelInfo: pricing.ModelInfo{DisplayName: "Subscription"},
			Tiers: map[string]pricing.Tier{
				"growth": {
					Name:        "Growth",
					MonthlyRate: d(150),
					Features:    []string{"Feature 1", "Feature 2"},
				},
			},
			PaymentOptions: map[string]pricing.PaymentOption{
				"split_pay": {
					Name:            "Split Pay",
					SetupFeePercent: d(50),
				},
			},
		},
	}
}

func testVars() pricing.LockedVariables {
	return pricing.LockedVariables{
		Hours:                  d(100),
		Buffer:                 d(20),
		DiscountPct:            d(10),
		DiscountDurationMonths: 12,
		BillingSchedule:        pricing.BillingStandard,
		AmortStartMonth:        "2025-01",
		PaymentScheduleYears:   2,
	}
}

func testChoices() pricing.ClientChoices {
	return pricing.ClientChoices{
		Tier:             "growth",
		PaymentPlan:      "split_pay",
		AmortizationTerm: 24,
	}
}

// =============================================================================
// DISCOUNT RESOLVER
// =============================================================================

func TestResolveDiscount_USDWinsOverPercent(t *testing.T) {
	// GIVEN: Both a flat USD and a percentage discount
	// WHEN: Resolving against a $100 subtotal
	// THEN: The flat discount wins outright; they are never combined

	got := pricing.ResolveDiscount(d(100), d(10), d(50))
	eq(t, got, 10, "usd over pct")
}

func TestResolveDiscount_PercentWhenNoUSD(t *testing.T) {
	got := pricing.ResolveDiscount(d(100), decimal.Zero, d(10))
	eq(t, got, 10, "10% of 100")
}

func TestResolveDiscount_ZeroSubtotalPercent(t *testing.T) {
	got := pricing.ResolveDiscount(decimal.Zero, decimal.Zero, d(10))
	eq(t, got, 0, "pct of zero subtotal")
}

func TestResolveDiscount_NoDiscount(t *testing.T) {
	got := pricing.ResolveDiscount(d(500), decimal.Zero, decimal.Zero)
	eq(t, got, 0, "no discount inputs")
}

func TestResolveDiscount_FlatExceedsSubtotal(t *testing.T) {
	// GIVEN: A flat discount larger than the subtotal
	// THEN: It is returned verbatim - no cap. Callers may go negative.

	got := pricing.ResolveDiscount(d(100), d(250), decimal.Zero)
	eq(t, got, 250, "uncapped flat discount")
}

// =============================================================================
// FLAT-FEE CALCULATOR
// =============================================================================

func TestCalculateFlatFee(t *testing.T) {
	// GIVEN: 100 hours at $100/hr with a 20% buffer and 10% discount
	// THEN: subtotal 12000, discount 1200, total 10800

	fees := pricing.CalculateFlatFee(testVars(), testCatalog())

	eq(t, fees.Subtotal, 12000, "subtotal")
	eq(t, fees.DiscountApplied, 1200, "discount")
	eq(t, fees.TotalCost, 10800, "total")
	eq(t, fees.SetupFee, 10800, "setup fee mirrors total")
	if fees.Name != "Project Buyout" {
		t.Errorf("expected model display name, got %q", fees.Name)
	}
}

func TestCalculateFlatFee_ProjectExemption(t *testing.T) {
	vars := testVars()
	vars.Exemptions = pricing.Exemptions{pricing.ComponentProject}

	fees := pricing.CalculateFlatFee(vars, testCatalog())

	eq(t, fees.DiscountApplied, 0, "exempted discount")
	eq(t, fees.TotalCost, 12000, "undiscounted total")
}

func TestCalculateFlatFee_FlatDiscountCanGoNegative(t *testing.T) {
	// The source system has no floor-at-zero clamp; preserved deliberately.
	vars := testVars()
	vars.Hours = d(1)
	vars.Buffer = decimal.Zero
	vars.DiscountPct = decimal.Zero
	vars.DiscountUSD = d(500)

	fees := pricing.CalculateFlatFee(vars, testCatalog())

	eq(t, fees.TotalCost, -400, "negative total preserved")
}

// =============================================================================
// RECURRING-PLAN CALCULATOR
// =============================================================================

func TestCalculateRecurringPlan_WorkedExample(t *testing.T) {
	// GIVEN: The reference worked example
	//   build = 100 * 100 * 1.2        = 12000
	//   setup = 12000 * 50% - 10%      = 5400
	//   amort = (12000-6000)/24 - 10%  = 225
	//   tier  = 150 - 10%              = 135

	fees := pricing.CalculateRecurringPlan(testVars(), testChoices(), testCatalog())

	eq(t, fees.SetupFee, 5400, "setup fee")
	eq(t, fees.AmortizedMonthly, 225, "amortized monthly")
	eq(t, fees.TierMonthly, 135, "tier monthly")
	eq(t, fees.TotalActiveMonthly, 360, "total active monthly")
	eq(t, fees.AmortizedMonthlyDiscount, 25, "amortized discount")
	eq(t, fees.TierMonthlyDiscount, 15, "tier discount")
	eq(t, fees.BuyoutPrice, 10800, "buyout price")
	if fees.AmortizationTerm != 24 {
		t.Errorf("expected term 24, got %d", fees.AmortizationTerm)
	}
	if fees.Name != "Subscription - Growth Tier" {
		t.Errorf("unexpected name %q", fees.Name)
	}
	if len(fees.Features) != 2 {
		t.Errorf("expected 2 features, got %d", len(fees.Features))
	}
}

func TestCalculateRecurringPlan_MonthlyInvariant(t *testing.T) {
	// TotalActiveMonthly must always equal amortized + tier.
	fees := pricing.CalculateRecurringPlan(testVars(), testChoices(), testCatalog())

	if !fees.TotalActiveMonthly.Equal(fees.AmortizedMonthly.Add(fees.TierMonthly)) {
		t.Errorf("invariant violated: %v != %v + %v",
			fees.TotalActiveMonthly, fees.AmortizedMonthly, fees.TierMonthly)
	}
}

func TestCalculateRecurringPlan_Idempotent(t *testing.T) {
	// Two calls with identical inputs must be identical - no hidden state.
	a := pricing.CalculateRecurringPlan(testVars(), testChoices(), testCatalog())
	b := pricing.CalculateRecurringPlan(testVars(), testChoices(), testCatalog())

	if !a.SetupFee.Equal(b.SetupFee) || !a.TotalActiveMonthly.Equal(b.TotalActiveMonthly) {
		t.Error("identical inputs produced different outputs")
	}
}

func TestCalculateRecurringPlan_EmptySentinel(t *testing.T) {
	// GIVEN: Choices that don't resolve against the catalog
	// THEN: Zeroed fees, placeholder name, empty (non-nil) feature list

	fees := pricing.CalculateRecurringPlan(testVars(), pricing.ClientChoices{}, testCatalog())

	if fees.Name != "Select options" {
		t.Errorf("expected placeholder name, got %q", fees.Name)
	}
	eq(t, fees.SetupFee, 0, "sentinel setup fee")
	eq(t, fees.TotalActiveMonthly, 0, "sentinel monthly")
	if fees.Features == nil {
		t.Error("sentinel feature list must be non-nil")
	}
}

func TestCalculateRecurringPlan_MissingCatalog(t *testing.T) {
	fees := pricing.CalculateRecurringPlan(testVars(), testChoices(), pricing.Catalog{})

	if fees.Name != "Loading..." {
		t.Errorf("expected loading sentinel, got %q", fees.Name)
	}
	eq(t, fees.SetupFee, 0, "sentinel setup fee")
}

func TestCalculateRecurringPlan_PerComponentFlatDiscount(t *testing.T) {
	// A flat USD discount is resolved per component, so it is subtracted
	// from the setup, amortized, and tier fees independently. That is the
	// documented business rule, reproduced exactly.
	vars := testVars()
	vars.DiscountPct = decimal.Zero
	vars.DiscountUSD = d(50)

	fees := pricing.CalculateRecurringPlan(vars, testChoices(), testCatalog())

	eq(t, fees.SetupFee, 5950, "setup: 6000 - 50")
	eq(t, fees.AmortizedMonthly, 200, "amortized: 250 - 50")
	eq(t, fees.TierMonthly, 100, "tier: 150 - 50")
	eq(t, fees.BuyoutPrice, 11950, "buyout: 12000 - 50")
}

func TestCalculateRecurringPlan_Exemptions(t *testing.T) {
	// GIVEN: setup and amortized both exempted
	// THEN: Those components and the buyout price carry no discount,
	//       while the tier fee remains discounted
	vars := testVars()
	vars.Exemptions = pricing.Exemptions{pricing.ComponentSetup, pricing.ComponentAmortized}

	fees := pricing.CalculateRecurringPlan(vars, testChoices(), testCatalog())

	eq(t, fees.SetupFee, 6000, "undiscounted setup")
	eq(t, fees.AmortizedMonthly, 250, "undiscounted amortized")
	eq(t, fees.TierMonthly, 135, "tier still discounted")
	eq(t, fees.BuyoutPrice, 12000, "buyout discount suppressed")
}

func TestCalculateRecurringPlan_SingleBuildExemptionKeepsBuyoutDiscount(t *testing.T) {
	// Only when BOTH setup and amortized are exempted does the buyout
	// discount vanish; a lone exemption leaves it in place.
	vars := testVars()
	vars.Exemptions = pricing.Exemptions{pricing.ComponentSetup}

	fees := pricing.CalculateRecurringPlan(vars, testChoices(), testCatalog())

	eq(t, fees.SetupFee, 6000, "undiscounted setup")
	eq(t, fees.BuyoutPrice, 10800, "buyout still discounted")
}
