/*
calculator.go - Flat-fee and recurring-plan calculators

PURPOSE:
  The two calculation paths of the engine:

  CalculateFlatFee ("Project"):
    One-time total for a fixed-scope engagement:
    hours * rate * (1 + buffer/100), minus an optional discount.
    No schedule - callers present TotalCost as a single due-on-start amount.

  CalculateRecurringPlan ("Subscription"):
    Setup fee, amortized build-cost installment, and recurring tier fee,
    each independently discountable, based on the client's tier, payment
    plan, and amortization term.

PER-COMPONENT DISCOUNTS:
  Each of setup, amortized, and tier resolves its discount separately.
  A flat USD discount is therefore subtracted from EACH eligible component.
  That is the documented business rule this engine reproduces, not a bug;
  see the worked example in calculator_test.go.

EMPTY SENTINEL:
  When the catalog or the client's choices are not yet resolvable the
  recurring calculator returns zeroed fees with a placeholder name and an
  empty feature list, so callers can render a "select options" state
  without special-casing.

SEE ALSO:
  - discount.go: Discount tie-break
  - schedule.go: Projects the recurring output across the calendar
*/
package pricing

import (
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// bufferedCost computes hours * hourlyRate * (1 + buffer/100).
func bufferedCost(hours, hourlyRate, buffer decimal.Decimal) decimal.Decimal {
	markup := one.Add(buffer.Div(hundred))
	return hours.Mul(hourlyRate).Mul(markup)
}

// =============================================================================
// FLAT-FEE CALCULATOR ("Project")
// =============================================================================

// CalculateFlatFee computes the one-time total for a fixed-scope engagement.
func CalculateFlatFee(vars LockedVariables, catalog Catalog) CalculatedFees {
	name := "Project"
	if catalog.Project != nil && catalog.Project.DisplayName != "" {
		name = catalog.Project.DisplayName
	}

	subtotal := bufferedCost(vars.Hours, catalog.HourlyRate, vars.Buffer)

	discount := decimal.Zero
	if !vars.Exemptions.Has(ComponentProject) {
		discount = ResolveDiscount(subtotal, vars.DiscountUSD, vars.DiscountPct)
	}
	total := subtotal.Sub(discount)

	return CalculatedFees{
		Name:            name,
		Subtotal:        subtotal,
		DiscountApplied: discount,
		TotalCost:       total,
		// The entire amount is due on start, so it doubles as the setup fee.
		SetupFee: total,
		Features: []string{},
	}
}

// =============================================================================
// RECURRING-PLAN CALCULATOR ("Subscription")
// =============================================================================

// emptyFees is the sentinel returned when fees cannot be computed yet.
func emptyFees(name string) CalculatedFees {
	return CalculatedFees{Name: name, Features: []string{}}
}

// CalculateRecurringPlan computes the setup fee, amortized monthly payment,
// and recurring tier fee for a subscription quote.
func CalculateRecurringPlan(vars LockedVariables, choices ClientChoices, catalog Catalog) CalculatedFees {
	model := catalog.Subscription
	if model == nil {
		return emptyFees("Loading...")
	}

	tier, tierOK := model.Tiers[choices.Tier]
	plan, planOK := model.PaymentOptions[choices.PaymentPlan]
	if !tierOK || !planOK || choices.AmortizationTerm == 0 {
		return emptyFees("Select options")
	}

	// 1. Build cost
	totalBuildCost := bufferedCost(vars.Hours, catalog.HourlyRate, vars.Buffer)

	isSetupExempt := vars.Exemptions.Has(ComponentSetup)
	isAmortExempt := vars.Exemptions.Has(ComponentAmortized)

	// 2. Buyout price: discount over the full build cost, suppressed only
	// when both build-cost components are exempted.
	buildDiscount := decimal.Zero
	if !isSetupExempt || !isAmortExempt {
		buildDiscount = ResolveDiscount(totalBuildCost, vars.DiscountUSD, vars.DiscountPct)
	}
	buyoutPrice := totalBuildCost.Sub(buildDiscount)

	// 3. Setup fee
	setupSubtotal := totalBuildCost.Mul(plan.SetupFeePercent).Div(hundred)
	setupDiscount := decimal.Zero
	if !isSetupExempt {
		setupDiscount = ResolveDiscount(setupSubtotal, vars.DiscountUSD, vars.DiscountPct)
	}
	setupFee := setupSubtotal.Sub(setupDiscount)

	// 4. Amortized monthly payment over the remaining build cost.
	// A term of 0 yields a monthly amount of 0, never a division error
	// (unreachable through the sentinel guard above, but kept explicit).
	remainingBuildCost := totalBuildCost.Sub(setupSubtotal)
	amortSubtotal := decimal.Zero
	if choices.AmortizationTerm > 0 {
		amortSubtotal = remainingBuildCost.Div(decimal.NewFromInt(int64(choices.AmortizationTerm)))
	}
	amortDiscount := decimal.Zero
	if !isAmortExempt {
		amortDiscount = ResolveDiscount(amortSubtotal, vars.DiscountUSD, vars.DiscountPct)
	}
	amortizedMonthly := amortSubtotal.Sub(amortDiscount)

	// 5. Tier fee
	tierSubtotal := tier.MonthlyRate
	tierDiscount := decimal.Zero
	if !vars.Exemptions.Has(ComponentTier) {
		tierDiscount = ResolveDiscount(tierSubtotal, vars.DiscountUSD, vars.DiscountPct)
	}
	tierMonthly := tierSubtotal.Sub(tierDiscount)

	features := tier.Features
	if features == nil {
		features = []string{}
	}

	return CalculatedFees{
		Name:                     model.DisplayName + " - " + tier.Name + " Tier",
		SetupFee:                 setupFee,
		AmortizedMonthly:         amortizedMonthly,
		TierMonthly:              tierMonthly,
		TotalActiveMonthly:       amortizedMonthly.Add(tierMonthly),
		AmortizedMonthlyDiscount: amortDiscount,
		TierMonthlyDiscount:      tierDiscount,
		AmortizationTerm:         choices.AmortizationTerm,
		BuyoutPrice:              buyoutPrice,
		TierName:                 tier.Name,
		TierDescription:          tier.Description,
		PlanName:                 plan.Name,
		PlanDescription:          plan.Description,
		Features:                 features,
	}
}
