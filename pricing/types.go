/*
Package pricing provides the core quote calculation engine.

PURPOSE:
  This package contains the pure calculation logic that turns a set of
  locked business variables and client selections into itemized fees and
  a month-by-month payment schedule. It knows nothing about storage, HTTP,
  or documents - callers feed it plain value types and read back new
  value types.

KEY CONCEPTS IN THIS FILE (types.go):
  - LockedVariables: Operator-set inputs, immutable once a quote is sent
  - ClientChoices: The client's tier/plan/term selection
  - Catalog/Tier/PaymentOption: The shared pricing configuration
  - CalculatedFees: The itemized fee output of both calculators
  - ScheduleRow: One line of the generated payment schedule

DESIGN PRINCIPLES:
  1. Purity: Every function is deterministic given its inputs plus an
     injected Calendar (which carries the clock)
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Defensive defaulting: Bad numeric or date inputs become zeroes and
     computed defaults, never panics

USAGE:
  fees := pricing.CalculateRecurringPlan(vars, choices, catalog)
  result, err := pricing.GenerateSchedule(vars, fees, pricing.NewSystemCalendar())

SEE ALSO:
  - discount.go: Discount resolution tie-break
  - calculator.go: Flat-fee and recurring-plan calculators
  - schedule.go: Payment schedule generation
  - calendar.go: Injected date arithmetic
*/
package pricing

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// FEE COMPONENTS - Named parts of a quote that can be exempted from discounts
// =============================================================================

type FeeComponent string

const (
	ComponentProject   FeeComponent = "project"
	ComponentSetup     FeeComponent = "setup"
	ComponentAmortized FeeComponent = "amortized"
	ComponentTier      FeeComponent = "tier"
)

// Exemptions is the set of fee components excluded from discounting.
type Exemptions []FeeComponent

func (e Exemptions) Has(c FeeComponent) bool {
	for _, x := range e {
		if x == c {
			return true
		}
	}
	return false
}

// =============================================================================
// BILLING SCHEDULE
// =============================================================================

type BillingSchedule string

const (
	BillingStandard BillingSchedule = "standard"
	BillingSeasonal BillingSchedule = "seasonal"
)

// =============================================================================
// LOCKED VARIABLES - Operator inputs, frozen once the quote is sent
// =============================================================================

// LockedVariables holds the business-operator side of a quote. All monetary
// and rate fields use decimal for exact arithmetic; missing or invalid
// upstream values are expected to arrive here as zero.
type LockedVariables struct {
	Hours  decimal.Decimal `json:"hours"`  // estimated labor hours, >= 0
	Buffer decimal.Decimal `json:"buffer"` // contingency percentage, applied as markup

	DiscountUSD decimal.Decimal `json:"discountUsd"` // flat discount; wins over percent when > 0
	DiscountPct decimal.Decimal `json:"discountPct"` // percentage discount, 0-100

	// DiscountDurationMonths counts billing cycles from the first active
	// payment. 0 means the discount never expires.
	DiscountDurationMonths int `json:"discountDurationMonths"`

	Exemptions Exemptions `json:"exemptions,omitempty"`

	BillingSchedule BillingSchedule `json:"billingSchedule"`

	// AmortStartMonth is "YYYY-MM"; empty or unparseable falls back to the
	// 1st of next calendar month.
	AmortStartMonth string `json:"amortStartMonth,omitempty"`

	// Seasonal ranges are inclusive "YYYY-MM:YYYY-MM" month ranges in which
	// the tier fee is billed. Yr2StartDate ("YYYY-MM") is when year-2+ rules
	// take effect; absent means one year after the year-1 range start.
	Yr1SeasonalRange string `json:"yr1SeasonalRange,omitempty"`
	Yr2SeasonalRange string `json:"yr2SeasonalRange,omitempty"`
	Yr2StartDate     string `json:"yr2StartDate,omitempty"`

	// PaymentScheduleYears is the schedule horizon; values < 1 fall back to 2.
	PaymentScheduleYears int `json:"paymentScheduleYears"`
}

// =============================================================================
// CLIENT CHOICES
// =============================================================================

// ClientChoices is the client-selected side of a quote, mutable until the
// quote is locked.
type ClientChoices struct {
	Tier             string `json:"tier"`             // key into Catalog.Subscription.Tiers
	PaymentPlan      string `json:"paymentPlan"`      // key into Catalog.Subscription.PaymentOptions
	AmortizationTerm int    `json:"amortizationTerm"` // months, > 0
}

// =============================================================================
// CATALOG - Shared pricing configuration, read-only to the engine
// =============================================================================

// Tier is a named subscription service level.
type Tier struct {
	Name        string
	Description string
	MonthlyRate decimal.Decimal
	Features    []string

	// RolloverCapHours caps unused included hours carried month to month.
	// nil means the tier has no rollover.
	RolloverCapHours *decimal.Decimal
}

// PaymentOption is a named down-payment structure.
type PaymentOption struct {
	Name        string
	Description string

	// SetupFeePercent is the percent of total build cost due upfront.
	SetupFeePercent decimal.Decimal
}

// ModelInfo carries display metadata for a service model.
type ModelInfo struct {
	DisplayName string
	Description string
}

// SubscriptionModel is the subscription branch of the catalog.
type SubscriptionModel struct {
	ModelInfo
	Tiers          map[string]Tier
	PaymentOptions map[string]PaymentOption
}

// Catalog is the shared pricing configuration document.
type Catalog struct {
	HourlyRate decimal.Decimal

	Project      *ModelInfo
	Subscription *SubscriptionModel
	Maintenance  *ModelInfo
	Hourly       *ModelInfo
}

// =============================================================================
// CALCULATED FEES - Derived, ephemeral, recomputed on every input change
// =============================================================================

// CalculatedFees is the output of both calculators. The flat-fee path fills
// Subtotal/DiscountApplied/TotalCost and mirrors TotalCost into SetupFee;
// the recurring path fills the setup/amortized/tier breakdown.
type CalculatedFees struct {
	Name string

	// Flat-fee shape
	Subtotal        decimal.Decimal
	DiscountApplied decimal.Decimal
	TotalCost       decimal.Decimal

	// Recurring-plan shape
	SetupFee                  decimal.Decimal
	AmortizedMonthly          decimal.Decimal
	TierMonthly               decimal.Decimal
	TotalActiveMonthly        decimal.Decimal
	AmortizedMonthlyDiscount  decimal.Decimal
	TierMonthlyDiscount       decimal.Decimal
	AmortizationTerm          int
	BuyoutPrice               decimal.Decimal

	TierName        string
	TierDescription string
	PlanName        string
	PlanDescription string
	Features        []string
}

// =============================================================================
// SCHEDULE OUTPUT
// =============================================================================

// ScheduleRow is one line of the payment schedule: a monthly payment, the
// "Due Today" setup row, an "End of Year N" summary, or a separator.
type ScheduleRow struct {
	Date   string
	Amount decimal.Decimal
	Notes  string
}

// ScheduleResult is the full schedule plus the quote total.
type ScheduleResult struct {
	Schedule  []ScheduleRow
	TotalCost decimal.Decimal
}
