package quote_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brightline/quote-engine/pricing"
	"github.com/brightline/quote-engine/quote"
)

func newQuote(model quote.ServiceModel) *quote.Quote {
	return &quote.Quote{
		ID:           "q-1",
		ClientName:   "Test Client",
		ServiceModel: model,
		Status:       quote.StatusDrafted,
		Locked: pricing.LockedVariables{
			Hours:                decimal.NewFromInt(100),
			Buffer:               decimal.NewFromInt(20),
			DiscountPct:          decimal.NewFromInt(10),
			BillingSchedule:      pricing.BillingStandard,
			AmortStartMonth:      "2025-01",
			PaymentScheduleYears: 2,
		},
		Choices: pricing.ClientChoices{
			Tier:             "growth",
			PaymentPlan:      "split_pay",
			AmortizationTerm: 24,
		},
	}
}

func testCatalog() pricing.Catalog {
	return pricing.Catalog{
		HourlyRate:  decimal.NewFromInt(100),
		Project:     &pricing.ModelInfo{DisplayName: "Project Buyout"},
		Maintenance: &pricing.ModelInfo{DisplayName: "Maintenance"},
		Hourly:      &pricing.ModelInfo{DisplayName: "Hourly"},
		Subscription: &pricing.SubscriptionModel{
			ModelInfo: pricing.ModelInfo{DisplayName: "Subscription"},
			Tiers: map[string]pricing.Tier{
				"growth": {Name: "Growth", MonthlyRate: decimal.NewFromInt(150)},
			},
			PaymentOptions: map[string]pricing.PaymentOption{
				"split_pay": {Name: "Split Pay", SetupFeePercent: decimal.NewFromInt(50)},
			},
		},
	}
}

func fixedCal() pricing.Calendar {
	return pricing.NewFixedCalendar(time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC))
}

// =============================================================================
// STATUS MACHINE
// =============================================================================

func TestTransition_HappyPath(t *testing.T) {
	q := newQuote(quote.ModelSubscription)

	for _, to := range []quote.Status{
		quote.StatusSent, quote.StatusApproved, quote.StatusContractGenerated,
	} {
		if err := q.Transition(to); err != nil {
			t.Fatalf("transition to %s: %v", to, err)
		}
	}
	if q.Status != quote.StatusContractGenerated {
		t.Errorf("final status %s", q.Status)
	}
}

func TestTransition_Rejected(t *testing.T) {
	// A drafted quote cannot jump straight to Approved; a declined quote
	// is terminal.
	q := newQuote(quote.ModelSubscription)
	if err := q.Transition(quote.StatusApproved); err == nil {
		t.Error("Drafted -> Approved should be rejected")
	}

	q.Status = quote.StatusDeclined
	if err := q.Transition(quote.StatusSent); err == nil {
		t.Error("Declined is terminal")
	}
}

func TestTransition_GenerationFailureRetry(t *testing.T) {
	q := newQuote(quote.ModelProject)
	q.Status = quote.StatusApproved

	if err := q.Transition(quote.StatusGenerationFailed); err != nil {
		t.Fatalf("approval -> failed: %v", err)
	}
	if err := q.Transition(quote.StatusContractGenerated); err != nil {
		t.Fatalf("failed -> generated (retry): %v", err)
	}
}

func TestLocking(t *testing.T) {
	q := newQuote(quote.ModelSubscription)
	if q.IsLocked() {
		t.Error("drafted quote should not be locked")
	}
	if !q.ChoicesEditable() {
		t.Error("choices editable while drafted")
	}

	q.Status = quote.StatusSent
	if !q.IsLocked() {
		t.Error("sent quote must be locked")
	}
	if !q.ChoicesEditable() {
		t.Error("choices stay editable while sent")
	}

	q.Status = quote.StatusApproved
	if q.ChoicesEditable() {
		t.Error("choices frozen after approval")
	}
}

// =============================================================================
// EVALUATION DISPATCH
// =============================================================================

func TestEvaluate_Subscription(t *testing.T) {
	q := newQuote(quote.ModelSubscription)

	ev, err := quote.Evaluate(q, testCatalog(), fixedCal())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !ev.Fees.SetupFee.Equal(decimal.NewFromInt(5400)) {
		t.Errorf("setup fee %v", ev.Fees.SetupFee)
	}
	if ev.Schedule == nil {
		t.Fatal("subscription must produce a schedule")
	}
	if len(ev.Schedule.Schedule) == 0 {
		t.Error("schedule empty")
	}
}

func TestEvaluate_Project(t *testing.T) {
	q := newQuote(quote.ModelProject)

	ev, err := quote.Evaluate(q, testCatalog(), fixedCal())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !ev.Fees.TotalCost.Equal(decimal.NewFromInt(10800)) {
		t.Errorf("total cost %v", ev.Fees.TotalCost)
	}
	if ev.Schedule != nil {
		t.Error("project quotes have no schedule")
	}
}

func TestEvaluate_Maintenance(t *testing.T) {
	q := newQuote(quote.ModelMaintenance)
	q.FinalMonthlyFee = decimal.NewFromInt(450)

	ev, err := quote.Evaluate(q, testCatalog(), fixedCal())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !ev.Fees.TotalActiveMonthly.Equal(decimal.NewFromInt(450)) {
		t.Errorf("monthly fee %v", ev.Fees.TotalActiveMonthly)
	}
}

func TestEvaluate_Hourly(t *testing.T) {
	q := newQuote(quote.ModelHourly)

	ev, err := quote.Evaluate(q, testCatalog(), fixedCal())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !ev.Fees.Subtotal.Equal(decimal.NewFromInt(100)) {
		t.Errorf("hourly rate %v", ev.Fees.Subtotal)
	}
}
