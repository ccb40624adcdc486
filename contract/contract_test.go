package contract_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brightline/quote-engine/catalog"
	"github.com/brightline/quote-engine/contract"
	"github.com/brightline/quote-engine/pricing"
	"github.com/brightline/quote-engine/quote"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{5400, "$5,400.00"},
		{1234567.5, "$1,234,567.50"},
		{-400, "-$400.00"},
		{99.999, "$100.00"},
	}
	for _, c := range cases {
		got := contract.FormatCurrency(decimal.NewFromFloat(c.in))
		if got != c.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTemplates(t *testing.T) {
	// Subscriptions carry an SLA; everything else gets the base bundle.
	if got := contract.Templates(quote.ModelProject); len(got) != 3 {
		t.Errorf("project bundle: %v", got)
	}
	got := contract.Templates(quote.ModelSubscription)
	if len(got) != 4 || got[3] != "SLA" {
		t.Errorf("subscription bundle: %v", got)
	}
}

func TestBuildPlaceholders_Subscription(t *testing.T) {
	q := &quote.Quote{
		ID:              "q-1",
		ClientLegalName: "Acme Holdings LLC",
		ProjectTitle:    "Storefront rebuild",
		ServiceModel:    quote.ModelSubscription,
	}
	ev := quote.Evaluation{Fees: pricing.CalculatedFees{
		TierName:           "Growth",
		SetupFee:           decimal.NewFromInt(5400),
		AmortizedMonthly:   decimal.NewFromInt(225),
		TierMonthly:        decimal.NewFromInt(135),
		TotalActiveMonthly: decimal.NewFromInt(360),
	}}
	company := catalog.CompanyInfoJSON{Name: "Brightline", ContactName: "Jordan"}
	now := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

	data := contract.BuildPlaceholders(q, company, ev, now)

	if data.Fees["setupFee"] != "$5,400.00" {
		t.Errorf("setup fee placeholder %q", data.Fees["setupFee"])
	}
	if data.Fees["totalActiveMonthly"] != "$360.00" {
		t.Errorf("monthly placeholder %q", data.Fees["totalActiveMonthly"])
	}
	if data.Today != "March 5, 2025" {
		t.Errorf("today %q", data.Today)
	}
	// Missing legal address falls back to the template blank line.
	if data.ClientLegalAddress != "____________________" {
		t.Errorf("blank fallback %q", data.ClientLegalAddress)
	}
}

func TestBuildPlaceholders_ProjectRawTotal(t *testing.T) {
	q := &quote.Quote{ServiceModel: quote.ModelProject}
	ev := quote.Evaluation{Fees: pricing.CalculatedFees{TotalCost: decimal.NewFromInt(10800)}}

	data := contract.BuildPlaceholders(q, catalog.CompanyInfoJSON{}, ev, time.Now())

	if data.Fees["totalCost"] != "$10,800.00" {
		t.Errorf("total cost %q", data.Fees["totalCost"])
	}
	// The raw number rides along for the 50/50 split clause.
	if data.Fees["rawTotalCost"] != "10800" {
		t.Errorf("raw total %q", data.Fees["rawTotalCost"])
	}
}

func TestSafeClientName(t *testing.T) {
	if got := contract.SafeClientName("Acme Holdings, LLC"); got != "Acme_Holdings__LLC" {
		t.Errorf("safe name %q", got)
	}
	if got := contract.SafeClientName(""); got != "Client" {
		t.Errorf("empty name %q", got)
	}
}
