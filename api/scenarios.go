/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario stores the default catalog and
	creates quotes that demonstrate specific features.

AVAILABLE SCENARIOS:

	subscription-pipeline: Subscription quotes across the whole lifecycle
	flat-fee-project:      Project quotes with flat and percent discounts
	seasonal-billing:      Subscription with seasonal tier billing
	retainer-and-hourly:   Maintenance retainer plus hourly engagement

HOW SCENARIOS WORK:
 1. Reset database (delete all quotes, restore default catalog)
 2. Create quotes in the states the scenario demonstrates
 3. Client-side flows (approve/decline) are then driven via the API

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "subscription-pipeline"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, h)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Quote and catalog handlers
  - catalog/defaults.go: The seeded catalog document
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brightline/quote-engine/catalog"
	"github.com/brightline/quote-engine/pricing"
	"github.com/brightline/quote-engine/quote"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "subscription-pipeline",
		Name:        "Subscription Pipeline",
		Description: "Subscription quotes in every lifecycle state, worked-example pricing",
		Category:    "subscription",
	},
	{
		ID:          "flat-fee-project",
		Name:        "Flat-Fee Project",
		Description: "Project quotes with flat-USD and percentage discounts",
		Category:    "project",
	},
	{
		ID:          "seasonal-billing",
		Name:        "Seasonal Billing",
		Description: "Subscription with seasonal tier months and a year-2 range change",
		Category:    "subscription",
	},
	{
		ID:          "retainer-and-hourly",
		Name:        "Retainer & Hourly",
		Description: "Maintenance retainer with included hours, plus an hourly engagement",
		Category:    "retainer",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario resets the database and loads the requested scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if err := h.resetData(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var err error
	switch req.ScenarioID {
	case "subscription-pipeline":
		err = h.loadSubscriptionPipelineScenario(ctx)
	case "flat-fee-project":
		err = h.loadFlatFeeProjectScenario(ctx)
	case "seasonal-billing":
		err = h.loadSeasonalBillingScenario(ctx)
	case "retainer-and-hourly":
		err = h.loadRetainerAndHourlyScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Unknown scenario %q", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "loaded",
		"scenario": req.ScenarioID,
	})
}

// resetData deletes all quotes and restores the default catalog.
func (h *Handler) resetData(ctx context.Context) error {
	quotes, err := h.Store.ListQuotes(ctx)
	if err != nil {
		return err
	}
	for _, q := range quotes {
		if err := h.Store.DeleteQuote(ctx, q.ID); err != nil {
			return err
		}
	}

	raw, err := json.MarshalIndent(catalog.DefaultCatalog(), "", "  ")
	if err != nil {
		return err
	}
	return h.Store.PutCatalogDoc(ctx, raw)
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// subscriptionVars is the baseline subscription deal used across scenarios:
// 100 estimated hours, 20% buffer, 10% discount for the first year.
func subscriptionVars() pricing.LockedVariables {
	return pricing.LockedVariables{
		Hours:                  decimal.NewFromInt(100),
		Buffer:                 decimal.NewFromInt(20),
		DiscountPct:            decimal.NewFromInt(10),
		DiscountDurationMonths: 12,
		BillingSchedule:        pricing.BillingStandard,
		PaymentScheduleYears:   2,
	}
}

func growthChoices() pricing.ClientChoices {
	return pricing.ClientChoices{
		Tier:             "growth",
		PaymentPlan:      "split_pay",
		AmortizationTerm: 24,
	}
}

func (h *Handler) seedQuote(ctx context.Context, q *quote.Quote) error {
	q.CreatedAt = time.Now().UTC()
	return h.Store.CreateQuote(ctx, q)
}

func (h *Handler) loadSubscriptionPipelineScenario(ctx context.Context) error {
	drafted := &quote.Quote{
		ID:           "quote-sub-drafted",
		ClientName:   "Harbor & Main Coffee",
		ClientEmail:  "owner@harborandmain.example",
		ProjectTitle: "Storefront replatform",
		ProjectScope: "Rebuild the online store and wire up subscriptions.",
		ServiceModel: quote.ModelSubscription,
		Status:       quote.StatusDrafted,
		Locked:       subscriptionVars(),
		Choices:      growthChoices(),
	}
	if err := h.seedQuote(ctx, drafted); err != nil {
		return err
	}

	sent := &quote.Quote{
		ID:               "quote-sub-sent",
		ClientName:       "Peralta Family Dental",
		ClientEmail:      "office@peraltadental.example",
		ClientLegalName:  "Peralta Family Dental PLLC",
		ClientEntityType: "PLLC",
		ProjectTitle:     "Patient portal",
		ProjectScope:     "Booking, reminders, and a patient document portal.",
		ServiceModel:     quote.ModelSubscription,
		Status:           quote.StatusSent,
		Locked:           subscriptionVars(),
		Choices:          growthChoices(),
	}
	if err := h.seedQuote(ctx, sent); err != nil {
		return err
	}

	approved := &quote.Quote{
		ID:                 "quote-sub-approved",
		ClientName:         "Northwind Outfitters",
		ClientEmail:        "ops@northwindoutfitters.example",
		ClientLegalName:    "Northwind Outfitters LLC",
		ClientLegalAddress: "41 Pier Rd, Portland, ME 04101",
		ClientEntityType:   "LLC",
		ProjectTitle:       "Rental booking system",
		ProjectScope:       "Gear rental booking with seasonal inventory.",
		ServiceModel:       quote.ModelSubscription,
		Status:             quote.StatusApproved,
		Locked:             subscriptionVars(),
		Choices:            growthChoices(),
	}
	if err := h.seedQuote(ctx, approved); err != nil {
		return err
	}

	declined := &quote.Quote{
		ID:            "quote-sub-declined",
		ClientName:    "Cobble Hill Books",
		ClientEmail:   "hello@cobblehillbooks.example",
		ProjectTitle:  "Online catalog",
		ServiceModel:  quote.ModelSubscription,
		Status:        quote.StatusDeclined,
		Locked:        subscriptionVars(),
		Choices:       growthChoices(),
		DeclineReason: "Monthly total over budget this year",
	}
	return h.seedQuote(ctx, declined)
}

func (h *Handler) loadFlatFeeProjectScenario(ctx context.Context) error {
	flatDiscount := &quote.Quote{
		ID:           "quote-proj-flat",
		ClientName:   "Juniper Yoga Collective",
		ClientEmail:  "studio@juniperyoga.example",
		ProjectTitle: "Class schedule site",
		ProjectScope: "Marketing site with class schedule and signups.",
		ServiceModel: quote.ModelProject,
		Status:       quote.StatusDrafted,
		Locked: pricing.LockedVariables{
			Hours:       decimal.NewFromInt(40),
			Buffer:      decimal.NewFromInt(15),
			DiscountUSD: decimal.NewFromInt(500),
		},
	}
	if err := h.seedQuote(ctx, flatDiscount); err != nil {
		return err
	}

	pctDiscount := &quote.Quote{
		ID:           "quote-proj-pct",
		ClientName:   "Reyes Auto Group",
		ClientEmail:  "marketing@reyesauto.example",
		ProjectTitle: "Inventory microsite",
		ServiceModel: quote.ModelProject,
		Status:       quote.StatusSent,
		Locked: pricing.LockedVariables{
			Hours:       decimal.NewFromInt(80),
			Buffer:      decimal.NewFromInt(20),
			DiscountPct: decimal.NewFromInt(10),
		},
	}
	if err := h.seedQuote(ctx, pctDiscount); err != nil {
		return err
	}

	// Discount exceeds the subtotal; the negative total surfaces the input
	// error instead of hiding it behind a clamp.
	overDiscounted := &quote.Quote{
		ID:           "quote-proj-over",
		ClientName:   "Tinker & Twine Crafts",
		ProjectTitle: "Landing page",
		ServiceModel: quote.ModelProject,
		Status:       quote.StatusDrafted,
		Locked: pricing.LockedVariables{
			Hours:       decimal.NewFromInt(4),
			DiscountUSD: decimal.NewFromInt(1000),
		},
	}
	return h.seedQuote(ctx, overDiscounted)
}

func (h *Handler) loadSeasonalBillingScenario(ctx context.Context) error {
	vars := subscriptionVars()
	vars.BillingSchedule = pricing.BillingSeasonal
	vars.AmortStartMonth = "2026-01"
	vars.Yr1SeasonalRange = "2026-04:2026-10"
	vars.Yr2SeasonalRange = "2027-05:2027-09"
	vars.Yr2StartDate = "2027-01"
	vars.PaymentScheduleYears = 3

	seasonal := &quote.Quote{
		ID:               "quote-seasonal",
		ClientName:       "Lakeside Marina",
		ClientEmail:      "frontdesk@lakesidemarina.example",
		ClientLegalName:  "Lakeside Marina Inc.",
		ClientEntityType: "Corporation",
		ProjectTitle:     "Slip reservation system",
		ProjectScope:     "Seasonal slip reservations, billed only in open months.",
		ServiceModel:     quote.ModelSubscription,
		Status:           quote.StatusSent,
		Locked:           vars,
		Choices:          growthChoices(),
	}
	return h.seedQuote(ctx, seasonal)
}

func (h *Handler) loadRetainerAndHourlyScenario(ctx context.Context) error {
	retainer := &quote.Quote{
		ID:               "quote-maint",
		ClientName:       "Bellwether Accounting",
		ClientEmail:      "it@bellwetheracct.example",
		ClientLegalName:  "Bellwether Accounting LLP",
		ClientEntityType: "LLP",
		ProjectTitle:     "Site care plan",
		ServiceModel:     quote.ModelMaintenance,
		Status:           quote.StatusApproved,
		FinalMonthlyFee:  decimal.NewFromInt(450),
		IncludedHours:    decimal.NewFromInt(4),
	}
	if err := h.seedQuote(ctx, retainer); err != nil {
		return err
	}

	hourly := &quote.Quote{
		ID:           "quote-hourly",
		ClientName:   "Field Notes Farm",
		ClientEmail:  "stand@fieldnotesfarm.example",
		ProjectTitle: "Ad-hoc updates",
		ServiceModel: quote.ModelHourly,
		Status:       quote.StatusSent,
	}
	return h.seedQuote(ctx, hourly)
}
