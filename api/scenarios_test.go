/*
scenarios_test.go - Tests for demo scenario loading

Tests for:
- Scenario listing
- Loading resets quotes and seeds the catalog
- Seeded quotes evaluate against the default catalog
*/
package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestListScenarios(t *testing.T) {
	srv := newTestServer(t)

	var list []ScenarioDTO
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/scenarios", nil, &list)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}
	if len(list) == 0 {
		t.Fatal("no scenarios registered")
	}
}

func TestLoadScenario_Unknown(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/scenarios/load",
		LoadScenarioRequest{ScenarioID: "nope"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", resp.StatusCode)
	}
}

func TestLoadScenario_SubscriptionPipeline(t *testing.T) {
	srv := newTestServer(t)

	// GIVEN: Pre-existing data that the load should clear
	draftSubscription(t, srv)

	// WHEN: Loading the pipeline scenario
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/scenarios/load",
		LoadScenarioRequest{ScenarioID: "subscription-pipeline"}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	// THEN: Only the scenario quotes remain, covering the lifecycle
	var quotes []QuoteDTO
	doJSON(t, http.MethodGet, srv.URL+"/api/quotes", nil, &quotes)

	statuses := map[string]bool{}
	for _, q := range quotes {
		statuses[q.Status] = true
	}
	for _, want := range []string{"Drafted", "Sent", "Approved", "Declined"} {
		if !statuses[want] {
			t.Errorf("scenario missing a quote in status %q", want)
		}
	}
	if len(quotes) != 4 {
		t.Errorf("got %d quotes, want 4", len(quotes))
	}

	// And the current scenario is reported
	var current ScenarioDTO
	doJSON(t, http.MethodGet, srv.URL+"/api/scenarios/current", nil, &current)
	if current.ID != "subscription-pipeline" {
		t.Errorf("current scenario = %q", current.ID)
	}
}

func TestLoadScenario_SeededQuoteEvaluates(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, http.MethodPost, srv.URL+"/api/scenarios/load",
		LoadScenarioRequest{ScenarioID: "subscription-pipeline"}, nil)

	// The approved pipeline quote prices out the worked example
	var ev EvaluationDTO
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/quotes/quote-sub-approved/evaluation", nil, &ev)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}
	if ev.Fees.SetupFee != 5400 {
		t.Errorf("SetupFee = %v, want 5400", ev.Fees.SetupFee)
	}
	if ev.Fees.TotalActiveMonthly != 360 {
		t.Errorf("TotalActiveMonthly = %v, want 360", ev.Fees.TotalActiveMonthly)
	}
}

func TestLoadScenario_SeasonalBilling(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, http.MethodPost, srv.URL+"/api/scenarios/load",
		LoadScenarioRequest{ScenarioID: "seasonal-billing"}, nil)

	var ev EvaluationDTO
	doJSON(t, http.MethodGet, srv.URL+"/api/quotes/quote-seasonal/evaluation", nil, &ev)

	// Seasonal quotes still produce a schedule; tier fees only land inside
	// the configured month ranges.
	if len(ev.Schedule) == 0 {
		t.Fatal("seasonal quote produced no schedule")
	}
	sawSeasonal := false
	for _, row := range ev.Schedule {
		if strings.Contains(row.Notes, "Tier Fee (Seasonal)") {
			sawSeasonal = true
		}
	}
	if !sawSeasonal {
		t.Error("no seasonal tier fee rows in schedule")
	}
}
