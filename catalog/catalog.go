/*
Package catalog provides JSON to Go pricing-catalog conversion.

PURPOSE:
  Converts the shared pricing configuration document into pricing.Catalog
  values. This enables pricing changes without code changes - the operator
  edits the config document through the admin surface, and the factory
  builds the proper Go structs for the engine.

WHY JSON?
  - Non-developers can adjust rates, tiers, and payment plans
  - Easy integration with the admin UI
  - Single singleton document in the store ("main")

JSON SCHEMA:
  {
    "base_rates": {"hourly_rate": 100},
    "company_info": {"name": "...", "contact_name": "..."},
    "models": {
      "project":      {"display_name": "Project Buyout"},
      "subscription": {
        "display_name": "Subscription",
        "tiers": {
          "growth": {
            "name": "Growth",
            "monthly_rate": 150,
            "features_list": ["..."],
            "rollover_cap_hours": 50
          }
        },
        "payment_options": {
          "split_pay": {"name": "Split Pay", "setup_fee_percent_of_build": 50}
        }
      },
      "maintenance":  {"display_name": "Maintenance"},
      "hourly":       {"display_name": "Hourly"}
    }
  }

PARSE-OR-ZERO:
  Numeric fields accept JSON numbers or numeric strings; anything else
  becomes zero. The engine's defensive-defaulting contract starts here -
  a malformed rate never raises, it prices at zero.

SEE ALSO:
  - pricing/types.go: Catalog, Tier, PaymentOption
  - store/sqlite: Persists the raw JSON document
*/
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/brightline/quote-engine/pricing"
)

// =============================================================================
// FLEXIBLE NUMBERS - Accept numbers or numeric strings, default to zero
// =============================================================================

// FlexNumber unmarshals from a JSON number or a numeric string. Missing,
// empty, or malformed values decode to zero rather than erroring.
type FlexNumber struct {
	decimal.Decimal
}

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		f.Decimal = decimal.Zero
		return nil
	}
	s = strings.Trim(s, `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		f.Decimal = decimal.Zero
		return nil
	}
	f.Decimal = d
	return nil
}

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CatalogJSON is the JSON representation of the pricing catalog document.
type CatalogJSON struct {
	BaseRates   BaseRatesJSON        `json:"base_rates"`
	CompanyInfo CompanyInfoJSON      `json:"company_info"`
	Models      map[string]ModelJSON `json:"models"`
}

type BaseRatesJSON struct {
	HourlyRate FlexNumber `json:"hourly_rate"`
}

// CompanyInfoJSON identifies the provider on generated documents.
type CompanyInfoJSON struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	ContactName string `json:"contact_name"`
}

type ModelJSON struct {
	DisplayName    string                   `json:"display_name"`
	Description    string                   `json:"description,omitempty"`
	Tiers          map[string]TierJSON      `json:"tiers,omitempty"`
	PaymentOptions map[string]PaymentOption `json:"payment_options,omitempty"`
}

type TierJSON struct {
	Name             string      `json:"name"`
	Description      string      `json:"description,omitempty"`
	MonthlyRate      FlexNumber  `json:"monthly_rate"`
	FeaturesList     []string    `json:"features_list,omitempty"`
	RolloverCapHours *FlexNumber `json:"rollover_cap_hours,omitempty"`
}

type PaymentOption struct {
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	SetupFeePercent FlexNumber `json:"setup_fee_percent_of_build"`
}

// =============================================================================
// FACTORY
// =============================================================================

// Parse converts a raw catalog document into the engine's Catalog plus the
// company info used by the contract assembler.
func Parse(raw []byte) (pricing.Catalog, CompanyInfoJSON, error) {
	var doc CatalogJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return pricing.Catalog{}, CompanyInfoJSON{}, fmt.Errorf("parse catalog: %w", err)
	}
	return Build(doc), doc.CompanyInfo, nil
}

// Build converts the decoded JSON schema into a pricing.Catalog.
func Build(doc CatalogJSON) pricing.Catalog {
	cat := pricing.Catalog{
		HourlyRate: doc.BaseRates.HourlyRate.Decimal,
	}

	for key, m := range doc.Models {
		info := pricing.ModelInfo{DisplayName: m.DisplayName, Description: m.Description}
		switch key {
		case "project":
			p := info
			cat.Project = &p
		case "maintenance":
			p := info
			cat.Maintenance = &p
		case "hourly":
			p := info
			cat.Hourly = &p
		case "subscription":
			sub := &pricing.SubscriptionModel{
				ModelInfo:      info,
				Tiers:          make(map[string]pricing.Tier, len(m.Tiers)),
				PaymentOptions: make(map[string]pricing.PaymentOption, len(m.PaymentOptions)),
			}
			for tk, tj := range m.Tiers {
				tier := pricing.Tier{
					Name:        tj.Name,
					Description: tj.Description,
					MonthlyRate: tj.MonthlyRate.Decimal,
					Features:    tj.FeaturesList,
				}
				if tj.RolloverCapHours != nil {
					hoursCap := tj.RolloverCapHours.Decimal
					tier.RolloverCapHours = &hoursCap
				}
				sub.Tiers[tk] = tier
			}
			for pk, pj := range m.PaymentOptions {
				sub.PaymentOptions[pk] = pricing.PaymentOption{
					Name:            pj.Name,
					Description:     pj.Description,
					SetupFeePercent: pj.SetupFeePercent.Decimal,
				}
			}
			cat.Subscription = sub
		}
	}

	return cat
}
