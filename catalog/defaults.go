/*
defaults.go - Pre-built pricing catalog

PURPOSE:
  Provides a ready-to-use catalog document for fresh installs and demo
  seeding. Operators customize it through the config endpoint; the engine
  never depends on these specific values.

SEE ALSO:
  - catalog.go: JSON schema and conversion
  - api/scenarios.go: Seeds this catalog into the store
*/
package catalog

import "github.com/shopspring/decimal"

func flex(v float64) FlexNumber { return FlexNumber{decimal.NewFromFloat(v)} }

func flexPtr(v float64) *FlexNumber {
	f := flex(v)
	return &f
}

// DefaultCatalog returns the starter pricing configuration: one project
// model, a three-tier subscription with two payment plans, and the two
// pass-through models.
func DefaultCatalog() CatalogJSON {
	return CatalogJSON{
		BaseRates: BaseRatesJSON{HourlyRate: flex(100)},
		CompanyInfo: CompanyInfoJSON{
			Name:        "Brightline Digital LLC",
			Address:     "2200 Harbor Blvd, Costa Mesa, CA 92626",
			ContactName: "Jordan Tate",
		},
		Models: map[string]ModelJSON{
			"project": {
				DisplayName: "Project Buyout",
				Description: "Fixed-scope engagement, paid on start.",
			},
			"subscription": {
				DisplayName: "Subscription",
				Description: "Build cost amortized over a term plus a recurring tier fee.",
				Tiers: map[string]TierJSON{
					"starter": {
						Name:         "Starter",
						MonthlyRate:  flex(95),
						FeaturesList: []string{"Email support", "Quarterly review"},
					},
					"growth": {
						Name:        "Growth",
						MonthlyRate: flex(150),
						FeaturesList: []string{
							"Priority support",
							"Monthly review",
							"2 change requests / month",
						},
						RolloverCapHours: flexPtr(50),
					},
					"scale": {
						Name:        "Scale",
						MonthlyRate: flex(275),
						FeaturesList: []string{
							"Dedicated contact",
							"Weekly review",
							"Unlimited change requests",
						},
						RolloverCapHours: flexPtr(100),
					},
				},
				PaymentOptions: map[string]PaymentOption{
					"split_pay": {
						Name:            "Split Pay",
						Description:     "Half the build cost upfront, the rest amortized.",
						SetupFeePercent: flex(50),
					},
					"low_entry": {
						Name:            "Low Entry",
						Description:     "Quarter of the build cost upfront.",
						SetupFeePercent: flex(25),
					},
				},
			},
			"maintenance": {
				DisplayName: "Maintenance",
				Description: "Flat negotiated monthly fee with included hours.",
			},
			"hourly": {
				DisplayName: "Hourly",
				Description: "Billed at the catalog hourly rate.",
			},
		},
	}
}
