/*
Package contract assembles the data that fills the legal document set.

PURPOSE:
  An approved quote feeds a bundle of legal documents (SOW, MSA, DPA, and
  an SLA for subscriptions). Those templates are fixed legal text; what
  this package owns is the algorithm-adjacent part - computing the fee
  block per service model, formatting currency, and building the named
  placeholder set the templates consume. Rendering (PDF drawing, storage)
  belongs to the document generator collaborator.

FEE BLOCK PER MODEL:
  project:      totalCost (and the raw number, for a 50/50 split clause)
  subscription: tierName, setupFee, amortizedMonthly, tierMonthly,
                totalActiveMonthly
  maintenance:  monthlyFee, includedHours
  hourly:       hourlyRate

SEE ALSO:
  - quote/evaluate.go: Produces the Evaluation this consumes
  - api/handlers.go: GenerateContract action
*/
package contract

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brightline/quote-engine/catalog"
	"github.com/brightline/quote-engine/quote"
)

const blank = "____________________"

// PlaceholderData is the named value set the document templates read.
type PlaceholderData struct {
	ClientLegalName    string
	ClientLegalAddress string
	ClientEntityType   string

	CompanyName        string
	CompanyAddress     string
	CompanyContactName string

	Today        string
	ProjectTitle string
	ProjectScope string
	ServiceModel quote.ServiceModel

	Fees map[string]string
}

// FormatCurrency renders a decimal as "$1,234.56". Used for every fee
// placeholder on the documents.
func FormatCurrency(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	// group the integer part with commas
	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	out := "$" + b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// orBlank substitutes the template underscore line for missing fields.
func orBlank(s string) string {
	if s == "" {
		return blank
	}
	return s
}

// BuildPlaceholders assembles the placeholder set for a quote's document
// bundle from its evaluation and the catalog's company info.
func BuildPlaceholders(q *quote.Quote, company catalog.CompanyInfoJSON, ev quote.Evaluation, now time.Time) PlaceholderData {
	fees := map[string]string{}
	switch q.ServiceModel {
	case quote.ModelSubscription:
		tierName := ev.Fees.TierName
		if tierName == "" {
			tierName = "N/A"
		}
		fees["tierName"] = tierName
		fees["setupFee"] = FormatCurrency(ev.Fees.SetupFee)
		fees["amortizedMonthly"] = FormatCurrency(ev.Fees.AmortizedMonthly)
		fees["tierMonthly"] = FormatCurrency(ev.Fees.TierMonthly)
		fees["totalActiveMonthly"] = FormatCurrency(ev.Fees.TotalActiveMonthly)
	case quote.ModelMaintenance:
		fees["monthlyFee"] = FormatCurrency(q.FinalMonthlyFee)
		fees["includedHours"] = q.IncludedHours.String()
	case quote.ModelHourly:
		fees["hourlyRate"] = FormatCurrency(ev.Fees.Subtotal)
	default:
		fees["totalCost"] = FormatCurrency(ev.Fees.TotalCost)
		fees["rawTotalCost"] = ev.Fees.TotalCost.String()
	}

	title := q.ProjectTitle
	if title == "" {
		title = "N/A"
	}
	scope := q.ProjectScope
	if scope == "" {
		scope = "(No scope defined)"
	}

	return PlaceholderData{
		ClientLegalName:    orBlank(q.ClientLegalName),
		ClientLegalAddress: orBlank(q.ClientLegalAddress),
		ClientEntityType:   orBlank(q.ClientEntityType),
		CompanyName:        orBlank(company.Name),
		CompanyAddress:     orBlank(company.Address),
		CompanyContactName: orBlank(company.ContactName),
		Today:              now.Format("January 2, 2006"),
		ProjectTitle:       title,
		ProjectScope:       scope,
		ServiceModel:       q.ServiceModel,
		Fees:               fees,
	}
}

// Templates returns the document names to build for a service model.
// Subscriptions additionally get a service-level agreement.
func Templates(model quote.ServiceModel) []string {
	docs := []string{"SOW", "MSA", "DPA"}
	if model == quote.ModelSubscription {
		docs = append(docs, "SLA")
	}
	return docs
}

// SafeClientName strips a client name down to filesystem-safe characters
// for document file naming.
func SafeClientName(name string) string {
	if name == "" {
		name = "Client"
	}
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
