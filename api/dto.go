/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MONEY AT THE EDGE:
  The engine computes in decimal.Decimal; DTOs carry float64 so clients
  read plain JSON numbers. Conversion happens only at this boundary,
  keeping rounding out of the arithmetic.

TYPES:
  Quote:
    QuoteDTO, CreateQuoteRequest, UpdateQuoteRequest,
    UpdateChoicesRequest, DeclineQuoteRequest

  Evaluation:
    FeesDTO, ScheduleRowDTO, EvaluationDTO

  Contracts:
    ContractDocDTO, GenerateContractsResponse

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - pricing/types.go: LockedVariables and ClientChoices (embedded verbatim
    in request bodies; decimal fields accept JSON numbers)
*/
package api

import (
	"time"

	"github.com/brightline/quote-engine/pricing"
	"github.com/brightline/quote-engine/quote"
)

// =============================================================================
// QUOTE TYPES
// =============================================================================

// QuoteDTO represents a quote in API responses.
type QuoteDTO struct {
	ID string `json:"id"`

	ClientName         string `json:"clientName"`
	ClientEmail        string `json:"clientEmail,omitempty"`
	ClientLegalName    string `json:"clientLegalName,omitempty"`
	ClientLegalAddress string `json:"clientLegalAddress,omitempty"`
	ClientEntityType   string `json:"clientEntityType,omitempty"`

	ProjectTitle string `json:"projectTitle,omitempty"`
	ProjectScope string `json:"projectScope,omitempty"`

	ServiceModel string `json:"serviceModel"`
	Status       string `json:"status"`

	Locked  pricing.LockedVariables `json:"lockedVariables"`
	Choices pricing.ClientChoices   `json:"clientChoices"`

	FinalMonthlyFee float64 `json:"finalMonthlyFee,omitempty"`
	IncludedHours   float64 `json:"includedHours,omitempty"`

	DeclineReason string           `json:"declineReason,omitempty"`
	ContractDocs  []ContractDocDTO `json:"contractDocs,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CreateQuoteRequest is the request to draft a new quote.
type CreateQuoteRequest struct {
	ClientName         string `json:"clientName"`
	ClientEmail        string `json:"clientEmail"`
	ClientLegalName    string `json:"clientLegalName"`
	ClientLegalAddress string `json:"clientLegalAddress"`
	ClientEntityType   string `json:"clientEntityType"`

	ProjectTitle string `json:"projectTitle"`
	ProjectScope string `json:"projectScope"`

	ServiceModel string `json:"serviceModel"`

	Locked  pricing.LockedVariables `json:"lockedVariables"`
	Choices pricing.ClientChoices   `json:"clientChoices"`

	FinalMonthlyFee float64 `json:"finalMonthlyFee"`
	IncludedHours   float64 `json:"includedHours"`
}

// UpdateQuoteRequest edits a quote. Nil fields are left untouched. Locked
// variables are rejected once the quote leaves Drafted.
type UpdateQuoteRequest struct {
	ClientName         *string `json:"clientName,omitempty"`
	ClientEmail        *string `json:"clientEmail,omitempty"`
	ClientLegalName    *string `json:"clientLegalName,omitempty"`
	ClientLegalAddress *string `json:"clientLegalAddress,omitempty"`
	ClientEntityType   *string `json:"clientEntityType,omitempty"`

	ProjectTitle *string `json:"projectTitle,omitempty"`
	ProjectScope *string `json:"projectScope,omitempty"`

	Locked *pricing.LockedVariables `json:"lockedVariables,omitempty"`

	FinalMonthlyFee *float64 `json:"finalMonthlyFee,omitempty"`
	IncludedHours   *float64 `json:"includedHours,omitempty"`
}

// UpdateChoicesRequest is the client-side selection update.
type UpdateChoicesRequest struct {
	Choices pricing.ClientChoices `json:"clientChoices"`
}

// DeclineQuoteRequest carries optional client feedback.
type DeclineQuoteRequest struct {
	Reason string `json:"reason"`
}

// =============================================================================
// EVALUATION TYPES
// =============================================================================

// FeesDTO is the itemized fee breakdown in API responses.
type FeesDTO struct {
	Name string `json:"name"`

	Subtotal        float64 `json:"subtotal"`
	DiscountApplied float64 `json:"discountApplied"`
	TotalCost       float64 `json:"totalCost"`

	SetupFee                 float64 `json:"setupFee"`
	AmortizedMonthly         float64 `json:"amortizedMonthly"`
	TierMonthly              float64 `json:"tierMonthly"`
	TotalActiveMonthly       float64 `json:"totalActiveMonthly"`
	AmortizedMonthlyDiscount float64 `json:"amortizedMonthlyDiscount"`
	TierMonthlyDiscount      float64 `json:"tierMonthlyDiscount"`
	AmortizationTerm         int     `json:"amortizationTerm"`
	BuyoutPrice              float64 `json:"buyoutPrice"`

	TierName        string   `json:"tierName,omitempty"`
	TierDescription string   `json:"tierDescription,omitempty"`
	PlanName        string   `json:"planName,omitempty"`
	PlanDescription string   `json:"planDescription,omitempty"`
	Features        []string `json:"features"`
}

// ScheduleRowDTO is one line of the payment schedule.
type ScheduleRowDTO struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes"`
}

// EvaluationDTO is the full calculated view of a quote.
type EvaluationDTO struct {
	Fees     FeesDTO          `json:"fees"`
	Schedule []ScheduleRowDTO `json:"schedule,omitempty"`

	// TotalCost is set only when a schedule exists: setup fee plus the sum
	// of every scheduled payment.
	TotalCost float64 `json:"totalCost,omitempty"`
}

// =============================================================================
// CONTRACT TYPES
// =============================================================================

// ContractDocDTO records one generated legal document.
type ContractDocDTO struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	GeneratedAt string `json:"generatedAt"`
}

// GenerateContractsResponse is the outcome of a contract generation run.
type GenerateContractsResponse struct {
	Status    string           `json:"status"`
	Documents []ContractDocDTO `json:"documents"`
}

// =============================================================================
// SCENARIO TYPES
// =============================================================================

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// MAPPERS
// =============================================================================

func toContractDocDTOs(docs []quote.ContractDoc) []ContractDocDTO {
	if len(docs) == 0 {
		return nil
	}
	out := make([]ContractDocDTO, len(docs))
	for i, d := range docs {
		out[i] = ContractDocDTO{
			Name:        d.Name,
			Path:        d.Path,
			GeneratedAt: d.GeneratedAt.Format(time.RFC3339),
		}
	}
	return out
}

func toQuoteDTO(q *quote.Quote) QuoteDTO {
	return QuoteDTO{
		ID:                 q.ID,
		ClientName:         q.ClientName,
		ClientEmail:        q.ClientEmail,
		ClientLegalName:    q.ClientLegalName,
		ClientLegalAddress: q.ClientLegalAddress,
		ClientEntityType:   q.ClientEntityType,
		ProjectTitle:       q.ProjectTitle,
		ProjectScope:       q.ProjectScope,
		ServiceModel:       string(q.ServiceModel),
		Status:             string(q.Status),
		Locked:             q.Locked,
		Choices:            q.Choices,
		FinalMonthlyFee:    q.FinalMonthlyFee.InexactFloat64(),
		IncludedHours:      q.IncludedHours.InexactFloat64(),
		DeclineReason:      q.DeclineReason,
		ContractDocs:       toContractDocDTOs(q.ContractDocs),
		CreatedAt:          q.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          q.UpdatedAt.Format(time.RFC3339),
	}
}

func toFeesDTO(f pricing.CalculatedFees) FeesDTO {
	features := f.Features
	if features == nil {
		features = []string{}
	}
	return FeesDTO{
		Name:                     f.Name,
		Subtotal:                 f.Subtotal.InexactFloat64(),
		DiscountApplied:          f.DiscountApplied.InexactFloat64(),
		TotalCost:                f.TotalCost.InexactFloat64(),
		SetupFee:                 f.SetupFee.InexactFloat64(),
		AmortizedMonthly:         f.AmortizedMonthly.InexactFloat64(),
		TierMonthly:              f.TierMonthly.InexactFloat64(),
		TotalActiveMonthly:       f.TotalActiveMonthly.InexactFloat64(),
		AmortizedMonthlyDiscount: f.AmortizedMonthlyDiscount.InexactFloat64(),
		TierMonthlyDiscount:      f.TierMonthlyDiscount.InexactFloat64(),
		AmortizationTerm:         f.AmortizationTerm,
		BuyoutPrice:              f.BuyoutPrice.InexactFloat64(),
		TierName:                 f.TierName,
		TierDescription:          f.TierDescription,
		PlanName:                 f.PlanName,
		PlanDescription:          f.PlanDescription,
		Features:                 features,
	}
}

func toEvaluationDTO(ev quote.Evaluation) EvaluationDTO {
	dto := EvaluationDTO{Fees: toFeesDTO(ev.Fees)}
	if ev.Schedule != nil {
		rows := make([]ScheduleRowDTO, len(ev.Schedule.Schedule))
		for i, row := range ev.Schedule.Schedule {
			rows[i] = ScheduleRowDTO{
				Date:   row.Date,
				Amount: row.Amount.InexactFloat64(),
				Notes:  row.Notes,
			}
		}
		dto.Schedule = rows
		dto.TotalCost = ev.Schedule.TotalCost.InexactFloat64()
	}
	return dto
}
