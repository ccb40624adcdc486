/*
Package quote provides the quote domain model and lifecycle.

PURPOSE:
  A quote is the unit of work in this system: an admin drafts it under one
  of four service models, sends it to a client, the client approves or
  declines through the calculator link, and an approved quote feeds the
  contract assembler. This package owns the record shape, the status
  machine, and the dispatch into the pricing engine.

KEY CONCEPTS IN THIS FILE (types.go):
  - ServiceModel: project | subscription | maintenance | hourly
  - Status: the quote lifecycle states
  - Quote: the persisted record (locked variables + client choices)
  - ContractDoc: metadata for a generated legal document

LOCKING:
  LockedVariables are the operator's side of the deal. Once a quote is
  Sent they are immutable; ClientChoices stay editable until the quote is
  Approved. Enforcement lives in status.go.

SEE ALSO:
  - status.go: Transition rules
  - evaluate.go: Fee/schedule computation per service model
  - store.go: Persistence interface
*/
package quote

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/brightline/quote-engine/pricing"
)

// =============================================================================
// SERVICE MODELS
// =============================================================================

type ServiceModel string

const (
	ModelProject      ServiceModel = "project"
	ModelSubscription ServiceModel = "subscription"
	ModelMaintenance  ServiceModel = "maintenance"
	ModelHourly       ServiceModel = "hourly"
)

// ValidServiceModel reports whether m names a known service model.
func ValidServiceModel(m ServiceModel) bool {
	switch m {
	case ModelProject, ModelSubscription, ModelMaintenance, ModelHourly:
		return true
	}
	return false
}

// =============================================================================
// STATUS LIFECYCLE
// =============================================================================

type Status string

const (
	StatusDrafted           Status = "Drafted"
	StatusSent              Status = "Sent"
	StatusApproved          Status = "Approved"
	StatusDeclined          Status = "Declined"
	StatusContractGenerated Status = "Contract Generated"
	StatusGenerationFailed  Status = "Generation Failed"
)

// =============================================================================
// QUOTE RECORD
// =============================================================================

// ContractDoc records one generated legal document.
type ContractDoc struct {
	Name        string    `json:"name"` // SOW, MSA, SLA, DPA
	Path        string    `json:"path"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Quote is the persisted quote record.
type Quote struct {
	ID string

	// Client identity, used on documents
	ClientName         string
	ClientEmail        string
	ClientLegalName    string
	ClientLegalAddress string
	ClientEntityType   string

	ProjectTitle string
	ProjectScope string

	ServiceModel ServiceModel
	Status       Status

	// The two halves of the deal
	Locked  pricing.LockedVariables
	Choices pricing.ClientChoices

	// Maintenance-model terms (negotiated directly, no calculator path)
	FinalMonthlyFee decimal.Decimal
	IncludedHours   decimal.Decimal

	// Client feedback captured on decline
	DeclineReason string

	ContractDocs []ContractDoc

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLocked reports whether the operator variables are frozen. Everything
// from Sent onward is locked.
func (q *Quote) IsLocked() bool {
	return q.Status != StatusDrafted
}

// ChoicesEditable reports whether the client may still change tier, plan,
// and term.
func (q *Quote) ChoicesEditable() bool {
	return q.Status == StatusDrafted || q.Status == StatusSent
}
