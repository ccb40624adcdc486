/*
status.go - Quote status machine

PURPOSE:
  Encodes which lifecycle transitions are legal:

    Drafted ──send──> Sent ──approve──> Approved ──generate──> Contract Generated
                       │                    │
                       │                    └──(failure)──> Generation Failed
                       └──decline──> Declined

  Generation Failed may retry back to Contract Generated. Anything else
  is rejected with ErrInvalidTransition rather than silently written.

SEE ALSO:
  - types.go: Status constants
  - api/handlers.go: Exposes the transitions as actions
*/
package quote

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned for a lifecycle move the status
	// machine does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrQuoteLocked is returned when locked variables are modified after
	// the quote was sent.
	ErrQuoteLocked = errors.New("locked variables are immutable once sent")

	// ErrChoicesLocked is returned when client choices are modified after
	// the client decided.
	ErrChoicesLocked = errors.New("client choices are immutable after decision")

	// ErrQuoteNotFound is returned when a quote id does not resolve.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrCatalogNotFound is returned when the catalog document is absent.
	ErrCatalogNotFound = errors.New("catalog document not found")

	// ErrInvalidCatalogDoc is returned when a stored catalog document is
	// rejected before writing.
	ErrInvalidCatalogDoc = errors.New("catalog document is not valid JSON")
)

// transitions lists the allowed moves per current status.
var transitions = map[Status][]Status{
	StatusDrafted:           {StatusSent},
	StatusSent:              {StatusApproved, StatusDeclined},
	StatusApproved:          {StatusContractGenerated, StatusGenerationFailed},
	StatusGenerationFailed:  {StatusContractGenerated, StatusGenerationFailed},
	StatusDeclined:          {},
	StatusContractGenerated: {},
}

// CanTransition reports whether from -> to is a legal lifecycle move.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the quote to the target status, or fails with
// ErrInvalidTransition.
func (q *Quote) Transition(to Status) error {
	if !CanTransition(q.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, q.Status, to)
	}
	q.Status = to
	return nil
}
