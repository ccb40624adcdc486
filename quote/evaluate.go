/*
evaluate.go - Fee and schedule computation per service model

PURPOSE:
  One entry point that dispatches a quote into the pricing engine:

    project       -> flat-fee calculator, no schedule
    subscription  -> recurring-plan calculator + payment schedule
    maintenance   -> pass-through of the negotiated monthly fee
    hourly        -> pass-through of the catalog hourly rate

  The maintenance and hourly models carry no algorithmic content - their
  numbers come straight off the quote and catalog, shaped into the same
  CalculatedFees so every downstream consumer reads one type.

SEE ALSO:
  - pricing/calculator.go: The two algorithmic paths
  - pricing/schedule.go: Subscription schedule generation
*/
package quote

import (
	"github.com/brightline/quote-engine/pricing"
)

// Evaluation is the full calculated view of a quote.
type Evaluation struct {
	Fees pricing.CalculatedFees

	// Schedule is set only for subscription quotes.
	Schedule *pricing.ScheduleResult
}

// Evaluate computes fees (and, for subscriptions, the payment schedule)
// for a quote against the catalog. The only error is a missing calendar
// on the subscription path.
func Evaluate(q *Quote, cat pricing.Catalog, cal pricing.Calendar) (Evaluation, error) {
	switch q.ServiceModel {
	case ModelSubscription:
		fees := pricing.CalculateRecurringPlan(q.Locked, q.Choices, cat)
		sched, err := pricing.GenerateSchedule(q.Locked, fees, cal)
		if err != nil {
			return Evaluation{}, err
		}
		return Evaluation{Fees: fees, Schedule: &sched}, nil

	case ModelMaintenance:
		name := "Maintenance"
		if cat.Maintenance != nil && cat.Maintenance.DisplayName != "" {
			name = cat.Maintenance.DisplayName
		}
		return Evaluation{Fees: pricing.CalculatedFees{
			Name:               name,
			TierMonthly:        q.FinalMonthlyFee,
			TotalActiveMonthly: q.FinalMonthlyFee,
			Features:           []string{},
		}}, nil

	case ModelHourly:
		name := "Hourly"
		if cat.Hourly != nil && cat.Hourly.DisplayName != "" {
			name = cat.Hourly.DisplayName
		}
		return Evaluation{Fees: pricing.CalculatedFees{
			Name:     name,
			Subtotal: cat.HourlyRate,
			Features: []string{},
		}}, nil

	default:
		// Project is also the fallback for unknown models, matching the
		// flat-fee presentation of a single due-on-start amount.
		return Evaluation{Fees: pricing.CalculateFlatFee(q.Locked, cat)}, nil
	}
}
