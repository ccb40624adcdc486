/*
schedule.go - Payment schedule generation

PURPOSE:
  Projects the recurring-plan fees across a multi-year calendar:
  - "Due Today" setup row
  - Gap months before the first active payment
  - Amortized build installments while the term runs
  - Tier fees, every month or masked to seasonal month lists
  - Discount expiry (full-rate add-back and relabeling)
  - A one-time Year 2+ separator when the year-2 rules take effect
  - "End of Year N" summaries every 12th active month

DISCOUNT WINDOW:
  DiscountDurationMonths counts billing cycles from the FIRST ACTIVE
  payment month, not from the start of the loop. Zero means the discount
  never expires. When the window closes, the pre-computed discount value
  is added back so the row bills at full rate, and the note switches to
  "(Full Rate)".

SEASONAL MASKING:
  In seasonal billing the tier fee is only billed when the cursor's
  calendar month appears in the active month list. Year 1's list applies
  until the year-2 rules start date; year 2+ uses its own list, inheriting
  year 1's when no explicit year-2 range is configured.

LOOP STATE:
  The generation loop carries a month cursor, a running year-total
  accumulator, a fiscal-year counter, and a "year-2 header shown" flag.
  Gap months consume loop iterations but are never amortization- or
  tier-active.

SEE ALSO:
  - calculator.go: Produces the CalculatedFees this consumes
  - calendar.go: The injected date arithmetic
*/
package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	noteSetupFee     = "Setup Fee (Build Cost Down Payment)"
	noteGap          = "---"
	noteBuildPmt     = "Build Pmt"
	noteBuildPmtFull = "Build Pmt (Full Rate)"
	noteTierFee      = "Tier Fee"
	noteTierFeeFull  = "Tier Fee (Full Rate)"
	noteDiscounted   = "(Discounted)"
)

// defaultScheduleYears applies when PaymentScheduleYears is missing or < 1.
const defaultScheduleYears = 2

// =============================================================================
// DATE PARSING HELPERS
// =============================================================================

// parseYearMonthOrDefault parses "YYYY-MM", falling back to the first of the
// current month plus offsetMonths when the input is empty or malformed.
func parseYearMonthOrDefault(cal Calendar, s string, offsetMonths int) time.Time {
	if t, ok := cal.ParseYearMonth(s); ok {
		return t
	}
	return cal.AddMonths(cal.StartOfMonth(cal.Now()), offsetMonths)
}

// seasonalRange is a parsed "YYYY-MM:YYYY-MM" inclusive month range.
type seasonalRange struct {
	months []int // calendar months 1-12 billed within the range
	desc   string
	start  time.Time
	valid  bool
}

// parseSeasonalRange parses a seasonal range string. Absent or malformed
// input yields an empty month list, never an error.
func parseSeasonalRange(cal Calendar, s string) seasonalRange {
	invalid := seasonalRange{desc: "Invalid Range"}
	if !strings.Contains(s, ":") {
		return invalid
	}
	parts := strings.SplitN(s, ":", 2)
	start, okStart := cal.ParseYearMonth(parts[0])
	end, okEnd := cal.ParseYearMonth(parts[1])
	if !okStart || !okEnd {
		return invalid
	}

	var months []int
	for cur := start; !cal.IsAfter(cur, end); cur = cal.AddMonths(cur, 1) {
		months = append(months, cal.MonthNumber(cur))
	}

	return seasonalRange{
		months: months,
		desc:   cal.FormatMonthYear(start) + " - " + cal.FormatMonthYear(end),
		start:  start,
		valid:  true,
	}
}

func containsMonth(months []int, m int) bool {
	for _, x := range months {
		if x == m {
			return true
		}
	}
	return false
}

// =============================================================================
// SCHEDULE GENERATOR
// =============================================================================

// GenerateSchedule projects the recurring-plan fees into an ordered payment
// schedule plus a total cost. The only failure mode is a nil Calendar; every
// other input has a defined fallback.
func GenerateSchedule(vars LockedVariables, fees CalculatedFees, cal Calendar) (ScheduleResult, error) {
	if cal == nil {
		return ScheduleResult{}, ErrCalendarRequired
	}

	// First month the build installment is due; defaults to next month.
	firstPaymentDate := parseYearMonthOrDefault(cal, vars.AmortStartMonth, 1)

	yr1 := parseSeasonalRange(cal, vars.Yr1SeasonalRange)
	yr2 := parseSeasonalRange(cal, vars.Yr2SeasonalRange)

	// Seasonal billing with no explicit year-2 range: year 2 inherits
	// year 1's months and description.
	if vars.BillingSchedule == BillingSeasonal && vars.Yr2SeasonalRange == "" {
		yr2.months = yr1.months
		yr2.desc = yr1.desc
	}

	// When the year-2+ rules take effect. An explicit date wins; otherwise
	// one calendar year after the year-1 range start. Without either there
	// is no year-2 transition and year 1's rules run for the whole horizon.
	var yr2RulesStart time.Time
	hasYr2Rules := false
	if t, ok := cal.ParseYearMonth(vars.Yr2StartDate); ok {
		yr2RulesStart, hasYr2Rules = t, true
	} else if yr1.valid {
		yr2RulesStart, hasYr2Rules = cal.AddYears(yr1.start, 1), true
	}

	var (
		schedule         []ScheduleRow
		allPaymentsTotal = decimal.Zero
		yearTotal        = decimal.Zero
		fiscalYear       = 1
		shownYr2Header   = false
	)

	if fees.SetupFee.IsPositive() {
		schedule = append(schedule, ScheduleRow{
			Date:   "Due Today",
			Amount: fees.SetupFee,
			Notes:  noteSetupFee,
		})
	}

	years := vars.PaymentScheduleYears
	if years < 1 {
		years = defaultScheduleYears
	}

	// The cursor always starts at the 1st of next month relative to "now",
	// regardless of firstPaymentDate: months before the first payment are
	// rendered as gaps and still consume loop iterations.
	cursor := cal.AddMonths(cal.StartOfMonth(cal.Now()), 1)

	for i := 0; i < years*12; i++ {
		atOrPastYr2 := hasYr2Rules &&
			(cal.IsSameDay(cursor, yr2RulesStart) || cal.IsAfter(cursor, yr2RulesStart))

		if atOrPastYr2 && !shownYr2Header {
			schedule = append(schedule, ScheduleRow{
				Date:   "---",
				Amount: decimal.Zero,
				Notes:  fmt.Sprintf("Year 2+ Schedule (%s) Begins", yr2.desc),
			})
			shownYr2Header = true
		}

		monthNum := cal.MonthNumber(cursor)
		totalDue := decimal.Zero
		var notes []string

		if cal.IsBefore(cursor, firstPaymentDate) {
			// Gap month: billing hasn't started yet.
			notes = append(notes, noteGap)
		} else {
			paymentMonthIdx := cal.MonthsBetween(cursor, firstPaymentDate)

			// Duration 0 means the discount is perpetual.
			isDiscountActive := vars.DiscountDurationMonths == 0 ||
				paymentMonthIdx < vars.DiscountDurationMonths

			// --- Amortized build installment ---
			amortPayment := decimal.Zero
			if paymentMonthIdx < fees.AmortizationTerm {
				amortPayment = fees.AmortizedMonthly // already discounted

				if amortPayment.IsPositive() {
					notes = append(notes, noteBuildPmt)
					if isDiscountActive && fees.AmortizedMonthlyDiscount.IsPositive() {
						notes = append(notes, noteDiscounted)
					}
				}

				// Discount window closed: add the discount back to bill the
				// full rate and relabel the note.
				if !isDiscountActive && fees.AmortizedMonthlyDiscount.IsPositive() {
					amortPayment = amortPayment.Add(fees.AmortizedMonthlyDiscount)

					relabeled := false
					for j, n := range notes {
						if n == noteBuildPmtFull {
							relabeled = true
							break
						}
						if n == noteBuildPmt {
							notes[j] = noteBuildPmtFull
							relabeled = true
							break
						}
					}
					if !relabeled {
						notes = append(notes, noteBuildPmtFull)
					}
				}
			}

			// --- Tier fee ---
			activeMonths := yr1.months
			if atOrPastYr2 {
				activeMonths = yr2.months
			}

			tierPayment := fees.TierMonthly // already discounted
			tierNote := noteTierFee
			tierDiscountNote := ""
			if !isDiscountActive && fees.TierMonthlyDiscount.IsPositive() {
				tierPayment = tierPayment.Add(fees.TierMonthlyDiscount)
				tierNote = noteTierFeeFull
			} else if isDiscountActive && fees.TierMonthlyDiscount.IsPositive() {
				tierDiscountNote = noteDiscounted
			}

			tierDue := decimal.Zero
			if tierPayment.IsPositive() {
				switch vars.BillingSchedule {
				case BillingSeasonal:
					if containsMonth(activeMonths, monthNum) {
						tierDue = tierPayment
						notes = append(notes, tierNote+" (Seasonal)")
						if tierDiscountNote != "" {
							notes = append(notes, tierDiscountNote)
						}
					}
				default:
					tierDue = tierPayment
					notes = append(notes, tierNote)
					if tierDiscountNote != "" {
						notes = append(notes, tierDiscountNote)
					}
				}
			}

			totalDue = amortPayment.Add(tierDue)
			yearTotal = yearTotal.Add(totalDue)
			allPaymentsTotal = allPaymentsTotal.Add(totalDue)
		}

		noteText := noteGap
		if len(notes) > 0 {
			noteText = strings.Join(notes, " + ")
		}
		schedule = append(schedule, ScheduleRow{
			Date:   cal.FormatMonthYear(cursor),
			Amount: totalDue,
			Notes:  noteText,
		})

		// Fiscal year summary every 12th active month, counted from the
		// first payment date.
		if cal.IsSameDay(cursor, firstPaymentDate) || cal.IsAfter(cursor, firstPaymentDate) {
			paymentMonthIdx := cal.MonthsBetween(cursor, firstPaymentDate)
			if paymentMonthIdx > 0 && (paymentMonthIdx+1)%12 == 0 {
				schedule = append(schedule, ScheduleRow{
					Date:   fmt.Sprintf("End of Year %d", fiscalYear),
					Amount: yearTotal,
					Notes:  fmt.Sprintf("Total for Year %d", fiscalYear),
				})
				yearTotal = decimal.Zero
				fiscalYear++
			}
		}

		cursor = cal.AddMonths(cursor, 1)
	}

	return ScheduleResult{
		Schedule:  schedule,
		TotalCost: fees.SetupFee.Add(allPaymentsTotal),
	}, nil
}
