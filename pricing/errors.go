/*
errors.go - Error types for the pricing engine

PURPOSE:
  The engine favors defensive defaulting over failing: bad numbers become
  zero, bad dates become computed defaults, missing selections become the
  "empty" sentinel fee output. The one genuine precondition failure is a
  missing Calendar - the schedule generator cannot do date arithmetic
  without one.

USAGE:
  result, err := pricing.GenerateSchedule(vars, fees, nil)
  if errors.Is(err, pricing.ErrCalendarRequired) { ... }

SEE ALSO:
  - schedule.go: Returns ErrCalendarRequired
  - calculator.go: Never errors; returns the empty sentinel instead
*/
package pricing

import "errors"

// ErrCalendarRequired is returned when the schedule generator is invoked
// without a date capability. All other inputs have defined fallbacks.
var ErrCalendarRequired = errors.New("calendar required for schedule generation")
