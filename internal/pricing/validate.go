package pricing

import (
	"fmt"
	"time"

	"github.com/calatours/backoffice/internal/domain"
)

// ValidationResult reports whether a date range is bookable under a contract.
// It is a value, not an error: callers render Reason inline.
type ValidationResult struct {
	Valid  bool
	Reason string
}

func invalid(format string, args ...any) ValidationResult {
	return ValidationResult{Valid: false, Reason: fmt.Sprintf(format, args...)}
}

// ValidateBookingDates checks that the stay's shoulder nights are covered by
// the contract's rate tables. A contract without pre-shoulder rates admits no
// check-in before its start; same for post-shoulder rates and check-out.
func ValidateBookingDates(checkIn, checkOut time.Time, c domain.Contract) ValidationResult {
	if !checkOut.After(checkIn) {
		return invalid("check-out must be after check-in")
	}

	if checkIn.Before(c.Start) {
		preNights := daysBetween(checkIn, c.Start)
		if preNights > len(c.PreShoulderRates) {
			if len(c.PreShoulderRates) == 0 {
				return invalid("check-in %s is before contract start %s and the contract has no pre-shoulder rates",
					checkIn.Format("2006-01-02"), c.Start.Format("2006-01-02"))
			}
			return invalid("check-in is %d nights before contract start but only %d pre-shoulder rates are defined",
				preNights, len(c.PreShoulderRates))
		}
	}

	// The last night of the stay ends on the check-out date, so the deepest
	// post-shoulder night is checkOut-1d.
	lastNight := checkOut.AddDate(0, 0, -1)
	if lastNight.After(c.End) {
		postNights := daysBetween(c.End, lastNight)
		if postNights > len(c.PostShoulderRates) {
			if len(c.PostShoulderRates) == 0 {
				return invalid("check-out %s is after contract end %s and the contract has no post-shoulder rates",
					checkOut.Format("2006-01-02"), c.End.Format("2006-01-02"))
			}
			return invalid("stay extends %d nights past contract end but only %d post-shoulder rates are defined",
				postNights, len(c.PostShoulderRates))
		}
	}

	return ValidationResult{Valid: true}
}
