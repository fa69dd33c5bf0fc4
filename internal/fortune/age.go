package fortune

import "time"

// Ages pairs the two counting conventions the chart works with.
type Ages struct {
	// Calendar is completed years since birth, floored at 0.
	Calendar int `json:"calendar"`
	// Traditional counts the birth year itself as age one, floored at 1.
	Traditional int `json:"traditional"`
}

// ComputeAge derives both ages from the birth date and an explicit asOf
// moment. The caller supplies asOf (the HTTP layer injects request time), so
// the computation stays reproducible for any input.
func ComputeAge(birthYear, birthMonth, birthDay int, asOf time.Time) Ages {
	calendar := asOf.Year() - birthYear
	if int(asOf.Month()) < birthMonth || (int(asOf.Month()) == birthMonth && asOf.Day() < birthDay) {
		calendar--
	}
	if calendar < 0 {
		calendar = 0
	}
	traditional := calendar + 1
	if traditional < 1 {
		traditional = 1
	}
	return Ages{Calendar: calendar, Traditional: traditional}
}
