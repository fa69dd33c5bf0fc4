// Package models holds the chart domain types shared by the fortune engine,
// the orchestration service, and the HTTP layer.
package models

import (
	"fmt"
)

// Gender of the chart subject. The engine only consults it for decadal
// fortune direction.
type Gender string

const (
	GenderMale   Gender = "男"
	GenderFemale Gender = "女"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// CalendarSystem flags how the submitted date should be read. The lunar↔solar
// conversion itself happens inside the external chart engine.
type CalendarSystem string

const (
	CalendarSolar CalendarSystem = "solar"
	CalendarLunar CalendarSystem = "lunar"
)

// BirthRecord is the immutable input of a chart computation.
//
// Invariants (enforced by Validate at the input boundary, assumed by the
// engine):
//   - Year in 1900..2100
//   - Month in 1..12, Day in 1..31
//   - TimeIndex in 0..12; 0 and 12 both denote the midnight double-hour
//     under two distinct historical conventions, so both stay representable
type BirthRecord struct {
	Year      int            `json:"year"`
	Month     int            `json:"month"`
	Day       int            `json:"day"`
	TimeIndex int            `json:"time_index"`
	Gender    Gender         `json:"gender"`
	Calendar  CalendarSystem `json:"calendar"`
	Name      string         `json:"name,omitempty"`
}

// Validate applies the form-boundary range checks. The fortune engine never
// re-validates; out-of-range dates are rejected here or not at all.
func (b BirthRecord) Validate() error {
	switch {
	case b.Year < 1900 || b.Year > 2100:
		return fmt.Errorf("year must be between 1900 and 2100, got %d", b.Year)
	case b.Month < 1 || b.Month > 12:
		return fmt.Errorf("month must be between 1 and 12, got %d", b.Month)
	case b.Day < 1 || b.Day > 31:
		return fmt.Errorf("day must be between 1 and 31, got %d", b.Day)
	case b.TimeIndex < 0 || b.TimeIndex > 12:
		return fmt.Errorf("time index must be between 0 and 12, got %d", b.TimeIndex)
	case !b.Gender.Valid():
		return fmt.Errorf("gender must be %s or %s", GenderMale, GenderFemale)
	case b.Calendar != CalendarSolar && b.Calendar != CalendarLunar:
		return fmt.Errorf("calendar must be %q or %q", CalendarSolar, CalendarLunar)
	}
	return nil
}

// CacheKey is a deterministic identity for the computed chart. The display
// name is deliberately excluded: two submissions differing only by name share
// a skeleton and a fortune derivation.
func (b BirthRecord) CacheKey() string {
	return fmt.Sprintf("%04d-%02d-%02d:%d:%s:%s", b.Year, b.Month, b.Day, b.TimeIndex, b.Gender, b.Calendar)
}
