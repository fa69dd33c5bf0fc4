package fortune

import (
	"ziwei/internal/almanac"
	"ziwei/internal/chart/models"
)

// YearlyPeriod is the one-year fortune segment for a given calendar year.
type YearlyPeriod struct {
	Year           int    `json:"year"`
	PalaceName     string `json:"palace_name"`
	HeavenlyStem   string `json:"heavenly_stem"`
	Branch         string `json:"earthly_branch"`
	TraditionalAge int    `json:"traditional_age"`
}

// ResolveYearlyPeriod resolves the yearly fortune palace by cyclic offset:
// the target year's branch sits (targetYear - birthYear) steps around the
// ring from the birth-year branch. Pure in all four inputs; for
// targetYear == birthYear the branch equals the birth-year branch.
//
// The traditional age carried on the period counts whole elapsed years, the
// way the original derivation did: the birth year itself is age one.
func (e *Engine) ResolveYearlyPeriod(birthYearBranch almanac.EarthlyBranch, birthYear, targetYear int, palaces []models.Palace) (YearlyPeriod, error) {
	if birthYearBranch < 0 || birthYearBranch >= almanac.BranchCount {
		if err := e.miss("earthly branch", birthYearBranch.String()); err != nil {
			return YearlyPeriod{}, err
		}
		birthYearBranch = almanac.BranchZi
	}

	target := birthYearBranch.Add(targetYear - birthYear)

	period := YearlyPeriod{
		Year:           targetYear,
		Branch:         target.String(),
		TraditionalAge: traditionalAgeForYear(birthYear, targetYear),
	}
	if p, ok := models.FindByBranch(palaces, target); ok {
		period.PalaceName = p.Name
		period.HeavenlyStem = p.HeavenlyStem.String()
	} else if err := e.miss("palace on branch", target.String()); err != nil {
		return YearlyPeriod{}, err
	}
	return period, nil
}

func traditionalAgeForYear(birthYear, targetYear int) int {
	elapsed := targetYear - birthYear
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed + 1
}
