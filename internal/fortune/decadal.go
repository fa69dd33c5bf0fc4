package fortune

import (
	"ziwei/internal/almanac"
	"ziwei/internal/chart/models"
)

// Direction of the decadal walk through the palace ring.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "reverse"
}

// DirectionFor decides the single directionality rule of the engine:
// yang-stem-year males and yin-stem-year females walk forward, the opposite
// parity combinations walk in reverse. Note this is not "male = forward".
func DirectionFor(birthYearStem almanac.HeavenlyStem, gender models.Gender) Direction {
	if birthYearStem.Yang() == (gender == models.GenderMale) {
		return Forward
	}
	return Reverse
}

// DecadalPeriod is one ten-year fortune segment bound to a palace.
type DecadalPeriod struct {
	Index        int    `json:"index"` // 1..12
	PalaceName   string `json:"palace_name"`
	HeavenlyStem string `json:"heavenly_stem"`
	Branch       string `json:"earthly_branch"`
	StartAge     int    `json:"start_age"` // inclusive, traditional age
	EndAge       int    `json:"end_age"`   // inclusive
}

// Contains reports whether the traditional age falls in the period's window.
func (p DecadalPeriod) Contains(traditionalAge int) bool {
	return traditionalAge >= p.StartAge && traditionalAge <= p.EndAge
}

// BuildDecadalPeriods produces the full lifetime table: twelve contiguous
// ten-year periods starting at the five-element class's start age, walking
// the palace-name ring from the life palace in the direction decided by stem
// parity and gender. The table is generated unconditionally; only selection
// is age-dependent.
//
// A palace name missing from the input list resolves to empty stem/branch
// strings (strict mode surfaces a *LookupError instead); tolerated but
// unexpected for well-formed twelve-palace skeletons.
func (e *Engine) BuildDecadalPeriods(class almanac.FiveElementClass, birthYearStem almanac.HeavenlyStem, gender models.Gender, palaces []models.Palace) ([]DecadalPeriod, error) {
	startAge := class.StartAge()
	forward := DirectionFor(birthYearStem, gender) == Forward

	periods := make([]DecadalPeriod, 0, almanac.BranchCount)
	for i := 1; i <= almanac.BranchCount; i++ {
		name := almanac.PalaceNameAt(i-1, forward)

		var stem, branch string
		if p, ok := models.FindByName(palaces, name); ok {
			stem = p.HeavenlyStem.String()
			branch = p.Branch.String()
		} else if err := e.miss("palace named", name); err != nil {
			return nil, err
		}

		periods = append(periods, DecadalPeriod{
			Index:        i,
			PalaceName:   name,
			HeavenlyStem: stem,
			Branch:       branch,
			StartAge:     startAge + 10*(i-1),
			EndAge:       startAge + 10*i - 1,
		})
	}
	return periods, nil
}

// SelectCurrentDecadal returns the unique period whose window contains the
// traditional age. Ages below the class's start age or past the 120-year
// table are "no current period", not an error.
func SelectCurrentDecadal(periods []DecadalPeriod, traditionalAge int) (DecadalPeriod, bool) {
	for _, p := range periods {
		if p.Contains(traditionalAge) {
			return p, true
		}
	}
	return DecadalPeriod{}, false
}
