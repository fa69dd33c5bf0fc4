package fortune

import (
	"ziwei/internal/almanac"
	"ziwei/internal/chart/models"
)

// OriginPalace is the life domain derived from the birth-year stem.
type OriginPalace struct {
	Branch     string `json:"earthly_branch"`
	PalaceName string `json:"palace_name"`
}

// originBranchByStem is total over all ten stems: for each year stem, the
// branch whose palace stem under the five-tigers month-stem derivation
// equals the year stem itself.
var originBranchByStem = [almanac.StemCount]almanac.EarthlyBranch{
	almanac.StemJia:  almanac.BranchXu,
	almanac.StemYi:   almanac.BranchYou,
	almanac.StemBing: almanac.BranchShen,
	almanac.StemDing: almanac.BranchWei,
	almanac.StemWu:   almanac.BranchWu,
	almanac.StemJi:   almanac.BranchSi,
	almanac.StemGeng: almanac.BranchChen,
	almanac.StemXin:  almanac.BranchMao,
	almanac.StemRen:  almanac.BranchYin,
	almanac.StemGui:  almanac.BranchHai,
}

// ResolveOriginPalace maps the birth-year stem to its origin branch and
// names the palace bound to that branch. An out-of-range stem defaults to
// the first ring branch and a branch with no palace falls back to the life
// palace name; strict mode surfaces both as *LookupError.
func (e *Engine) ResolveOriginPalace(birthYearStem almanac.HeavenlyStem, palaces []models.Palace) (OriginPalace, error) {
	branch := almanac.BranchZi
	if birthYearStem >= 0 && birthYearStem < almanac.StemCount {
		branch = originBranchByStem[birthYearStem]
	} else if err := e.miss("origin branch for stem", birthYearStem.String()); err != nil {
		return OriginPalace{}, err
	}

	name := almanac.LifePalaceName
	if p, ok := models.FindByBranch(palaces, branch); ok {
		name = p.Name
	} else if err := e.miss("palace on branch", branch.String()); err != nil {
		return OriginPalace{}, err
	}

	return OriginPalace{Branch: branch.String(), PalaceName: name}, nil
}
