package fortune

import (
	"ziwei/internal/almanac"
	"ziwei/internal/chart/models"
)

// Star names subject to the brightness override. The teaching lineage this
// system encodes grades the Sun and Moon differently from the external
// engine's default tables, so their grades are corrected for every branch.
const (
	SunStarName  = "太陽"
	MoonStarName = "太陰"
)

// brightnessOverrides is total over all twelve branches for the Sun and the
// Moon and deliberately partial otherwise: any other star falls through to
// the externally supplied grade.
var brightnessOverrides = map[string][almanac.BranchCount]models.Brightness{
	SunStarName: {
		almanac.BranchZi:   models.BrightnessFallen,
		almanac.BranchChou: models.BrightnessWeak,
		almanac.BranchYin:  models.BrightnessBright,
		almanac.BranchMao:  models.BrightnessTemple,
		almanac.BranchChen: models.BrightnessBright,
		almanac.BranchSi:   models.BrightnessBright,
		almanac.BranchWu:   models.BrightnessBright,
		almanac.BranchWei:  models.BrightnessFavorable,
		almanac.BranchShen: models.BrightnessFavorable,
		almanac.BranchYou:  models.BrightnessBalanced,
		almanac.BranchXu:   models.BrightnessWeak,
		almanac.BranchHai:  models.BrightnessFallen,
	},
	MoonStarName: {
		almanac.BranchZi:   models.BrightnessTemple,
		almanac.BranchChou: models.BrightnessTemple,
		almanac.BranchYin:  models.BrightnessBalanced,
		almanac.BranchMao:  models.BrightnessFallen,
		almanac.BranchChen: models.BrightnessWeak,
		almanac.BranchSi:   models.BrightnessFallen,
		almanac.BranchWu:   models.BrightnessFallen,
		almanac.BranchWei:  models.BrightnessBalanced,
		almanac.BranchShen: models.BrightnessAdvantage,
		almanac.BranchYou:  models.BrightnessBright,
		almanac.BranchXu:   models.BrightnessBright,
		almanac.BranchHai:  models.BrightnessTemple,
	},
}

// ResolveBrightness applies the corrective overlay: if (star, branch) is in
// the override table the table wins, otherwise the external grade passes
// through unchanged (it may be absent). Applied independently to every star
// in every palace, without exception.
func ResolveBrightness(starName string, branch almanac.EarthlyBranch, external models.Brightness) models.Brightness {
	if table, ok := brightnessOverrides[starName]; ok && branch >= 0 && branch < almanac.BranchCount {
		return table[branch]
	}
	return external
}
