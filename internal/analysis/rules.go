// Package analysis matches classic star combinations against a computed
// palace set. Every rule is a pure lookup over star names, mutagen tags, and
// brightness grades; interpretation text lives with the narrative
// collaborator, not here.
package analysis

import (
	"ziwei/internal/chart/models"
)

// PatternKind partitions matches by tone.
type PatternKind string

const (
	KindAuspicious PatternKind = "auspicious"
	KindCaution    PatternKind = "caution"
)

// Pattern codes. Names are the traditional ones the display layer keys on.
const (
	PatternClerk           = "機月同梁格"
	PatternFireGreed       = "火貪格"
	PatternWealthRelay     = "祿馬交馳"
	PatternMutagenLuHorse  = "化祿天馬"
	PatternWealthStars     = "財星入財帛"
	PatternLianZhenQiSha   = "廉貞七殺同宮"
	PatternLianZhenPoJun   = "廉貞破軍同宮"
	PatternFallenGreed     = "廉貞貪狼落陷"
	PatternJiClashesLife   = "化忌沖命"
)

// Match is one detected pattern.
type Match struct {
	Code string      `json:"code"`
	Kind PatternKind `json:"kind"`
	// PalaceName locates same-palace patterns; empty for chart-wide ones.
	PalaceName string   `json:"palace_name,omitempty"`
	Stars      []string `json:"stars,omitempty"`
}

// SihuaPositions maps each of the four transformation tags to the palace
// whose star carries it, or "" when no star in the set does.
type SihuaPositions map[models.Mutagen]string

// careerTriangle is the palace group the clerk pattern is scanned over: the
// life palace with its three facing palaces.
var careerTriangle = map[string]bool{
	"命宮":  true,
	"財帛宮": true,
	"官祿宮": true,
	"遷移宮": true,
}

// clerkStars are the four gentle stars of the clerk pattern.
var clerkStars = []string{"天機", "太陰", "天同", "天梁"}

// ScanSihua locates the four transformations across the palace set. Later
// palaces win on (malformed) duplicate tags, matching how the data has always
// been folded.
func ScanSihua(palaces []models.Palace) SihuaPositions {
	positions := SihuaPositions{
		models.MutagenLu:   "",
		models.MutagenQuan: "",
		models.MutagenKe:   "",
		models.MutagenJi:   "",
	}
	for _, palace := range palaces {
		for _, star := range palace.Stars {
			if _, tracked := positions[star.Mutagen]; tracked && star.Mutagen != models.MutagenNone {
				positions[star.Mutagen] = palace.Name
			}
		}
	}
	return positions
}

// Evaluate runs every pattern rule over the palace set.
func Evaluate(palaces []models.Palace) []Match {
	matches := []Match{}
	sihua := ScanSihua(palaces)

	if m, ok := matchClerk(palaces); ok {
		matches = append(matches, m)
	}
	matches = append(matches, matchWealth(palaces)...)
	matches = append(matches, matchSamePalaceCautions(palaces)...)
	if sihua[models.MutagenJi] == "遷移宮" {
		matches = append(matches, Match{Code: PatternJiClashesLife, Kind: KindCaution, PalaceName: "遷移宮"})
	}
	return matches
}

// matchClerk fires when at least three of the four clerk stars sit in the
// career triangle.
func matchClerk(palaces []models.Palace) (Match, bool) {
	present := map[string]bool{}
	for _, palace := range palaces {
		if !careerTriangle[palace.Name] {
			continue
		}
		for _, star := range palace.Stars {
			present[star.Name] = true
		}
	}

	found := make([]string, 0, len(clerkStars))
	for _, name := range clerkStars {
		if present[name] {
			found = append(found, name)
		}
	}
	if len(found) < 3 {
		return Match{}, false
	}
	return Match{Code: PatternClerk, Kind: KindAuspicious, Stars: found}, true
}

func matchWealth(palaces []models.Palace) []Match {
	matches := []Match{}

	wealth, hasWealth := models.FindByName(palaces, "財帛宮")
	if hasWealth {
		names := map[string]bool{}
		var luTagged bool
		for _, star := range wealth.Stars {
			names[star.Name] = true
			if star.Mutagen == models.MutagenLu {
				luTagged = true
			}
		}
		if names["祿存"] && names["天馬"] {
			matches = append(matches, Match{
				Code: PatternWealthRelay, Kind: KindAuspicious,
				PalaceName: wealth.Name, Stars: []string{"祿存", "天馬"},
			})
		}
		if luTagged && names["天馬"] {
			matches = append(matches, Match{
				Code: PatternMutagenLuHorse, Kind: KindAuspicious,
				PalaceName: wealth.Name, Stars: []string{"天馬"},
			})
		}
		for _, name := range []string{"武曲", "貪狼", "祿存"} {
			if names[name] {
				matches = append(matches, Match{
					Code: PatternWealthStars, Kind: KindAuspicious,
					PalaceName: wealth.Name, Stars: []string{name},
				})
				break
			}
		}
	}

	// Fire-greed is chart-wide: the pair works from any two palaces.
	var hasGreed, hasFire bool
	for _, palace := range palaces {
		for _, star := range palace.Stars {
			switch star.Name {
			case "貪狼":
				hasGreed = true
			case "火星":
				hasFire = true
			}
		}
	}
	if hasGreed && hasFire {
		matches = append(matches, Match{
			Code: PatternFireGreed, Kind: KindAuspicious, Stars: []string{"貪狼", "火星"},
		})
	}
	return matches
}

func matchSamePalaceCautions(palaces []models.Palace) []Match {
	matches := []Match{}
	for _, palace := range palaces {
		grades := map[string]models.Brightness{}
		for _, star := range palace.Stars {
			grades[star.Name] = star.Brightness
		}

		_, hasLianZhen := grades["廉貞"]
		if _, hasQiSha := grades["七殺"]; hasLianZhen && hasQiSha {
			matches = append(matches, Match{
				Code: PatternLianZhenQiSha, Kind: KindCaution,
				PalaceName: palace.Name, Stars: []string{"廉貞", "七殺"},
			})
		}
		if _, hasPoJun := grades["破軍"]; hasLianZhen && hasPoJun {
			matches = append(matches, Match{
				Code: PatternLianZhenPoJun, Kind: KindCaution,
				PalaceName: palace.Name, Stars: []string{"廉貞", "破軍"},
			})
		}
		if grades["廉貞"] == models.BrightnessFallen && grades["貪狼"] == models.BrightnessFallen {
			matches = append(matches, Match{
				Code: PatternFallenGreed, Kind: KindCaution,
				PalaceName: palace.Name, Stars: []string{"廉貞", "貪狼"},
			})
		}
	}
	return matches
}
