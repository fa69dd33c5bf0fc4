package reading

import (
	"fmt"
	"strings"

	"ziwei/internal/chart/service"
)

// Summarize flattens a computed chart into the plain-text block the
// collaborator's prompt template expects: headline facts first, then one
// line per palace.
func Summarize(result *service.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "性別：%s\n", result.Birth.Gender)
	fmt.Fprintf(&b, "年齡：%d歲（虛歲）\n", result.Ages.Traditional)
	fmt.Fprintf(&b, "五行局：%s\n", result.FiveElementClass)
	fmt.Fprintf(&b, "生年干支：%s%s\n", result.YearStem, result.YearBranch)
	fmt.Fprintf(&b, "來因宮：%s（%s）\n", result.OriginPalace.PalaceName, result.OriginPalace.Branch)

	if d := result.CurrentDecadal; d != nil {
		fmt.Fprintf(&b, "目前大限：第%d大限（%d-%d歲），走%s\n", d.Index, d.StartAge, d.EndAge, d.PalaceName)
	}
	fmt.Fprintf(&b, "流年：%d年，走%s\n", result.YearlyPeriod.Year, result.YearlyPeriod.PalaceName)

	b.WriteString("\n【十二宮配置】\n")
	for _, palace := range result.Palaces {
		stars := make([]string, 0, len(palace.Stars))
		for _, star := range palace.Stars {
			label := star.Name
			if star.Brightness != "" {
				label += string(star.Brightness)
			}
			if star.Mutagen != "" {
				label += "（" + string(star.Mutagen) + "）"
			}
			stars = append(stars, label)
		}

		marks := ""
		if palace.IsLifePalace {
			marks += "［命］"
		}
		if palace.IsBodyPalace {
			marks += "［身］"
		}

		line := "無主星"
		if len(stars) > 0 {
			line = strings.Join(stars, "、")
		}
		fmt.Fprintf(&b, "%s%s（%s%s）：%s\n", palace.Name, marks, palace.HeavenlyStem, palace.Branch, line)
	}

	return b.String()
}
