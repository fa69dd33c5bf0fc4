package service

import (
	"time"

	"ziwei/internal/chart/models"
	"ziwei/internal/fortune"
)

// Result is the enriched chart: the external skeleton with brightness
// corrections and palace flags applied, plus everything the fortune engine
// derives. The display layer consumes this shape verbatim and the analysis
// call receives it unchanged.
type Result struct {
	ID    string             `json:"id"`
	Birth models.BirthRecord `json:"birth"`

	ChineseDate      string `json:"chinese_date"`
	YearStem         string `json:"year_stem"`
	YearBranch       string `json:"year_branch"`
	FiveElementClass string `json:"five_element_class"`
	BodyPalaceBranch string `json:"body_palace_branch"`

	Palaces []models.Palace `json:"palaces"`

	Ages           fortune.Ages            `json:"ages"`
	DecadalPeriods []fortune.DecadalPeriod `json:"decadal_periods"`
	CurrentDecadal *fortune.DecadalPeriod  `json:"current_decadal,omitempty"`
	YearlyPeriod   fortune.YearlyPeriod    `json:"yearly_period"`
	OriginPalace   fortune.OriginPalace    `json:"origin_palace"`

	ComputedAt time.Time `json:"computed_at"`
}
