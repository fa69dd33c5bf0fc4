package engineclient

// Wire types for the external chart-construction engine. Field names follow
// the engine's own JSON, which is also what the frontend historically
// consumed, so they stay camelCase while the rest of the service speaks
// snake_case.

// Skeleton is the engine's per-birth-record output: the twelve bound
// palaces plus the derived calendar facts the fortune engine needs.
type Skeleton struct {
	Palaces []PalaceDTO `json:"palaces"`
	// ChineseDate is the sexagenary date string; its first rune is the
	// birth-year stem and its second the birth-year branch.
	ChineseDate string `json:"chineseDate"`
	// FiveElementsClass is the class label, e.g. "木三局".
	FiveElementsClass string `json:"fiveElementsClass"`
	// BodyPalaceBranch identifies which palace carries the body palace.
	BodyPalaceBranch string `json:"bodyPalaceBranch"`
}

type PalaceDTO struct {
	Name           string    `json:"name"`
	HeavenlyStem   string    `json:"heavenlyStem"`
	EarthlyBranch  string    `json:"earthlyBranch"`
	MajorStars     []StarDTO `json:"majorStars"`
	MinorStars     []StarDTO `json:"minorStars"`
	AdjectiveStars []StarDTO `json:"adjectiveStars"`
}

type StarDTO struct {
	Name       string `json:"name"`
	Brightness string `json:"brightness,omitempty"`
	Mutagen    string `json:"mutagen,omitempty"`
}

// buildRequest mirrors the engine's input schema.
type buildRequest struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	TimeIndex int    `json:"timeIndex"`
	Gender    string `json:"gender"`
	IsLunar   bool   `json:"isLunar"`
}
