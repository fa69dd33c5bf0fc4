package models

// Brightness is the seven-level ordinal grade of a star's strength in its
// placed branch. The zero value means the external engine supplied no grade.
type Brightness string

const (
	BrightnessNone      Brightness = ""
	BrightnessTemple    Brightness = "廟"
	BrightnessBright    Brightness = "旺"
	BrightnessFavorable Brightness = "得"
	BrightnessAdvantage Brightness = "利"
	BrightnessBalanced  Brightness = "平"
	BrightnessWeak      Brightness = "不"
	BrightnessFallen    Brightness = "陷"
)

// Mutagen is the optional one-of-four transformation tag a star can carry in
// a given chart. At most one tag per star per chart; the external engine is
// trusted on that.
type Mutagen string

const (
	MutagenNone   Mutagen = ""
	MutagenLu     Mutagen = "祿"
	MutagenQuan   Mutagen = "權"
	MutagenKe     Mutagen = "科"
	MutagenJi     Mutagen = "忌"
)

// StarCategory partitions placements the way the external engine reports
// them.
type StarCategory string

const (
	StarMajor     StarCategory = "major"
	StarMinor     StarCategory = "minor"
	StarAdjective StarCategory = "adjective"
)

// StarPlacement is one star as placed in one palace of one chart.
type StarPlacement struct {
	Name       string       `json:"name"`
	Category   StarCategory `json:"category"`
	Brightness Brightness   `json:"brightness,omitempty"`
	Mutagen    Mutagen      `json:"mutagen,omitempty"`
}
