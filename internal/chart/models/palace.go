package models

import (
	"encoding/json"

	"ziwei/internal/almanac"
)

// Palace is one of the twelve life domains of a computed chart, bound by the
// external engine to exactly one (stem, branch) pair and a set of star
// placements. The fortune engine treats the palace list as read-only input:
// it reads Name and Branch to resolve fortune periods and never reassigns
// stems, branches, or stars. The life/body flags are derived here, after the
// skeleton comes back.
type Palace struct {
	Name         string                `json:"name"`
	HeavenlyStem almanac.HeavenlyStem  `json:"-"`
	Branch       almanac.EarthlyBranch `json:"-"`
	Stars        []StarPlacement       `json:"stars"`
	IsLifePalace bool                  `json:"is_life_palace"`
	IsBodyPalace bool                  `json:"is_body_palace"`
}

// palaceJSON keeps the wire form on the characters the display layer and the
// analysis call expect, while the in-memory form stays on the typed enums.
type palaceJSON struct {
	Name         string          `json:"name"`
	HeavenlyStem string          `json:"heavenly_stem"`
	Branch       string          `json:"earthly_branch"`
	Stars        []StarPlacement `json:"stars"`
	IsLifePalace bool            `json:"is_life_palace"`
	IsBodyPalace bool            `json:"is_body_palace"`
}

func (p Palace) MarshalJSON() ([]byte, error) {
	return json.Marshal(palaceJSON{
		Name:         p.Name,
		HeavenlyStem: p.HeavenlyStem.String(),
		Branch:       p.Branch.String(),
		Stars:        p.Stars,
		IsLifePalace: p.IsLifePalace,
		IsBodyPalace: p.IsBodyPalace,
	})
}

func (p *Palace) UnmarshalJSON(data []byte) error {
	var raw palaceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	stem, _ := almanac.ParseStem(raw.HeavenlyStem)
	branch, _ := almanac.ParseBranch(raw.Branch)
	*p = Palace{
		Name:         raw.Name,
		HeavenlyStem: stem,
		Branch:       branch,
		Stars:        raw.Stars,
		IsLifePalace: raw.IsLifePalace,
		IsBodyPalace: raw.IsBodyPalace,
	}
	return nil
}

// FindByName returns the first palace with the given name, or false. A miss
// is a tolerated condition for the engine's fallback paths, never a panic.
func FindByName(palaces []Palace, name string) (Palace, bool) {
	for _, p := range palaces {
		if p.Name == name {
			return p, true
		}
	}
	return Palace{}, false
}

// FindByBranch returns the first palace bound to the given branch, or false.
func FindByBranch(palaces []Palace, branch almanac.EarthlyBranch) (Palace, bool) {
	for _, p := range palaces {
		if p.Branch == branch {
			return p, true
		}
	}
	return Palace{}, false
}
