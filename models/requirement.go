package models

// RequirementFragment holds the structured constraints extracted from a
// single conversation turn. Created once per turn and never mutated.
type RequirementFragment struct {
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	Availability    string   `json:"availability,omitempty"`
	Location        string   `json:"location,omitempty"`
	CultureHints    string   `json:"culture_hints,omitempty"`
	RawQuery        string   `json:"raw_query,omitempty"`
}

// IsEmpty reports whether the fragment carries no constraints at all.
// An empty fragment is the degraded result of a failed or ambiguous
// extraction; the turn proceeds without new constraints.
func (f RequirementFragment) IsEmpty() bool {
	return len(f.Skills) == 0 &&
		f.ExperienceLevel == LevelAny &&
		f.Availability == AvailabilityAny &&
		f.Location == "" &&
		f.CultureHints == ""
}

// EffectiveRequirements is the union of all fragments in a conversation:
// skills accumulate across turns, scalar fields take the most recent
// non-empty value so "senior only" overrides an earlier "mid-level".
type EffectiveRequirements struct {
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	Availability    string   `json:"availability,omitempty"`
	Location        string   `json:"location,omitempty"`
	CultureHints    string   `json:"culture_hints,omitempty"`
}

// CombineFragments folds an ordered fragment history into the effective
// requirement set. Skill order follows first appearance.
func CombineFragments(history []RequirementFragment) EffectiveRequirements {
	var eff EffectiveRequirements
	seen := make(map[string]bool)

	for _, frag := range history {
		for _, skill := range frag.Skills {
			if !seen[skill] {
				seen[skill] = true
				eff.Skills = append(eff.Skills, skill)
			}
		}
		if frag.ExperienceLevel != LevelAny {
			eff.ExperienceLevel = frag.ExperienceLevel
		}
		if frag.Availability != AvailabilityAny {
			eff.Availability = frag.Availability
		}
		if frag.Location != "" {
			eff.Location = frag.Location
		}
		if frag.CultureHints != "" {
			eff.CultureHints = frag.CultureHints
		}
	}

	return eff
}
