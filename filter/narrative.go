package filter

import (
	"fmt"
	"strings"

	"github.com/talentmatch/backend/models"
)

// Summarize renders one turn's outcome as recruiter-facing text: how the
// pool moved, the top matches, and what to try next.
func Summarize(resp *models.SearchResponse) string {
	if resp.PoolExhausted {
		var b strings.Builder
		b.WriteString("I couldn't find anyone matching all of those requirements")
		if len(resp.EffectiveRequirements.Skills) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(resp.EffectiveRequirements.Skills, ", "))
		}
		b.WriteString(". ")
		b.WriteString(resp.RefinementSuggestion)
		return b.String()
	}

	var b strings.Builder
	if resp.TurnNumber > 1 {
		fmt.Fprintf(&b, "Narrowed %d candidates down to %d.", resp.PoolSizeBefore, resp.MatchesFound)
	} else {
		fmt.Fprintf(&b, "Found %d matching candidates out of %d.", resp.MatchesFound, resp.PoolSizeBefore)
	}

	top := resp.Matches
	if len(top) > 3 {
		top = top[:3]
	}
	for i, m := range top {
		fmt.Fprintf(&b, "\n%d. %s (score %d) - %s", i+1, m.Name, m.Score, m.Reasoning)
	}

	if resp.MatchesFound > len(top) {
		fmt.Fprintf(&b, "\n...and %d more.", resp.MatchesFound-len(top))
	}
	if resp.RefinementSuggestion != "" {
		b.WriteString("\n")
		b.WriteString(resp.RefinementSuggestion)
	}
	return b.String()
}
