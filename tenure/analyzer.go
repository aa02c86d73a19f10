// Package tenure scores work-history stability independent of any query.
package tenure

import (
	"fmt"
	"time"

	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/utils"
)

// Stability labels
const (
	LabelStable   = "stable"
	LabelModerate = "moderate"
	LabelHighRisk = "high_risk"
)

// Policy is the tunable constant table for tenure scoring.
type Policy struct {
	BaseScore          float64
	ShortStintMonths   int     // a job under this duration counts as a short stint
	LongStintMonths    int     // a job at or over this duration earns the bonus
	ShortStintPenalty  float64 // per short stint
	RecentStintPenalty float64 // extra, per short stint ending in the recent window
	RecentWindowYears  int
	LongStintBonus     float64 // per long stint

	// Label thresholds on the clamped score.
	StableMin   int
	ModerateMin int
}

// DefaultPolicy is the production tenure policy.
var DefaultPolicy = Policy{
	BaseScore:          70,
	ShortStintMonths:   12,
	LongStintMonths:    36,
	ShortStintPenalty:  15,
	RecentStintPenalty: 10,
	RecentWindowYears:  3,
	LongStintBonus:     10,

	StableMin:   80,
	ModerateMin: 60,
}

// Analysis is the result of scoring one candidate's work history.
type Analysis struct {
	Score           int      `json:"score"`
	Label           string   `json:"label"`
	AvgTenureMonths float64  `json:"avg_tenure_months"`
	ShortStints     int      `json:"short_stint_count"`
	LongStints      int      `json:"long_stint_count"`
	RedFlags        []string `json:"red_flags,omitempty"`
}

// Analyzer scores job-duration patterns. Safe for concurrent use.
type Analyzer struct {
	policy Policy
	now    func() time.Time
}

// NewAnalyzer creates an analyzer with the given policy.
func NewAnalyzer(policy Policy) *Analyzer {
	return &Analyzer{policy: policy, now: time.Now}
}

// WithClock fixes the analyzer's notion of "now"; used by tests so
// ongoing-role durations are reproducible.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// Analyze scores an already-normalized work history. An empty history is
// neutral: the base score, labeled by the usual thresholds.
//
// Ongoing roles (nil End) run up to now. Policy choice: an ongoing role
// under the short-stint threshold is NOT penalized when it is the
// candidate's only role, so early-career candidates aren't punished for
// having no history yet.
func (a *Analyzer) Analyze(history []models.WorkExperience) Analysis {
	now := a.now()

	if len(history) == 0 {
		return a.labeled(a.policy.BaseScore, 0, 0, 0, nil)
	}

	var (
		totalMonths  int
		counted      int
		shortStints  int
		recentShorts int
		longStints   int
		consecutive  int
		maxRun       int
	)

	recentCutoff := now.AddDate(-a.policy.RecentWindowYears, 0, 0)

	for _, job := range history {
		if job.Start.IsZero() {
			continue
		}
		end := now
		ongoing := job.End == nil
		if !ongoing {
			end = *job.End
		}

		months := utils.MonthsBetween(job.Start, end)
		totalMonths += months
		counted++

		if months < a.policy.ShortStintMonths {
			if ongoing && len(history) == 1 {
				// Only role and still running: too early to call it a stint.
				consecutive = 0
				continue
			}
			shortStints++
			consecutive++
			if consecutive > maxRun {
				maxRun = consecutive
			}
			if end.After(recentCutoff) {
				recentShorts++
			}
		} else {
			consecutive = 0
			if months >= a.policy.LongStintMonths {
				longStints++
			}
		}
	}

	if counted == 0 {
		return a.labeled(a.policy.BaseScore, 0, 0, 0, nil)
	}

	avgTenure := float64(totalMonths) / float64(counted)

	score := a.policy.BaseScore
	score -= float64(shortStints) * a.policy.ShortStintPenalty
	score -= float64(recentShorts) * a.policy.RecentStintPenalty
	score += float64(longStints) * a.policy.LongStintBonus

	flags := a.redFlags(shortStints, recentShorts, maxRun, avgTenure)

	return a.labeled(score, avgTenure, shortStints, longStints, flags)
}

func (a *Analyzer) redFlags(shortStints, recentShorts, maxRun int, avgTenure float64) []string {
	var flags []string
	if shortStints >= 3 {
		flags = append(flags, fmt.Sprintf("%d jobs lasted less than 1 year", shortStints))
	}
	if recentShorts >= 2 {
		flags = append(flags, fmt.Sprintf("Multiple short stints in the last %d years", a.policy.RecentWindowYears))
	}
	if avgTenure > 0 && avgTenure < float64(a.policy.ShortStintMonths) {
		flags = append(flags, fmt.Sprintf("Average tenure is only %.0f months", avgTenure))
	}
	if maxRun >= 3 {
		flags = append(flags, fmt.Sprintf("%d consecutive jobs under 1 year", maxRun))
	}
	return flags
}

func (a *Analyzer) labeled(score, avgTenure float64, shortStints, longStints int, flags []string) Analysis {
	s := int(score)
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}

	label := LabelHighRisk
	switch {
	case s >= a.policy.StableMin:
		label = LabelStable
	case s >= a.policy.ModerateMin:
		label = LabelModerate
	}

	return Analysis{
		Score:           s,
		Label:           label,
		AvgTenureMonths: avgTenure,
		ShortStints:     shortStints,
		LongStints:      longStints,
		RedFlags:        flags,
	}
}
