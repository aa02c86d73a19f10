package tenure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentmatch/backend/models"
)

var testNow = time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(DefaultPolicy).WithClock(func() time.Time { return testNow })
}

func job(start, end string) models.WorkExperience {
	s, err := time.Parse("2006-01", start)
	if err != nil {
		panic(err)
	}
	exp := models.WorkExperience{Role: "Engineer", Company: "Co", Start: s}
	if end != "" {
		e, err := time.Parse("2006-01", end)
		if err != nil {
			panic(err)
		}
		exp.End = &e
	}
	return exp
}

func TestAnalyzeStableHistory(t *testing.T) {
	analyzer := newTestAnalyzer()

	history := []models.WorkExperience{
		job("2014-01", "2017-06"),
		job("2017-06", "2021-01"),
		job("2021-01", "2025-06"),
	}

	analysis := analyzer.Analyze(history)

	// Base 70 plus three long-stint bonuses, clamped to 100.
	assert.Equal(t, 100, analysis.Score)
	assert.Equal(t, LabelStable, analysis.Label)
	assert.Equal(t, 3, analysis.LongStints)
	assert.Zero(t, analysis.ShortStints)
	assert.Empty(t, analysis.RedFlags)
}

func TestAnalyzeJobHopper(t *testing.T) {
	analyzer := newTestAnalyzer()

	history := []models.WorkExperience{
		job("2024-01", "2024-07"),
		job("2024-08", "2025-02"),
		job("2025-03", "2025-08"),
		job("2025-09", ""),
	}

	analysis := analyzer.Analyze(history)

	assert.Equal(t, 0, analysis.Score)
	assert.Equal(t, LabelHighRisk, analysis.Label)
	assert.Equal(t, 4, analysis.ShortStints)
	assert.NotEmpty(t, analysis.RedFlags)
}

func TestAnalyzeEmptyHistoryIsNeutral(t *testing.T) {
	analysis := newTestAnalyzer().Analyze(nil)

	assert.Equal(t, 70, analysis.Score)
	assert.Equal(t, LabelModerate, analysis.Label)
	assert.Zero(t, analysis.AvgTenureMonths)
}

func TestAnalyzeOngoingOnlyRoleNotPenalized(t *testing.T) {
	analyzer := newTestAnalyzer()

	// Five months into a first job: too early to call it a short stint.
	analysis := analyzer.Analyze([]models.WorkExperience{job("2025-08", "")})

	assert.Equal(t, 70, analysis.Score)
	assert.Equal(t, LabelModerate, analysis.Label)
	assert.Zero(t, analysis.ShortStints)
}

func TestAnalyzeMixedHistory(t *testing.T) {
	analyzer := newTestAnalyzer()

	history := []models.WorkExperience{
		job("2019-01", "2019-08"), // short, but outside the recent window
		job("2020-01", "2023-06"), // long
	}

	analysis := analyzer.Analyze(history)

	// 70 - 15 (short) + 10 (long); no recent penalty.
	assert.Equal(t, 65, analysis.Score)
	assert.Equal(t, LabelModerate, analysis.Label)
	assert.Equal(t, 1, analysis.ShortStints)
	assert.Equal(t, 1, analysis.LongStints)
}

func TestAnalyzeRecentShortStintExtraPenalty(t *testing.T) {
	analyzer := newTestAnalyzer()

	// One short stint ending inside the 3-year window.
	history := []models.WorkExperience{
		job("2020-01", "2024-01"), // long
		job("2024-02", "2024-10"), // short and recent
	}

	analysis := analyzer.Analyze(history)

	// 70 + 10 - 15 - 10.
	assert.Equal(t, 55, analysis.Score)
	assert.Equal(t, LabelHighRisk, analysis.Label)
}

func TestAnalyzeLabelThresholds(t *testing.T) {
	analyzer := newTestAnalyzer()

	// Exactly one long stint of 36 months lands on the stable boundary.
	analysis := analyzer.Analyze([]models.WorkExperience{job("2020-01", "2023-01")})

	require.Equal(t, 80, analysis.Score)
	assert.Equal(t, LabelStable, analysis.Label)
}

func TestAnalyzeRedFlags(t *testing.T) {
	analyzer := newTestAnalyzer()

	history := []models.WorkExperience{
		job("2023-06", "2023-11"),
		job("2023-12", "2024-06"),
		job("2024-07", "2025-01"),
	}

	analysis := analyzer.Analyze(history)

	assert.Equal(t, LabelHighRisk, analysis.Label)
	assert.Len(t, analysis.RedFlags, 4)
}
