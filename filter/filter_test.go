package filter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talentmatch/backend/extract"
	"github.com/talentmatch/backend/matching"
	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/session"
	"github.com/talentmatch/backend/storage"
	"github.com/talentmatch/backend/tenure"
)

func testCandidates() []models.Candidate {
	return []models.Candidate{
		{
			ID: "c1", Name: "Ada", Skills: []string{"react", "typescript"},
			ExperienceYears: 8, ExperienceLevel: models.LevelSenior,
			Availability: models.AvailabilityFullTime, Location: "Berlin",
		},
		{
			ID: "c2", Name: "Ben", Skills: []string{"vue.js", "javascript"},
			ExperienceYears: 4, ExperienceLevel: models.LevelMid,
			Availability: models.AvailabilityFreelance, Location: "Remote",
		},
		{
			ID: "c3", Name: "Cleo", Skills: []string{"react", "node.js"},
			ExperienceYears: 3, ExperienceLevel: models.LevelMid,
			Availability: models.AvailabilityFullTime, Location: "Lisbon",
		},
		{
			ID: "c4", Name: "Dev", Skills: []string{"python", "django"},
			ExperienceYears: 6, ExperienceLevel: models.LevelMid,
			Availability: models.AvailabilityFullTime, Location: "Berlin",
		},
		{
			ID: "c5", Name: "Eli", Skills: []string{"cobol"},
			ExperienceYears: 20, ExperienceLevel: models.LevelSenior,
			Availability: models.AvailabilityPartTime, Location: "Oslo",
		},
	}
}

func newTestFilter(t *testing.T) *Filter {
	t.Helper()

	weights := matching.DefaultWeights
	weights.SmoothScores = false
	logger := zap.NewNop().Sugar()

	return New(
		storage.NewMemoryStore(testCandidates()),
		session.NewMemoryStore(),
		extract.NewKeywordExtractor(),
		matching.NewEngine(weights, nil, logger),
		DefaultOptions,
		logger,
	)
}

func matchIDs(matches []models.MatchResult) []string {
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.CandidateID
	}
	return ids
}

func TestFilterFirstTurn(t *testing.T) {
	f := newTestFilter(t)

	resp, err := f.Filter(context.Background(), "s1", "react developers", false, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.TurnNumber)
	assert.Equal(t, 5, resp.PoolSizeBefore)
	// Direct react holders plus the vue.js transferable.
	assert.ElementsMatch(t, []string{"c1", "c2", "c3"}, matchIDs(resp.Matches))
	assert.Equal(t, []string{"react"}, resp.EffectiveRequirements.Skills)
	assert.False(t, resp.PoolExhausted)
}

func TestFilterRankingIsDeterministic(t *testing.T) {
	f := newTestFilter(t)

	resp, err := f.Filter(context.Background(), "s1", "react developers", false, nil)
	require.NoError(t, err)

	// c1 and c3 both hold react (score 100); the tie breaks on
	// experience years. c2 trails on the transferable bonus.
	assert.Equal(t, []string{"c1", "c3", "c2"}, matchIDs(resp.Matches))
}

func TestFilterProgressiveNarrowing(t *testing.T) {
	f := newTestFilter(t)
	ctx := context.Background()

	first, err := f.Filter(ctx, "s1", "react developers", false, nil)
	require.NoError(t, err)
	require.Equal(t, 3, first.MatchesFound)

	second, err := f.Filter(ctx, "s1", "senior only", false, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, second.TurnNumber)
	assert.Equal(t, 3, second.PoolSizeBefore)
	assert.Equal(t, []string{"c1"}, matchIDs(second.Matches))
	assert.Equal(t, []string{"react"}, second.EffectiveRequirements.Skills)
	assert.Equal(t, models.LevelSenior, second.EffectiveRequirements.ExperienceLevel)

	// Monotonic: every turn-2 match was a turn-1 match.
	assert.Subset(t, matchIDs(first.Matches), matchIDs(second.Matches))
}

func TestFilterScalarOverride(t *testing.T) {
	f := newTestFilter(t)
	ctx := context.Background()

	_, err := f.Filter(ctx, "s1", "mid-level react developers", false, nil)
	require.NoError(t, err)

	resp, err := f.Filter(ctx, "s1", "actually senior", false, nil)
	require.NoError(t, err)

	// The later level wins; skills still accumulate.
	assert.Equal(t, models.LevelSenior, resp.EffectiveRequirements.ExperienceLevel)
	assert.Equal(t, []string{"react"}, resp.EffectiveRequirements.Skills)
	// c1 was eliminated on turn one by the mid-level filter, so the
	// narrowed pool cannot bring them back.
	assert.NotContains(t, matchIDs(resp.Matches), "c1")
}

func TestFilterAvailabilityElimination(t *testing.T) {
	f := newTestFilter(t)

	resp, err := f.Filter(context.Background(), "s1", "freelance react developers", false, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"c2"}, matchIDs(resp.Matches))
}

func TestFilterLocationSubstring(t *testing.T) {
	f := newTestFilter(t)

	resp, err := f.Filter(context.Background(), "s1", "react developers in Berlin", false, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"c1"}, matchIDs(resp.Matches))
}

func TestFilterPoolExhaustion(t *testing.T) {
	f := newTestFilter(t)
	ctx := context.Background()

	resp, err := f.Filter(ctx, "s1", "kubernetes engineers", false, nil)
	require.NoError(t, err)

	assert.True(t, resp.PoolExhausted)
	assert.Zero(t, resp.MatchesFound)
	assert.NotEmpty(t, resp.RefinementSuggestion)

	// Exhaustion persists: the next turn starts from an empty pool.
	next, err := f.Filter(ctx, "s1", "react developers", false, nil)
	require.NoError(t, err)
	assert.True(t, next.PoolExhausted)
	assert.Zero(t, next.PoolSizeBefore)
}

func TestFilterResetFlagRestoresUniverse(t *testing.T) {
	f := newTestFilter(t)
	ctx := context.Background()

	_, err := f.Filter(ctx, "s1", "kubernetes engineers", false, nil)
	require.NoError(t, err)

	resp, err := f.Filter(ctx, "s1", "react developers", true, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.TurnNumber)
	assert.Equal(t, 5, resp.PoolSizeBefore)
	assert.Equal(t, 3, resp.MatchesFound)
	assert.False(t, resp.PoolExhausted)
}

func TestFilterResetUnknownSession(t *testing.T) {
	f := newTestFilter(t)

	_, err := f.Reset(context.Background(), "never-seen")
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestFilterResetKnownSession(t *testing.T) {
	f := newTestFilter(t)
	ctx := context.Background()

	_, err := f.Filter(ctx, "s1", "react developers", false, nil)
	require.NoError(t, err)

	available, err := f.Reset(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 5, available)

	resp, err := f.Filter(ctx, "s1", "python developers", false, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TurnNumber)
	assert.Equal(t, []string{"python"}, resp.EffectiveRequirements.Skills)
	assert.Contains(t, matchIDs(resp.Matches), "c4")
}

func TestFilterSessionsAreIndependent(t *testing.T) {
	f := newTestFilter(t)
	ctx := context.Background()

	_, err := f.Filter(ctx, "s1", "react developers", false, nil)
	require.NoError(t, err)

	other, err := f.Filter(ctx, "s2", "python developers", false, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, other.TurnNumber)
	assert.Equal(t, 5, other.PoolSizeBefore)
	assert.Equal(t, []string{"python"}, other.EffectiveRequirements.Skills)
}

type failingExtractor struct{}

func (failingExtractor) Extract(context.Context, string) (models.RequirementFragment, error) {
	return models.RequirementFragment{}, errors.New("model unreachable")
}

func TestFilterExtractionFailureDegrades(t *testing.T) {
	weights := matching.DefaultWeights
	weights.SmoothScores = false
	logger := zap.NewNop().Sugar()

	f := New(
		storage.NewMemoryStore(testCandidates()),
		session.NewMemoryStore(),
		failingExtractor{},
		matching.NewEngine(weights, nil, logger),
		DefaultOptions,
		logger,
	)

	resp, err := f.Filter(context.Background(), "s1", "anything at all", false, nil)
	require.NoError(t, err)

	// The turn completes with no new constraints: everyone matches.
	assert.Equal(t, 1, resp.TurnNumber)
	assert.Empty(t, resp.EffectiveRequirements.Skills)
	assert.Equal(t, 5, resp.MatchesFound)
}

func TestFilterMaxMatchesTruncatesPresentationOnly(t *testing.T) {
	weights := matching.DefaultWeights
	weights.SmoothScores = false
	logger := zap.NewNop().Sugar()

	f := New(
		storage.NewMemoryStore(testCandidates()),
		session.NewMemoryStore(),
		extract.NewKeywordExtractor(),
		matching.NewEngine(weights, nil, logger),
		Options{MaxConcurrent: 4, MaxMatches: 1},
		logger,
	)
	ctx := context.Background()

	resp, err := f.Filter(ctx, "s1", "react developers", false, nil)
	require.NoError(t, err)

	assert.Len(t, resp.Matches, 1)
	assert.Equal(t, 3, resp.MatchesFound)

	// The next turn still narrows from all three survivors.
	next, err := f.Filter(ctx, "s1", "senior only", false, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, next.PoolSizeBefore)
}

func TestFilterAttachesTenureLabels(t *testing.T) {
	end := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	candidates := []models.Candidate{
		{
			ID: "c1", Name: "Ada", Skills: []string{"react"},
			ExperienceYears: 8, ExperienceLevel: models.LevelSenior,
			WorkHistory: []models.WorkExperience{
				{Role: "Engineer", Company: "Acme", Start: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), End: &end},
			},
		},
	}

	weights := matching.DefaultWeights
	weights.SmoothScores = false
	logger := zap.NewNop().Sugar()

	f := New(
		storage.NewMemoryStore(candidates),
		session.NewMemoryStore(),
		extract.NewKeywordExtractor(),
		matching.NewEngine(weights, nil, logger),
		DefaultOptions,
		logger,
	).WithTenure(tenure.NewAnalyzer(tenure.DefaultPolicy))

	resp, err := f.Filter(context.Background(), "s1", "react developers", false, nil)
	require.NoError(t, err)
	require.Len(t, resp.Matches, 1)
	// One 48-month stint: stable.
	assert.Equal(t, tenure.LabelStable, resp.Matches[0].TenureLabel)
}

func TestFilterRequiresSessionID(t *testing.T) {
	f := newTestFilter(t)

	_, err := f.Filter(context.Background(), "", "react developers", false, nil)
	assert.Error(t, err)
}

func TestFilterSmoothedScoresDoNotReorderMatches(t *testing.T) {
	weights := matching.DefaultWeights
	require.True(t, weights.SmoothScores)
	weights.Transferability = map[string]map[string]float64{
		"react": {"vue.js": 20, "angular": 19},
	}
	logger := zap.NewNop().Sugar()

	candidates := []models.Candidate{
		{ID: "c-a", Name: "Vera", Skills: []string{"vue.js"}},
		{ID: "c-b", Name: "Anna", Skills: []string{"angular"}},
	}
	f := New(
		storage.NewMemoryStore(candidates),
		session.NewMemoryStore(),
		extract.NewKeywordExtractor(),
		matching.NewEngine(weights, nil, logger),
		DefaultOptions,
		logger,
	)

	resp, err := f.Filter(context.Background(), "s1", "react developers", false, nil)
	require.NoError(t, err)
	require.Len(t, resp.Matches, 2)

	// c-a's raw 20 ends in 0 and gets smoothed below c-b's untouched 19,
	// but ranking follows the raw scores.
	assert.Equal(t, "c-a", resp.Matches[0].CandidateID)
	assert.Less(t, resp.Matches[0].Score, resp.Matches[1].Score)
}

func TestFilterSkillPhraseIsNotALocation(t *testing.T) {
	f := newTestFilter(t)

	resp, err := f.Filter(context.Background(), "s1", "developers experienced in react", false, nil)
	require.NoError(t, err)

	assert.Empty(t, resp.EffectiveRequirements.Location)
	assert.False(t, resp.PoolExhausted)
	assert.ElementsMatch(t, []string{"c1", "c2", "c3"}, matchIDs(resp.Matches))
}
