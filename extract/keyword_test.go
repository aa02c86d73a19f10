package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talentmatch/backend/models"
)

func TestKeywordExtractor(t *testing.T) {
	ex := NewKeywordExtractor()

	tests := []struct {
		name  string
		query string
		want  models.RequirementFragment
	}{
		{
			name:  "full query",
			query: "I need senior React developers available full-time in Berlin",
			want: models.RequirementFragment{
				Skills:          []string{"react"},
				ExperienceLevel: models.LevelSenior,
				Availability:    models.AvailabilityFullTime,
				Location:        "berlin",
			},
		},
		{
			name:  "aliases",
			query: "golang and k8s engineers",
			want: models.RequirementFragment{
				Skills: []string{"go", "kubernetes"},
			},
		},
		{
			name:  "role inference",
			query: "looking for a web developer",
			want: models.RequirementFragment{
				Skills: []string{"javascript", "html", "css"},
			},
		},
		{
			name:  "part time remote",
			query: "part time vue developers, remote",
			want: models.RequirementFragment{
				Skills:       []string{"vue.js"},
				Availability: models.AvailabilityPartTime,
				Location:     "remote",
			},
		},
		{
			name:  "junior level",
			query: "entry-level python people on contract",
			want: models.RequirementFragment{
				Skills:          []string{"python"},
				ExperienceLevel: models.LevelJunior,
				Availability:    models.AvailabilityContract,
			},
		},
		{
			name:  "no constraints",
			query: "hello there",
			want:  models.RequirementFragment{},
		},
		{
			name:  "skill after in is not a location",
			query: "developers experienced in react",
			want: models.RequirementFragment{
				Skills: []string{"react"},
			},
		},
		{
			name:  "constraint after in is not a location",
			query: "senior people in tech",
			want: models.RequirementFragment{
				ExperienceLevel: models.LevelSenior,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag, err := ex.Extract(context.Background(), tt.query)
			require.NoError(t, err)

			assert.ElementsMatch(t, tt.want.Skills, frag.Skills)
			assert.Equal(t, tt.want.ExperienceLevel, frag.ExperienceLevel)
			assert.Equal(t, tt.want.Availability, frag.Availability)
			assert.Equal(t, tt.want.Location, frag.Location)
			assert.Equal(t, tt.query, frag.RawQuery)
		})
	}
}

func TestKeywordExtractorSkillOrderIsStable(t *testing.T) {
	ex := NewKeywordExtractor()

	// Detection walks the alias table in sorted order, so the fragment
	// lists skills the same way on every run.
	frag, err := ex.Extract(context.Background(), "vue, react and typescript developers")
	require.NoError(t, err)
	assert.Equal(t, []string{"react", "typescript", "vue.js"}, frag.Skills)
}

type stubExtractor struct {
	frag models.RequirementFragment
	err  error
}

func (s stubExtractor) Extract(context.Context, string) (models.RequirementFragment, error) {
	return s.frag, s.err
}

func TestChainFirstSuccessWins(t *testing.T) {
	chain := NewChain(zap.NewNop().Sugar(),
		stubExtractor{frag: models.RequirementFragment{Skills: []string{"react"}}},
		stubExtractor{frag: models.RequirementFragment{Skills: []string{"python"}}},
	)

	frag, err := chain.Extract(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []string{"react"}, frag.Skills)
}

func TestChainFallsThroughOnError(t *testing.T) {
	chain := NewChain(zap.NewNop().Sugar(),
		stubExtractor{err: errors.New("model down")},
		stubExtractor{frag: models.RequirementFragment{Skills: []string{"python"}}},
	)

	frag, err := chain.Extract(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []string{"python"}, frag.Skills)
}

func TestChainDegradesToEmptyFragment(t *testing.T) {
	chain := NewChain(zap.NewNop().Sugar(),
		stubExtractor{err: errors.New("model down")},
		stubExtractor{}, // empty fragment
	)

	frag, err := chain.Extract(context.Background(), "something vague")
	require.NoError(t, err)
	assert.True(t, frag.IsEmpty())
	assert.Equal(t, "something vague", frag.RawQuery)
}
