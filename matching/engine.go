package matching

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/talentmatch/backend/models"
)

// Embedder is the collaborator interface for turning text into a
// fixed-dimension vector. Implementations must be deterministic for
// identical input within a session.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Engine scores a candidate against an effective requirement set.
// Score is a pure function of its inputs; instances are safe for
// concurrent use.
type Engine struct {
	weights  Weights
	embedder Embedder // nil disables embedding refinement and culture fit
	logger   *zap.SugaredLogger
}

// NewEngine creates a scoring engine. embedder may be nil.
func NewEngine(weights Weights, embedder Embedder, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		weights:  weights,
		embedder: embedder,
		logger:   logger,
	}
}

// Score computes the match result for one candidate. company may be nil;
// when present, culture fit and mission alignment are blended into an
// overall fit. The engine never fails a turn: embedding errors degrade
// to the keyword signal and set EmbeddingUnavailable.
func (e *Engine) Score(ctx context.Context, cand models.Candidate, reqs models.EffectiveRequirements, company *models.CompanyProfile) models.MatchResult {
	result := models.MatchResult{
		CandidateID:     cand.ID,
		Name:            cand.Name,
		ExperienceYears: cand.ExperienceYears,
		ExperienceLevel: cand.ExperienceLevel,
		Availability:    cand.Availability,
		Location:        cand.Location,
		Skills:          cand.Skills,
	}

	candSet := make(map[string]string, len(cand.Skills)) // normalized -> original
	for _, s := range cand.Skills {
		candSet[NormalizeSkill(s)] = s
	}

	required := make([]string, 0, len(reqs.Skills))
	for _, s := range reqs.Skills {
		required = append(required, NormalizeSkill(s))
	}

	// Direct matches. MatchedSkills carries the candidate's own spelling
	// for display; comparison happens on the normalized form.
	directCount := 0
	directSet := make(map[string]bool, len(required))
	for _, req := range required {
		if orig, ok := candSet[req]; ok {
			directCount++
			directSet[req] = true
			result.MatchedSkills = append(result.MatchedSkills, orig)
		}
	}

	directRatio := 1.0
	if len(required) > 0 {
		directRatio = float64(directCount) / float64(len(required))
	}

	// Transferable coverage for skills not directly matched. Each
	// required skill contributes at most one bonus.
	var transferBonus float64
	for _, req := range required {
		if directSet[req] {
			continue
		}
		substitutes := e.weights.Transferability[req]
		bestBonus := 0.0
		bestHas := ""
		for candSkill := range candSet {
			if bonus, ok := substitutes[candSkill]; ok && bonus > bestBonus {
				bestBonus = bonus
				bestHas = candSkill
			}
		}
		if bestHas != "" {
			transferBonus += bestBonus
			result.TransferableSkills = append(result.TransferableSkills, models.TransferablePair{
				Required: req,
				Has:      bestHas,
			})
		} else {
			result.MissingSkills = append(result.MissingSkills, req)
		}
	}

	score := directRatio*100 + transferBonus

	// No required skills means no constraint to miss; that counts as a
	// full match, same as holding every required skill outright.
	perfect := directCount == len(required)
	if !perfect && score > 99 {
		// 100 is reserved for a literal perfect direct match.
		score = 99
	}

	// Experience alignment.
	if reqs.ExperienceLevel != models.LevelAny {
		gap := models.LevelRank(reqs.ExperienceLevel) - models.LevelRank(cand.ExperienceLevel)
		if gap < 0 {
			gap = -gap
		}
		switch gap {
		case 1:
			score -= e.weights.LevelPenaltyNear
		case 2:
			score -= e.weights.LevelPenaltyFar
		}
		if gap > 0 {
			perfect = false
		}
	}

	// Embedding refinement surfaces candidates whose vocabulary doesn't
	// overlap the query, but only when the keyword signal is weak.
	if e.embedder != nil && len(required) > 0 && directRatio < e.weights.EmbeddingWeakSignal {
		sim, err := e.textSimilarity(ctx, requirementText(reqs), candidateText(cand))
		if err != nil {
			result.EmbeddingUnavailable = true
			e.logger.Warnw("embedding unavailable, using keyword signal only",
				"candidate", cand.ID, "error", err)
		} else {
			blend := e.weights.EmbeddingBlend
			score = score*(1-blend) + sim*100*blend
		}
	}

	score = clampScore(score)

	// Culture fit needs both a company profile and a working embedder.
	if company != nil && e.embedder != nil && !result.EmbeddingUnavailable {
		e.scoreCultureFit(ctx, cand, company, score, &result)
	}

	// Ranking keys off the raw score: smoothing only dresses up the
	// displayed number and must never change relative order.
	result.RankScore = score
	result.Score = e.finalize(score, cand.ID, perfect)
	result.Reasoning = e.buildReasoning(cand, result)

	return result
}

// scoreCultureFit fills CultureFit, MissionAlignment and OverallFit on
// the result. Embedding errors leave the fields unset and flag the result.
func (e *Engine) scoreCultureFit(ctx context.Context, cand models.Candidate, company *models.CompanyProfile, skillScore float64, result *models.MatchResult) {
	cultureSim, err := e.textSimilarity(ctx, cultureText(cand.CultureAnswers), cultureText(company.CultureAnswers))
	if err != nil {
		result.EmbeddingUnavailable = true
		return
	}
	cultureFit := round1(cultureSim * 100)

	mission := e.weights.MissionNeutral
	candDomain := cand.CultureAnswers["problem_domain"]
	if candDomain != "" && company.Mission != "" {
		missionSim, err := e.textSimilarity(ctx, candDomain, company.Mission)
		if err != nil {
			result.EmbeddingUnavailable = true
			return
		}
		mission = round1(missionSim * 100)
	}

	overall := round1(skillScore*e.weights.SkillWeight +
		cultureFit*e.weights.CultureWeight +
		mission*e.weights.MissionWeight)

	result.CultureFit = &cultureFit
	result.MissionAlignment = &mission
	result.OverallFit = &overall
}

func (e *Engine) textSimilarity(ctx context.Context, a, b string) (float64, error) {
	va, err := e.embedder.Embed(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("embed failed: %w", err)
	}
	vb, err := e.embedder.Embed(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("embed failed: %w", err)
	}
	sim := CosineSimilarity(va, vb)
	if sim < 0 {
		sim = 0
	}
	return sim, nil
}

// finalize rounds the score and applies the cosmetic smoothing step.
// Smoothing nudges round-number scores onto less suspicious endings; it
// is deterministic in the candidate id, stable across calls, and never
// touches 0, 100, or anything when disabled.
func (e *Engine) finalize(score float64, candidateID string, perfect bool) int {
	final := int(math.Round(score))
	if final > 100 {
		final = 100
	}
	if final < 0 {
		final = 0
	}
	if perfect {
		return 100
	}
	if final == 100 {
		final = 99
	}

	if !e.weights.SmoothScores || final == 0 {
		return final
	}
	if final%10 == 0 || final%10 == 5 {
		h := fnv.New32a()
		h.Write([]byte(candidateID))
		final -= 1 + int(h.Sum32()%3)
		if final < 1 {
			final = 1
		}
	}
	return final
}

func (e *Engine) buildReasoning(cand models.Candidate, result models.MatchResult) string {
	var parts []string

	switch n := len(result.MatchedSkills); {
	case n == 1:
		parts = append(parts, fmt.Sprintf("Knows %s", result.MatchedSkills[0]))
	case n == 2:
		parts = append(parts, fmt.Sprintf("Knows %s and %s", result.MatchedSkills[0], result.MatchedSkills[1]))
	case n > 2:
		parts = append(parts, fmt.Sprintf("Knows %s, %s, and more", result.MatchedSkills[0], result.MatchedSkills[1]))
	}

	if len(result.TransferableSkills) > 0 {
		t := result.TransferableSkills[0]
		parts = append(parts, fmt.Sprintf("Has experience with %s which is similar to %s", t.Has, t.Required))
	}

	years := int(cand.ExperienceYears)
	switch {
	case years == 1:
		parts = append(parts, "1 year in the field")
	case years < 3:
		parts = append(parts, fmt.Sprintf("%d years in the field", years))
	case years < 7:
		parts = append(parts, fmt.Sprintf("%d years doing this", years))
	default:
		parts = append(parts, fmt.Sprintf("%d years of solid experience", years))
	}

	return strings.Join(parts, ". ") + "."
}

func requirementText(reqs models.EffectiveRequirements) string {
	var parts []string
	if len(reqs.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(reqs.Skills, ", "))
	}
	if reqs.ExperienceLevel != models.LevelAny {
		parts = append(parts, "Level: "+reqs.ExperienceLevel)
	}
	if reqs.CultureHints != "" {
		parts = append(parts, reqs.CultureHints)
	}
	return strings.Join(parts, " | ")
}

func candidateText(cand models.Candidate) string {
	var parts []string
	if len(cand.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(cand.Skills, ", "))
	}
	if cand.Bio != "" {
		parts = append(parts, cand.Bio)
	}
	return strings.Join(parts, " | ")
}

func cultureText(answers map[string]string) string {
	if len(answers) == 0 {
		return "No profile data"
	}
	// Deterministic ordering keeps embeddings stable for identical input.
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, answers[k]))
	}
	return strings.Join(parts, " | ")
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
