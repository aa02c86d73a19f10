// Package filter owns per-session conversation state and implements
// progressive candidate narrowing: each turn's constraints merge with
// prior turns', monotonically shrinking the pool.
package filter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/talentmatch/backend/extract"
	"github.com/talentmatch/backend/matching"
	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/session"
	"github.com/talentmatch/backend/storage"
	"github.com/talentmatch/backend/tenure"
)

// ErrUnknownSession is returned by Reset for a session never initialized.
var ErrUnknownSession = session.ErrNotFound

// Options tunes filtering behavior.
type Options struct {
	// MinScoreFloor: candidates must score strictly above this to stay
	// in the pool for the next turn.
	MinScoreFloor int
	// MaxConcurrent bounds the per-turn scoring fan-out.
	MaxConcurrent int
	// MaxMatches truncates the matches returned in a response. The pool
	// still carries every candidate above the floor; this only limits
	// presentation. Zero means no limit.
	MaxMatches int
}

// DefaultOptions match the documented defaults.
var DefaultOptions = Options{
	MinScoreFloor: 0,
	MaxConcurrent: 8,
}

// Filter narrows a candidate pool across conversation turns. One turn
// per session must complete before the next begins; different sessions
// are independent and may run concurrently.
type Filter struct {
	candidates storage.CandidateStore
	sessions   session.Store
	extractor  extract.Extractor
	engine     *matching.Engine
	analyzer   *tenure.Analyzer
	opts       Options
	logger     *zap.SugaredLogger
}

// New creates a progressive filter.
func New(candidates storage.CandidateStore, sessions session.Store, extractor extract.Extractor, engine *matching.Engine, opts Options, logger *zap.SugaredLogger) *Filter {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultOptions.MaxConcurrent
	}
	return &Filter{
		candidates: candidates,
		sessions:   sessions,
		extractor:  extractor,
		engine:     engine,
		opts:       opts,
		logger:     logger,
	}
}

// WithTenure enables per-match tenure labels on turn results.
func (f *Filter) WithTenure(analyzer *tenure.Analyzer) *Filter {
	f.analyzer = analyzer
	return f
}

// Filter runs one conversation turn: extracts requirements from the
// query, merges them into the session history, narrows the pool and
// returns ranked matches. reset starts the session over first.
//
// State is written back only after the whole turn computes, so a failed
// turn never leaves partial state behind.
func (f *Filter) Filter(ctx context.Context, sessionID, query string, reset bool, company *models.CompanyProfile) (*models.SearchResponse, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}

	state, err := f.sessions.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		state = models.NewConversationState(sessionID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if reset {
		state.Reset()
	}
	if company != nil {
		state.Company = company
	}

	// Extraction failure degrades to an empty fragment: the turn adds
	// no constraint instead of failing.
	frag, err := f.extractor.Extract(ctx, query)
	if err != nil {
		f.logger.Warnw("requirement extraction degraded", "session", sessionID, "error", err)
		frag = models.RequirementFragment{RawQuery: query}
	}

	state.History = append(state.History, frag)
	state.Turn++
	effective := models.CombineFragments(state.History)

	universe, err := f.candidates.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}

	startingPool := f.startingPool(state, universe)
	poolSizeBefore := len(startingPool)

	survivors := applyHardFilters(startingPool, effective)
	matches := f.scorePool(ctx, survivors, effective, state.Company)

	// Rank: pre-smoothing score desc, then experience desc, then id asc
	// for determinism. The displayed Score is cosmetically smoothed and
	// must not drive ordering.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].RankScore != matches[j].RankScore {
			return matches[i].RankScore > matches[j].RankScore
		}
		if matches[i].ExperienceYears != matches[j].ExperienceYears {
			return matches[i].ExperienceYears > matches[j].ExperienceYears
		}
		return matches[i].CandidateID < matches[j].CandidateID
	})

	// Only candidates above the floor carry into the next turn.
	kept := matches[:0:0]
	pool := make([]string, 0, len(matches))
	embeddingUnavailable := false
	for _, m := range matches {
		if m.RankScore > float64(f.opts.MinScoreFloor) {
			kept = append(kept, m)
			pool = append(pool, m.CandidateID)
		}
		if m.EmbeddingUnavailable {
			embeddingUnavailable = true
		}
	}
	matches = kept

	state.Pool = pool
	state.Exhausted = len(matches) == 0

	matchesFound := len(matches)
	suggestion := suggestRefinement(matches, effective.Skills)
	if f.opts.MaxMatches > 0 && len(matches) > f.opts.MaxMatches {
		matches = matches[:f.opts.MaxMatches]
	}

	if err := f.sessions.Put(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	f.logger.Infow("progressive filter turn complete",
		"session", sessionID,
		"turn", state.Turn,
		"pool_before", poolSizeBefore,
		"matches", matchesFound,
	)

	return &models.SearchResponse{
		SessionID:             sessionID,
		TurnNumber:            state.Turn,
		EffectiveRequirements: effective,
		PoolSizeBefore:        poolSizeBefore,
		MatchesFound:          matchesFound,
		Matches:               matches,
		RefinementSuggestion:  suggestion,
		PoolExhausted:         state.Exhausted,
		EmbeddingUnavailable:  embeddingUnavailable,
	}, nil
}

// Reset reinitializes an existing session: full universe, empty history.
// Returns ErrUnknownSession when the session was never created.
func (f *Filter) Reset(ctx context.Context, sessionID string) (int, error) {
	state, err := f.sessions.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	state.Reset()
	if err := f.sessions.Put(ctx, state); err != nil {
		return 0, fmt.Errorf("failed to store session: %w", err)
	}

	universe, err := f.candidates.ListCandidates(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load candidate pool: %w", err)
	}
	return len(universe), nil
}

// SetCompany attaches an employer profile to a session, creating the
// session when needed.
func (f *Filter) SetCompany(ctx context.Context, sessionID string, company *models.CompanyProfile) error {
	state, err := f.sessions.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		state = models.NewConversationState(sessionID)
	} else if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	state.Company = company
	return f.sessions.Put(ctx, state)
}

// startingPool resolves this turn's candidates: the full universe on the
// first turn, the previous turn's surviving ids after that.
func (f *Filter) startingPool(state *models.ConversationState, universe []models.Candidate) []models.Candidate {
	if state.Turn <= 1 {
		return universe
	}

	inPool := make(map[string]bool, len(state.Pool))
	for _, id := range state.Pool {
		inPool[id] = true
	}

	pool := make([]models.Candidate, 0, len(state.Pool))
	for _, c := range universe {
		if inPool[c.ID] {
			pool = append(pool, c)
		}
	}
	return pool
}

// applyHardFilters removes candidates that fail elimination criteria:
// availability, location substring, and experience level once specified.
// Skills never eliminate; they only feed scoring.
func applyHardFilters(pool []models.Candidate, reqs models.EffectiveRequirements) []models.Candidate {
	out := make([]models.Candidate, 0, len(pool))
	for _, c := range pool {
		if reqs.Availability != models.AvailabilityAny && c.Availability != reqs.Availability {
			continue
		}
		if reqs.ExperienceLevel != models.LevelAny && c.ExperienceLevel != reqs.ExperienceLevel {
			continue
		}
		if reqs.Location != "" && !strings.Contains(strings.ToLower(c.Location), strings.ToLower(reqs.Location)) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// scorePool fans candidate scoring out across workers. Scoring is a pure
// per-candidate function, so results merge with a simple collect.
func (f *Filter) scorePool(ctx context.Context, pool []models.Candidate, reqs models.EffectiveRequirements, company *models.CompanyProfile) []models.MatchResult {
	results := make([]models.MatchResult, 0, len(pool))
	resultsChan := make(chan models.MatchResult, len(pool))

	sem := make(chan struct{}, f.opts.MaxConcurrent)
	var wg sync.WaitGroup

	for _, cand := range pool {
		wg.Add(1)
		go func(c models.Candidate) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			r := f.engine.Score(ctx, c, reqs, company)
			if f.analyzer != nil && len(c.WorkHistory) > 0 {
				r.TenureLabel = f.analyzer.Analyze(c.WorkHistory).Label
			}
			resultsChan <- r
		}(cand)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for r := range resultsChan {
		results = append(results, r)
	}

	return results
}

// suggestRefinement proposes the recruiter's next move: skills common
// among many matches when the list is long, or loosening advice when
// nothing survived.
func suggestRefinement(matches []models.MatchResult, currentSkills []string) string {
	if len(matches) == 0 {
		return "No matches yet. Try being less specific or change what you're looking for."
	}

	if len(matches) > 5 {
		current := make(map[string]bool, len(currentSkills))
		for _, s := range currentSkills {
			current[matching.NormalizeSkill(s)] = true
		}

		counts := make(map[string]int)
		for _, m := range matches {
			for _, skill := range m.Skills {
				norm := matching.NormalizeSkill(skill)
				if !current[norm] {
					counts[norm]++
				}
			}
		}

		if len(counts) > 0 {
			type skillCount struct {
				skill string
				n     int
			}
			ranked := make([]skillCount, 0, len(counts))
			for s, n := range counts {
				ranked = append(ranked, skillCount{s, n})
			}
			sort.Slice(ranked, func(i, j int) bool {
				if ranked[i].n != ranked[j].n {
					return ranked[i].n > ranked[j].n
				}
				return ranked[i].skill < ranked[j].skill
			})
			if len(ranked) > 3 {
				ranked = ranked[:3]
			}
			names := make([]string, len(ranked))
			for i, sc := range ranked {
				names[i] = sc.skill
			}
			return fmt.Sprintf("That's %d people. Want to narrow it down? Many of them also know %s.",
				len(matches), strings.Join(names, ", "))
		}

		return fmt.Sprintf("That's %d people. You could narrow it down by being more specific about what you need.", len(matches))
	}

	if len(matches) == 1 {
		return "Found 1 person!"
	}
	return fmt.Sprintf("Found %d good matches!", len(matches))
}
