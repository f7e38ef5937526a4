package draft

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/djones2085/ffp/internal/models"
)

type CandidateResult struct {
	PlayerID string
	VORP     float64
	Total    float64
	Err      error
}

// PickResult is the recommended next pick for one team. Found is false when
// no player was eligible; that is a normal outcome, not an error.
type PickResult struct {
	Team       string
	Found      bool
	Player     models.Player
	VORP       float64
	Total      float64
	Rosters    []TeamRoster
	Candidates []CandidateResult
}

type Evaluator struct {
	scores        *Scores
	completer     *Completer
	order         Order
	workers       int
	maxCandidates int
	logger        *slog.Logger
}

type Option func(*Evaluator)

// WithWorkers evaluates candidates on n goroutines. Values below 2 run
// sequentially.
func WithWorkers(n int) Option {
	return func(e *Evaluator) {
		e.workers = n
	}
}

// WithMaxCandidates keeps only the n highest-VORP candidates. Zero means no
// limit.
func WithMaxCandidates(n int) Option {
	return func(e *Evaluator) {
		e.maxCandidates = n
	}
}

func WithOrder(o Order) Option {
	return func(e *Evaluator) {
		e.order = o
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

func NewEvaluator(scores *Scores, opts ...Option) *Evaluator {
	e := &Evaluator{
		scores:  scores,
		workers: 1,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.completer = NewCompleter(scores, e.order)
	return e
}

func (e *Evaluator) Completer() *Completer {
	return e.completer
}

// Candidates lists the players worth evaluating as the team's next pick, in
// ascending ID order: undrafted, non-negative VORP, and fitting an open
// starting slot. When only bench slots remain, any position qualifies.
func (e *Evaluator) Candidates(l *League, team int) []int {
	open := l.open(team)
	if !open.any {
		return nil
	}
	starters := open.starter()

	var out []int
	for i := 0; i < l.table.Len(); i++ {
		if l.drafted[i] || e.scores.At(i) < 0 {
			continue
		}
		pos := l.table.At(i).Position
		if starters && !open.exact[pos] && !(open.flex && pos.FlexEligible()) {
			continue
		}
		out = append(out, i)
	}

	if e.maxCandidates > 0 && len(out) > e.maxCandidates {
		sort.SliceStable(out, func(a, b int) bool {
			return e.scores.At(out[a]) > e.scores.At(out[b])
		})
		out = out[:e.maxCandidates]
		sort.Ints(out)
	}
	return out
}

// BestPick tries every candidate as the team's next pick on a private copy
// of the league, completes the draft greedily, and returns the candidate
// that leaves the team with the highest projected total. Ties go to the
// earliest candidate. l is never modified.
func (e *Evaluator) BestPick(ctx context.Context, l *League, team int) (PickResult, error) {
	if team < 0 || team >= l.NumTeams() {
		return PickResult{}, fmt.Errorf("%w: %d", ErrUnknownTeam, team)
	}

	result := PickResult{Team: l.TeamName(team)}
	candidates := e.Candidates(l, team)
	if len(candidates) == 0 {
		e.logger.Debug("No eligible candidates", "team", result.Team)
		return result, nil
	}

	results, err := e.evaluateAll(ctx, l, team, candidates)
	if err != nil {
		return PickResult{}, err
	}
	result.Candidates = results

	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best == -1 || r.Total > results[best].Total {
			best = i
		}
	}
	if best == -1 {
		e.logger.Debug("Every candidate failed to allocate", "team", result.Team, "candidates", len(candidates))
		return result, nil
	}

	scratch := l.Clone()
	if _, err := scratch.Assign(team, candidates[best]); err != nil {
		return PickResult{}, fmt.Errorf("replaying best pick: %w", err)
	}
	e.completer.Complete(scratch)

	result.Found = true
	result.Player = l.table.At(candidates[best])
	result.VORP = results[best].VORP
	result.Total = results[best].Total
	result.Rosters = scratch.Rosters()

	e.logger.Debug("Evaluated candidates",
		"team", result.Team,
		"candidates", len(candidates),
		"best", result.Player.ID,
		"total", result.Total,
	)
	return result, nil
}

// BestPicks runs BestPick independently for every team against the same
// starting state.
func (e *Evaluator) BestPicks(ctx context.Context, l *League) ([]PickResult, error) {
	out := make([]PickResult, l.NumTeams())
	for team := range out {
		r, err := e.BestPick(ctx, l, team)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s: %w", l.TeamName(team), err)
		}
		out[team] = r
	}
	return out, nil
}

func (e *Evaluator) evaluateAll(ctx context.Context, l *League, team int, candidates []int) ([]CandidateResult, error) {
	results := make([]CandidateResult, len(candidates))

	workers := min(e.workers, len(candidates))
	if workers < 2 {
		scratch := l.Clone()
		for i, p := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = e.evaluate(scratch, l, team, p)
		}
		return results, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scratch := l.Clone()
			for i := range jobs {
				results[i] = e.evaluate(scratch, l, team, candidates[i])
			}
		}()
	}

dispatch:
	for i := range candidates {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Evaluator) evaluate(scratch, base *League, team, player int) CandidateResult {
	scratch.Restore(base)
	r := CandidateResult{
		PlayerID: base.table.At(player).ID,
		VORP:     e.scores.At(player),
	}
	if _, err := scratch.Assign(team, player); err != nil {
		r.Err = err
		return r
	}
	e.completer.Complete(scratch)
	r.Total = scratch.Total(team)
	return r
}
