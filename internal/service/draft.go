package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/djones2085/ffp/internal/config"
	"github.com/djones2085/ffp/internal/draft"
	"github.com/djones2085/ffp/internal/metrics"
	"github.com/djones2085/ffp/internal/models"
	"github.com/djones2085/ffp/internal/repository/memory"
	"github.com/google/uuid"
)

var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrNoDraftID      = errors.New("no draft id configured")
)

type PlayerSource interface {
	GetPlayerTable(ctx context.Context) (*models.PlayerTable, error)
	GetDraftPicks(ctx context.Context, draftID string) ([]models.DraftPick, error)
}

type Settings struct {
	Teams         []string
	MyTeam        string
	Template      draft.Template
	Order         draft.Order
	Workers       int
	MaxCandidates int
	PoolTTL       time.Duration
	DraftID       string
}

func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	tmpl, err := draft.ParseTemplate(cfg.League.Roster)
	if err != nil {
		return Settings{}, err
	}
	order, err := draft.ParseOrder(cfg.League.DraftOrder)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Teams:         cfg.League.TeamNames(),
		MyTeam:        cfg.League.MyTeam,
		Template:      tmpl,
		Order:         order,
		Workers:       cfg.League.Workers,
		MaxCandidates: cfg.League.MaxCandidates,
		PoolTTL:       cfg.League.PoolTTL,
		DraftID:       cfg.Sleeper.DraftID,
	}, nil
}

// Board is the derived state of one run: the pool snapshot, its baselines
// and VORP, and the league replayed from the recorded picks.
type Board struct {
	Table     *models.PlayerTable
	Baselines draft.Baselines
	Scores    *draft.Scores
	League    *draft.League
}

type DraftService struct {
	api      PlayerSource
	repo     *memory.Repository
	settings Settings
	metrics  *metrics.Metrics
}

func NewDraftService(api PlayerSource, repo *memory.Repository, settings Settings, m *metrics.Metrics) *DraftService {
	return &DraftService{api: api, repo: repo, settings: settings, metrics: m}
}

func (s *DraftService) Settings() Settings {
	return s.settings
}

// Refresh replaces the player snapshot with a fresh fetch.
func (s *DraftService) Refresh(ctx context.Context) (int, error) {
	table, err := s.api.GetPlayerTable(ctx)
	s.metrics.RecordRefresh(lenOrZero(table), err)
	if err != nil {
		return 0, fmt.Errorf("refreshing player pool: %w", err)
	}
	s.repo.SaveTable(table)
	slog.Info("Player pool refreshed", "players", table.Len())
	return table.Len(), nil
}

func lenOrZero(table *models.PlayerTable) int {
	if table == nil {
		return 0
	}
	return table.Len()
}

func (s *DraftService) getTable(ctx context.Context) (*models.PlayerTable, error) {
	table := s.repo.GetTable()
	if table == nil || (s.settings.PoolTTL > 0 && time.Since(table.LastUpdated) > s.settings.PoolTTL) {
		if _, err := s.Refresh(ctx); err != nil {
			if table != nil {
				slog.Warn("Using stale player pool", "error", err, "last_updated", table.LastUpdated)
				return table, nil
			}
			return nil, err
		}
		return s.repo.GetTable(), nil
	}
	return table, nil
}

// Board builds the current run state. Recorded picks that no longer fit
// (for example after a refresh dropped a player) are skipped with a warning.
func (s *DraftService) Board(ctx context.Context) (*Board, error) {
	table, err := s.getTable(ctx)
	if err != nil {
		return nil, err
	}

	baselines := draft.ComputeBaselines(table, s.settings.Template, len(s.settings.Teams))
	for _, pos := range models.Positions {
		if baselines.Positions[pos].Empty {
			slog.Warn("No players available for position", "position", pos.String())
		}
	}

	league, err := draft.NewLeague(table, s.settings.Template, s.settings.Teams)
	if err != nil {
		return nil, err
	}

	picks := s.repo.Picks()
	for team, name := range s.settings.Teams {
		for _, id := range picks[name] {
			if _, err := league.Draft(team, id); err != nil {
				slog.Warn("Skipping recorded pick", "team", name, "player", id, "error", err)
			}
		}
	}

	return &Board{
		Table:     table,
		Baselines: baselines,
		Scores:    draft.ComputeScores(table, baselines),
		League:    league,
	}, nil
}

func (s *DraftService) evaluator(b *Board) *draft.Evaluator {
	return draft.NewEvaluator(b.Scores,
		draft.WithOrder(s.settings.Order),
		draft.WithWorkers(s.settings.Workers),
		draft.WithMaxCandidates(s.settings.MaxCandidates),
	)
}

// ResolveTeam maps a user-supplied name onto the configured team list. An
// empty name means MY_TEAM.
func (s *DraftService) ResolveTeam(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		name = s.settings.MyTeam
	}
	i := bestMatch(name, s.settings.Teams, teamMatchThreshold)
	if i == -1 {
		return "", fmt.Errorf("%w: %s", ErrTeamNotFound, name)
	}
	return s.settings.Teams[i], nil
}

// resolvePlayer looks a query up by Sleeper id, then by name. Name matches
// prefer players still available, so a namesake of a drafted player resolves
// to the one that can be picked.
func resolvePlayer(table *models.PlayerTable, query string, drafted func(int) bool) (models.Player, error) {
	if p, ok := table.Get(strings.TrimSpace(query)); ok {
		return p, nil
	}

	players := table.Players()
	var available []int
	for i := range players {
		if !drafted(i) {
			available = append(available, i)
		}
	}
	if i := matchPlayer(players, available, query); i != -1 {
		return players[i], nil
	}

	all := make([]int, len(players))
	for i := range all {
		all[i] = i
	}
	if i := matchPlayer(players, all, query); i != -1 {
		return players[i], nil
	}
	return models.Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, query)
}

func matchPlayer(players []models.Player, indices []int, query string) int {
	names := make([]string, len(indices))
	for i, idx := range indices {
		names[i] = players[idx].Name
	}
	i := bestMatch(query, names, playerMatchThreshold)
	if i == -1 {
		return -1
	}
	return indices[i]
}

// RecordPick marks a player as drafted by a team. The pick is checked
// against the team's open slots before it is stored.
func (s *DraftService) RecordPick(ctx context.Context, teamName, playerQuery string) (models.Player, string, error) {
	team, err := s.ResolveTeam(teamName)
	if err != nil {
		return models.Player{}, "", err
	}

	b, err := s.Board(ctx)
	if err != nil {
		return models.Player{}, "", err
	}
	player, err := resolvePlayer(b.Table, playerQuery, b.League.Drafted)
	if err != nil {
		return models.Player{}, "", err
	}

	teamIdx, _ := b.League.TeamIndex(team)
	if _, err := b.League.Draft(teamIdx, player.ID); err != nil {
		return models.Player{}, "", fmt.Errorf("recording pick: %w", err)
	}
	if err := s.repo.AddPick(team, player.ID); err != nil {
		return models.Player{}, "", fmt.Errorf("recording pick: %w", err)
	}

	s.metrics.RecordPick()
	slog.Info("Pick recorded", "team", team, "player", player.Name, "id", player.ID)
	return player, team, nil
}

func (s *DraftService) UndoPick(ctx context.Context, teamName string) (models.Player, string, error) {
	team, err := s.ResolveTeam(teamName)
	if err != nil {
		return models.Player{}, "", err
	}
	id, ok := s.repo.RemoveLastPick(team)
	if !ok {
		return models.Player{}, team, fmt.Errorf("no picks recorded for %s", team)
	}

	table, err := s.getTable(ctx)
	if err != nil {
		return models.Player{}, team, err
	}
	player, ok := table.Get(id)
	if !ok {
		player = models.Player{ID: id, Name: id}
	}
	slog.Info("Pick removed", "team", team, "player", player.Name)
	return player, team, nil
}

// ImportDraft replaces the recorded picks with those of the configured
// Sleeper draft. Draft slots map to teams in configured order.
func (s *DraftService) ImportDraft(ctx context.Context) (int, error) {
	if s.settings.DraftID == "" {
		return 0, ErrNoDraftID
	}
	picks, err := s.api.GetDraftPicks(ctx, s.settings.DraftID)
	if err != nil {
		return 0, fmt.Errorf("importing draft: %w", err)
	}

	s.repo.ClearPicks()
	imported := 0
	for _, p := range picks {
		if p.DraftSlot < 1 || p.DraftSlot > len(s.settings.Teams) {
			slog.Warn("Pick outside configured teams", "pick", p.PickNo, "slot", p.DraftSlot)
			continue
		}
		if err := s.repo.AddPick(s.settings.Teams[p.DraftSlot-1], p.PlayerID); err != nil {
			slog.Warn("Skipping duplicate pick", "pick", p.PickNo, "player", p.PlayerID)
			continue
		}
		imported++
	}

	slog.Info("Draft imported", "draft_id", s.settings.DraftID, "picks", imported)
	return imported, nil
}

func (s *DraftService) BestPick(ctx context.Context, teamName string) (draft.PickResult, error) {
	team, err := s.ResolveTeam(teamName)
	if err != nil {
		return draft.PickResult{}, err
	}
	b, err := s.Board(ctx)
	if err != nil {
		return draft.PickResult{}, err
	}
	teamIdx, _ := b.League.TeamIndex(team)

	runID := uuid.NewString()
	start := time.Now()
	result, err := s.evaluator(b).BestPick(ctx, b.League, teamIdx)
	elapsed := time.Since(start)
	s.metrics.RecordEvaluation(result.Found, len(result.Candidates), elapsed, err)
	if err != nil {
		slog.Error("Pick evaluation failed", "run_id", runID, "team", team, "error", err)
		return draft.PickResult{}, fmt.Errorf("evaluating best pick: %w", err)
	}

	slog.Info("Pick evaluated",
		"run_id", runID,
		"team", team,
		"found", result.Found,
		"player", result.Player.Name,
		"total", result.Total,
		"candidates", len(result.Candidates),
		"elapsed", elapsed,
	)
	return result, nil
}

func (s *DraftService) BestPicks(ctx context.Context) ([]draft.PickResult, error) {
	b, err := s.Board(ctx)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	start := time.Now()
	results, err := s.evaluator(b).BestPicks(ctx, b.League)
	if err != nil {
		s.metrics.RecordEvaluation(false, 0, time.Since(start), err)
		return nil, fmt.Errorf("evaluating best picks: %w", err)
	}
	for _, r := range results {
		s.metrics.RecordEvaluation(r.Found, len(r.Candidates), time.Since(start)/time.Duration(len(results)), nil)
	}

	slog.Info("Picks evaluated for all teams", "run_id", runID, "teams", len(results), "elapsed", time.Since(start))
	return results, nil
}

func (s *DraftService) Roster(ctx context.Context, teamName string) (draft.TeamRoster, error) {
	team, err := s.ResolveTeam(teamName)
	if err != nil {
		return draft.TeamRoster{}, err
	}
	b, err := s.Board(ctx)
	if err != nil {
		return draft.TeamRoster{}, err
	}
	teamIdx, _ := b.League.TeamIndex(team)
	return b.League.Roster(teamIdx), nil
}

// TopAvailable lists the best undrafted players by VORP, optionally for one
// position.
func (s *DraftService) TopAvailable(ctx context.Context, position string, n int) ([]models.RankedPlayer, error) {
	b, err := s.Board(ctx)
	if err != nil {
		return nil, err
	}

	var pos models.Position
	if strings.TrimSpace(position) != "" {
		if pos, err = models.ParsePosition(position); err != nil {
			return nil, err
		}
	}

	return b.Scores.Top(n, func(i int) bool {
		if b.League.Drafted(i) {
			return false
		}
		return pos == 0 || b.Table.At(i).Position == pos
	}), nil
}
