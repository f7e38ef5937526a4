package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/djones2085/ffp/internal/draft"
	"github.com/djones2085/ffp/internal/models"
)

const defaultTopPlayers = 10

func (s *DraftService) GetBaselinesReport(ctx context.Context) (string, error) {
	b, err := s.Board(ctx)
	if err != nil {
		return "", fmt.Errorf("building board: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("📏 *Replacement Baselines*\n")
	sb.WriteString(fmt.Sprintf("_%d teams, roster %s_\n\n", len(s.settings.Teams), s.settings.Template))

	for _, pos := range models.Positions {
		bl := b.Baselines.Positions[pos]
		sb.WriteString(formatBaseline(pos.String(), bl, b.Table))
	}
	if b.Baselines.Flex != nil {
		sb.WriteString(formatBaseline("FLEX", *b.Baselines.Flex, b.Table))
	}

	return sb.String(), nil
}

func formatBaseline(label string, bl draft.Baseline, table *models.PlayerTable) string {
	if bl.Empty {
		return fmt.Sprintf("*%s*: no players\n", label)
	}
	name := bl.PlayerID
	if p, ok := table.Get(bl.PlayerID); ok {
		name = p.Name
	}
	return fmt.Sprintf("*%s*: %.1f pts (%s, rank %d)\n", label, bl.Points, name, bl.Rank+1)
}

func (s *DraftService) GetVORPReport(ctx context.Context, position string) (string, error) {
	players, err := s.TopAvailable(ctx, position, defaultTopPlayers)
	if err != nil {
		return "", err
	}

	title := "All Positions"
	if pos, err := models.ParsePosition(position); err == nil {
		title = pos.String()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *Top Available: %s*\n\n", title))
	if len(players) == 0 {
		sb.WriteString("No players available.\n")
		return sb.String(), nil
	}
	for i, rp := range players {
		sb.WriteString(fmt.Sprintf("%d. %s (%s, %s) VORP %+.1f | %.1f pts\n",
			i+1, rp.Player.Name, rp.Player.Position, teamOrFA(rp.Player.Team), rp.VORP, rp.Player.Projection))
	}
	return sb.String(), nil
}

func teamOrFA(team string) string {
	if team == "" {
		return "FA"
	}
	return team
}

func (s *DraftService) GetBestPickReport(ctx context.Context, teamName string) (string, error) {
	result, err := s.BestPick(ctx, teamName)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎯 *Best Pick for %s*\n\n", result.Team))
	if !result.Found {
		sb.WriteString("No eligible players left for open slots.\n")
		return sb.String(), nil
	}

	sb.WriteString(fmt.Sprintf("*%s* (%s, %s)\n", result.Player.Name, result.Player.Position, teamOrFA(result.Player.Team)))
	sb.WriteString(fmt.Sprintf("VORP: %+.1f\n", result.VORP))
	sb.WriteString(fmt.Sprintf("Projected team total: %.1f pts\n", result.Total))

	alternatives := rankCandidates(result.Candidates, result.Player.ID, 3)
	if len(alternatives) > 0 {
		sb.WriteString("\n*Next best:*\n")
		for _, c := range alternatives {
			sb.WriteString(fmt.Sprintf("• %s: %.1f pts (%+.1f)\n", s.playerName(ctx, c.PlayerID), c.Total, c.Total-result.Total))
		}
	}
	return sb.String(), nil
}

// rankCandidates returns up to n successful candidates other than skip,
// ordered by terminal total.
func rankCandidates(candidates []draft.CandidateResult, skip string, n int) []draft.CandidateResult {
	var out []draft.CandidateResult
	for _, c := range candidates {
		if c.Err == nil && c.PlayerID != skip {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func (s *DraftService) playerName(ctx context.Context, id string) string {
	table, err := s.getTable(ctx)
	if err != nil {
		return id
	}
	if p, ok := table.Get(id); ok {
		return p.Name
	}
	return id
}

func (s *DraftService) GetBestPicksReport(ctx context.Context) (string, error) {
	results, err := s.BestPicks(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("🧠 *Best Pick by Team*\n\n")
	for _, r := range results {
		if !r.Found {
			sb.WriteString(fmt.Sprintf("*%s*: roster complete\n", r.Team))
			continue
		}
		sb.WriteString(fmt.Sprintf("*%s*: %s (%s) → %.1f pts\n", r.Team, r.Player.Name, r.Player.Position, r.Total))
	}
	return sb.String(), nil
}

func (s *DraftService) GetRosterReport(ctx context.Context, teamName string) (string, error) {
	view, err := s.RosterView(ctx, teamName)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *%s Roster*\n\n", view.TeamName))
	for _, slot := range view.Slots {
		if slot.Player == nil {
			sb.WriteString(fmt.Sprintf("%s: _empty_\n", slot.Slot))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s: %s (%s) %.1f\n", slot.Slot, slot.Player.Name, slot.Player.Position, slot.Player.Projection))
	}
	sb.WriteString(fmt.Sprintf("\n*Total:* %.1f pts\n", view.Total))
	return sb.String(), nil
}

// RosterView resolves a team's slot snapshot into player details.
func (s *DraftService) RosterView(ctx context.Context, teamName string) (models.TeamRosterView, error) {
	roster, err := s.Roster(ctx, teamName)
	if err != nil {
		return models.TeamRosterView{}, err
	}
	table, err := s.getTable(ctx)
	if err != nil {
		return models.TeamRosterView{}, err
	}
	return rosterView(table, roster), nil
}

func rosterView(table *models.PlayerTable, roster draft.TeamRoster) models.TeamRosterView {
	view := models.TeamRosterView{
		TeamName: roster.Team,
		Slots:    make([]models.RosterSlotView, len(roster.Slots)),
		Total:    roster.Total,
	}
	for i, slot := range roster.Slots {
		view.Slots[i].Slot = slot.Def.String()
		if slot.PlayerID == "" {
			continue
		}
		if p, ok := table.Get(slot.PlayerID); ok {
			view.Slots[i].Player = &p
		}
	}
	return view
}

// Recommend evaluates a team's best pick and resolves the simulated final
// rosters of every team.
func (s *DraftService) Recommend(ctx context.Context, teamName string) (models.PickRecommendation, error) {
	result, err := s.BestPick(ctx, teamName)
	if err != nil {
		return models.PickRecommendation{}, err
	}
	table, err := s.getTable(ctx)
	if err != nil {
		return models.PickRecommendation{}, err
	}

	rec := recommendation(result)
	rec.Rosters = make([]models.TeamRosterView, len(result.Rosters))
	for i, roster := range result.Rosters {
		rec.Rosters[i] = rosterView(table, roster)
	}
	return rec, nil
}

// Recommendations is Recommend for every team, without rosters.
func (s *DraftService) Recommendations(ctx context.Context) ([]models.PickRecommendation, error) {
	results, err := s.BestPicks(ctx)
	if err != nil {
		return nil, err
	}
	recs := make([]models.PickRecommendation, len(results))
	for i, r := range results {
		recs[i] = recommendation(r)
	}
	return recs, nil
}

func recommendation(r draft.PickResult) models.PickRecommendation {
	rec := models.PickRecommendation{Team: r.Team, Found: r.Found}
	if r.Found {
		p := r.Player
		rec.Player = &p
		rec.VORP = r.VORP
		rec.Total = r.Total
	}
	return rec
}

func (s *DraftService) GetPickReport(ctx context.Context, teamName, playerQuery string) (string, error) {
	player, team, err := s.RecordPick(ctx, teamName, playerQuery)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ *%s* drafted %s (%s, %s)", team, player.Name, player.Position, teamOrFA(player.Team)), nil
}

func (s *DraftService) GetUndoReport(ctx context.Context, teamName string) (string, error) {
	player, team, err := s.UndoPick(ctx, teamName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("↩️ Removed %s from *%s*", player.Name, team), nil
}

func (s *DraftService) GetImportReport(ctx context.Context) (string, error) {
	n, err := s.ImportDraft(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📥 Imported %d picks from Sleeper draft %s", n, s.settings.DraftID), nil
}

func (s *DraftService) GetRefreshReport(ctx context.Context) (string, error) {
	n, err := s.Refresh(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🔄 Player pool refreshed: %d players", n), nil
}

// GetDraftBoardReport summarizes the draft so far and the top recommendation
// for the configured team.
func (s *DraftService) GetDraftBoardReport(ctx context.Context) (string, error) {
	b, err := s.Board(ctx)
	if err != nil {
		return "", fmt.Errorf("building board: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("🏈 *Draft Board*\n\n")
	for i := 0; i < b.League.NumTeams(); i++ {
		sb.WriteString(fmt.Sprintf("*%s*: %d/%d filled, %.1f pts\n",
			b.League.TeamName(i), len(s.settings.Template)-b.League.OpenSlots(i), len(s.settings.Template), b.League.Total(i)))
	}

	if b.League.Full() {
		sb.WriteString("\nAll rosters are complete.\n")
		return sb.String(), nil
	}

	pick, err := s.BestPick(ctx, s.settings.MyTeam)
	if err != nil {
		return "", err
	}
	if pick.Found {
		sb.WriteString(fmt.Sprintf("\n🎯 Next for *%s*: %s (%s), VORP %+.1f\n", pick.Team, pick.Player.Name, pick.Player.Position, pick.VORP))
	}
	return sb.String(), nil
}
