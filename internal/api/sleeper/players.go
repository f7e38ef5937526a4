package sleeper

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/djones2085/ffp/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

// GetPlayers joins the player directory with season projections. Players
// outside the draftable positions are dropped, as are inactive players with
// no projection.
func (a *API) GetPlayers(ctx context.Context) ([]models.Player, error) {
	var directory models.SleeperPlayers
	if err := a.client.Get(ctx, "/players/nfl", nil, &directory); err != nil {
		return nil, fmt.Errorf("fetching players: %w", err)
	}

	projections, err := a.GetProjections(ctx)
	if err != nil {
		return nil, err
	}

	return buildPlayers(directory, projections, a.client.Config.Scoring), nil
}

func (a *API) GetProjections(ctx context.Context) (models.SleeperProjections, error) {
	positions := make([]string, len(models.Positions))
	for i, pos := range models.Positions {
		positions[i] = pos.String()
	}
	params := map[string]string{
		"season_type": "regular",
		"position[]":  strings.Join(positions, ","),
	}

	var projections models.SleeperProjections
	endpoint := fmt.Sprintf("/projections/nfl/regular/%s", a.client.Config.Season)
	if err := a.client.Get(ctx, endpoint, params, &projections); err != nil {
		return nil, fmt.Errorf("fetching projections: %w", err)
	}
	return projections, nil
}

// GetDraftPicks returns the picks already made in a Sleeper draft, in pick
// order.
func (a *API) GetDraftPicks(ctx context.Context, draftID string) ([]models.DraftPick, error) {
	var picks []models.SleeperDraftPick
	endpoint := fmt.Sprintf("/draft/%s/picks", draftID)
	if err := a.client.Get(ctx, endpoint, nil, &picks); err != nil {
		return nil, fmt.Errorf("fetching draft picks: %w", err)
	}

	out := make([]models.DraftPick, 0, len(picks))
	for _, p := range picks {
		if p.PlayerID == "" {
			continue
		}
		out = append(out, models.DraftPick{
			PickNo:    p.PickNo,
			DraftSlot: p.DraftSlot,
			PlayerID:  p.PlayerID,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PickNo < out[j].PickNo
	})
	return out, nil
}

func buildPlayers(directory models.SleeperPlayers, projections models.SleeperProjections, scoring string) []models.Player {
	players := make([]models.Player, 0, len(projections))
	for id, sp := range directory {
		pos, ok := getPosition(sp)
		if !ok {
			continue
		}

		stats, projected := projections[id]
		if !projected && !sp.Active {
			continue
		}

		if sp.PlayerID != "" {
			id = sp.PlayerID
		}
		players = append(players, models.Player{
			ID:         id,
			Name:       getPlayerName(sp),
			Position:   pos,
			Team:       sp.Team,
			Projection: stats[scoring],
		})
	}
	return players
}

func getPosition(sp models.SleeperPlayer) (models.Position, bool) {
	candidates := append([]string{sp.Position}, sp.FantasyPositions...)
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if pos, err := models.ParsePosition(c); err == nil {
			return pos, true
		}
	}
	return 0, false
}

func getPlayerName(sp models.SleeperPlayer) string {
	if sp.FullName != "" {
		return sp.FullName
	}
	name := strings.TrimSpace(sp.FirstName + " " + sp.LastName)
	if name == "" {
		return "Unknown"
	}
	return name
}
