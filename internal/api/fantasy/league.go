package fantasy

import (
	"context"

	"github.com/djones2085/ffp/internal/api/sleeper"
	"github.com/djones2085/ffp/internal/models"
)

type API struct {
	sleeperAPI *sleeper.API
}

func NewAPI(sleeperAPI *sleeper.API) *API {
	return &API{sleeperAPI: sleeperAPI}
}

// GetPlayerTable fetches the current pool and freezes it for one run.
func (a *API) GetPlayerTable(ctx context.Context) (*models.PlayerTable, error) {
	players, err := a.sleeperAPI.GetPlayers(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewPlayerTable(players)
}

func (a *API) GetDraftPicks(ctx context.Context, draftID string) ([]models.DraftPick, error) {
	return a.sleeperAPI.GetDraftPicks(ctx, draftID)
}
