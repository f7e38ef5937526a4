package draft

import (
	"fmt"
	"testing"

	"github.com/djones2085/ffp/internal/models"
	"github.com/stretchr/testify/require"
)

func player(id string, pos models.Position, points float64) models.Player {
	return models.Player{ID: id, Name: "Player " + id, Position: pos, Projection: points}
}

func mustTable(t *testing.T, players ...models.Player) *models.PlayerTable {
	t.Helper()
	table, err := models.NewPlayerTable(players)
	require.NoError(t, err)
	return table
}

func mustTemplate(t *testing.T, s string) Template {
	t.Helper()
	tmpl, err := ParseTemplate(s)
	require.NoError(t, err)
	return tmpl
}

func mustLeague(t *testing.T, table *models.PlayerTable, tmpl Template, teams ...string) *League {
	t.Helper()
	l, err := NewLeague(table, tmpl, teams)
	require.NoError(t, err)
	return l
}

func index(t *testing.T, table *models.PlayerTable, id string) int {
	t.Helper()
	i, ok := table.Index(id)
	require.True(t, ok, "player %s not in table", id)
	return i
}

// syntheticPool builds a deterministic pool with descending projections per
// position so larger simulations have a known shape.
func syntheticPool(perPosition int) []models.Player {
	var players []models.Player
	for _, pos := range models.Positions {
		for i := 0; i < perPosition; i++ {
			points := float64(300 - i*7 - int(pos)*3)
			players = append(players, player(fmt.Sprintf("%s%02d", pos, i), pos, points))
		}
	}
	return players
}
