package memory

import (
	"testing"

	"github.com/djones2085/ffp/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Table(t *testing.T) {
	repo := NewRepository()
	assert.Nil(t, repo.GetTable())

	table, err := models.NewPlayerTable([]models.Player{{ID: "1", Position: models.QB}})
	require.NoError(t, err)
	repo.SaveTable(table)
	assert.Same(t, table, repo.GetTable())
}

func TestRepository_Picks(t *testing.T) {
	repo := NewRepository()

	require.NoError(t, repo.AddPick("MyTeam", "a"))
	require.NoError(t, repo.AddPick("MyTeam", "b"))
	require.NoError(t, repo.AddPick("Team1", "c"))
	assert.ErrorIs(t, repo.AddPick("Team1", "a"), ErrAlreadyPicked)

	owner, ok := repo.Owner("c")
	assert.True(t, ok)
	assert.Equal(t, "Team1", owner)

	picks := repo.Picks()
	assert.Equal(t, []string{"a", "b"}, picks["MyTeam"])
	picks["MyTeam"][0] = "mutated"
	assert.Equal(t, "a", repo.Picks()["MyTeam"][0])

	last, ok := repo.RemoveLastPick("MyTeam")
	assert.True(t, ok)
	assert.Equal(t, "b", last)
	_, ok = repo.Owner("b")
	assert.False(t, ok)

	_, ok = repo.RemoveLastPick("Nobody")
	assert.False(t, ok)

	repo.ClearPicks()
	assert.Empty(t, repo.Picks())
}
