package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	for input, want := range map[string]Position{
		"qb":   QB,
		" RB ": RB,
		"PK":   K,
		"D/ST": DEF,
		"DST":  DEF,
	} {
		got, err := ParsePosition(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParsePosition("LB")
	assert.ErrorIs(t, err, ErrUnknownPosition)
}

func TestPosition_FlexEligible(t *testing.T) {
	assert.True(t, RB.FlexEligible())
	assert.True(t, TE.FlexEligible())
	assert.False(t, QB.FlexEligible())
	assert.False(t, DEF.FlexEligible())
}

func TestPosition_JSON(t *testing.T) {
	b, err := json.Marshal(Player{ID: "1", Name: "A", Position: WR})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","name":"A","position":"WR","projection":0}`, string(b))

	var p Player
	require.NoError(t, json.Unmarshal([]byte(`{"id":"2","position":"DST"}`), &p))
	assert.Equal(t, DEF, p.Position)
}

func TestNewPlayerTable(t *testing.T) {
	table, err := NewPlayerTable([]Player{
		{ID: "b", Position: RB, Projection: 5},
		{ID: "a", Position: QB, Projection: 9},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "a", table.At(0).ID)
	i, ok := table.Index("b")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = table.Get("zzz")
	assert.False(t, ok)
	assert.False(t, table.LastUpdated.IsZero())

	_, err = NewPlayerTable([]Player{{ID: "a", Position: QB}, {ID: "a", Position: RB}})
	assert.ErrorIs(t, err, ErrDuplicatePlayer)

	_, err = NewPlayerTable([]Player{{ID: "x"}})
	assert.ErrorIs(t, err, ErrUnknownPosition)
}
