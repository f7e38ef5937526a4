package draft

import (
	"testing"

	"github.com/djones2085/ffp/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate_List(t *testing.T) {
	tmpl, err := ParseTemplate("QB, RB, RB, WR, FLEX, D/ST, BN")
	require.NoError(t, err)

	assert.Equal(t, "QB,RB,RB,WR,FLEX,DEF,BN", tmpl.String())
	assert.Equal(t, 2, tmpl.Count(models.RB))
	assert.Equal(t, 1, tmpl.Count(models.DEF))
	assert.Equal(t, 1, tmpl.FlexCount())
}

func TestParseTemplate_Counted(t *testing.T) {
	tmpl, err := ParseTemplate("QB:1,RB:2,WR=2,TE:1,FLEX:2,K:1,DEF:1,BENCH:5")
	require.NoError(t, err)

	assert.Len(t, tmpl, 15)
	assert.Equal(t, 2, tmpl.FlexCount())
	assert.Equal(t, BenchSlot(), tmpl[len(tmpl)-1])
}

func TestParseTemplate_Errors(t *testing.T) {
	_, err := ParseTemplate("")
	assert.ErrorIs(t, err, ErrEmptyTemplate)

	_, err = ParseTemplate("QB:0")
	assert.ErrorIs(t, err, ErrEmptyTemplate)

	_, err = ParseTemplate("QB,LB")
	assert.ErrorIs(t, err, models.ErrUnknownPosition)

	_, err = ParseTemplate("RB:two")
	assert.Error(t, err)
}

func TestSlotDef_Accepts(t *testing.T) {
	assert.True(t, PositionSlot(models.QB).Accepts(models.QB))
	assert.False(t, PositionSlot(models.QB).Accepts(models.RB))

	for _, pos := range []models.Position{models.RB, models.WR, models.TE} {
		assert.True(t, FlexSlot().Accepts(pos), pos.String())
	}
	assert.False(t, FlexSlot().Accepts(models.QB))
	assert.False(t, FlexSlot().Accepts(models.K))

	for _, pos := range models.Positions {
		assert.True(t, BenchSlot().Accepts(pos), pos.String())
	}
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("Snake")
	require.NoError(t, err)
	assert.Equal(t, OrderSnake, o)

	o, err = ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, OrderFixed, o)

	_, err = ParseOrder("auction")
	assert.Error(t, err)
}
