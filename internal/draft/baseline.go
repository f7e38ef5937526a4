package draft

import (
	"sort"

	"github.com/djones2085/ffp/internal/models"
)

// Baseline is the replacement-level score for one position: the projection
// of the last starter-quality player given league size and slot demand.
type Baseline struct {
	Points   float64
	PlayerID string
	// Rank is the 0-indexed position of the baseline player in the sorted
	// pool, or -1 when the pool was empty.
	Rank   int
	Demand int
	Empty  bool
}

type Baselines struct {
	Positions map[models.Position]Baseline
	// Flex is computed over the RB/WR/TE union and is only set when the
	// template has flex slots.
	Flex *Baseline
}

// For returns the baseline points used to score a player at pos. Missing
// positions score against 0.
func (b Baselines) For(pos models.Position) float64 {
	if bl, ok := b.Positions[pos]; ok {
		return bl.Points
	}
	return 0
}

// ComputeBaselines derives a replacement level per position from the full
// pool, drafted players included, so the baseline reflects league-wide
// scarcity. A flex-eligible position with no dedicated slots uses the flex
// baseline.
func ComputeBaselines(table *models.PlayerTable, template Template, leagueSize int) Baselines {
	byPos := make(map[models.Position][]models.Player, len(models.Positions))
	var flexPool []models.Player
	for i := 0; i < table.Len(); i++ {
		p := table.At(i)
		byPos[p.Position] = append(byPos[p.Position], p)
		if p.Position.FlexEligible() {
			flexPool = append(flexPool, p)
		}
	}

	out := Baselines{Positions: make(map[models.Position]Baseline, len(models.Positions))}

	flexSlots := template.FlexCount()
	if flexSlots > 0 {
		demand := flexSlots
		for _, pos := range models.Positions {
			if pos.FlexEligible() {
				demand += template.Count(pos)
			}
		}
		flex := baselineAt(flexPool, leagueSize*demand)
		out.Flex = &flex
	}

	for _, pos := range models.Positions {
		count := template.Count(pos)
		if count == 0 && pos.FlexEligible() && out.Flex != nil {
			out.Positions[pos] = *out.Flex
			continue
		}
		out.Positions[pos] = baselineAt(byPos[pos], leagueSize*count)
	}

	return out
}

// baselineAt sorts players by projection descending, ties by ID, and
// returns the player at rank demand-1, clamped into the pool.
func baselineAt(players []models.Player, demand int) Baseline {
	if len(players) == 0 {
		return Baseline{Rank: -1, Demand: demand, Empty: true}
	}

	sorted := make([]models.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Projection != sorted[j].Projection {
			return sorted[i].Projection > sorted[j].Projection
		}
		return sorted[i].ID < sorted[j].ID
	})

	rank := min(max(demand-1, 0), len(sorted)-1)
	return Baseline{
		Points:   sorted[rank].Projection,
		PlayerID: sorted[rank].ID,
		Rank:     rank,
		Demand:   demand,
	}
}
