package draft

import (
	"sort"

	"github.com/djones2085/ffp/internal/models"
)

// Scores holds VORP per player, indexed like the PlayerTable, plus the
// table order sorted by VORP descending with ties broken by ID.
type Scores struct {
	table  *models.PlayerTable
	vorp   []float64
	ranked []int
}

func ComputeScores(table *models.PlayerTable, baselines Baselines) *Scores {
	vorp := make([]float64, table.Len())
	ranked := make([]int, table.Len())
	for i := range vorp {
		p := table.At(i)
		vorp[i] = p.Projection - baselines.For(p.Position)
		ranked[i] = i
	}

	// The table is already ID-ordered, so a stable sort keeps ID ties.
	sort.SliceStable(ranked, func(a, b int) bool {
		return vorp[ranked[a]] > vorp[ranked[b]]
	})

	return &Scores{table: table, vorp: vorp, ranked: ranked}
}

func (s *Scores) At(player int) float64 {
	return s.vorp[player]
}

func (s *Scores) Get(id string) (float64, bool) {
	i, ok := s.table.Index(id)
	if !ok {
		return 0, false
	}
	return s.vorp[i], true
}

// Ranked returns player indices by VORP descending. The slice is shared and
// must not be modified.
func (s *Scores) Ranked() []int {
	return s.ranked
}

// ByID returns VORP keyed by player ID.
func (s *Scores) ByID() map[string]float64 {
	out := make(map[string]float64, len(s.vorp))
	for i, v := range s.vorp {
		out[s.table.At(i).ID] = v
	}
	return out
}

// Top returns up to n ranked players, skipping any the filter rejects. A nil
// filter keeps everyone.
func (s *Scores) Top(n int, keep func(player int) bool) []models.RankedPlayer {
	var out []models.RankedPlayer
	for _, i := range s.ranked {
		if n > 0 && len(out) >= n {
			break
		}
		if keep != nil && !keep(i) {
			continue
		}
		out = append(out, models.RankedPlayer{
			Rank:   len(out) + 1,
			Player: s.table.At(i),
			VORP:   s.vorp[i],
		})
	}
	return out
}
