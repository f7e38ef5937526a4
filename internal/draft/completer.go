package draft

import (
	"fmt"
	"strings"
)

// Order is the team order used within each simulated round.
type Order int

const (
	OrderFixed Order = iota
	OrderSnake
)

func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fixed", "linear":
		return OrderFixed, nil
	case "snake":
		return OrderSnake, nil
	}
	return OrderFixed, fmt.Errorf("unknown draft order %q", s)
}

func (o Order) String() string {
	if o == OrderSnake {
		return "snake"
	}
	return "fixed"
}

// Completer greedily fills every open slot in a league from the undrafted
// pool, best VORP first.
type Completer struct {
	scores *Scores
	order  Order
}

func NewCompleter(scores *Scores, order Order) *Completer {
	return &Completer{scores: scores, order: order}
}

// Complete drafts for every team, round by round, until no team can make a
// pick. Each team takes the highest-VORP undrafted player that fits one of
// its open slots. Empty slots may remain when the pool runs dry. It returns
// the number of picks made.
func (c *Completer) Complete(l *League) int {
	n := l.NumTeams()
	ranked := c.scores.Ranked()

	// The set of players a team can take only shrinks, so each team's scan
	// position never has to move backwards.
	cursors := make([]int, n)
	stuck := make([]bool, n)

	picks := 0
	for round := 0; ; round++ {
		picked := false
		for k := 0; k < n; k++ {
			team := k
			if c.order == OrderSnake && round%2 == 1 {
				team = n - 1 - k
			}
			if stuck[team] {
				continue
			}

			if !c.pickFor(l, team, ranked, &cursors[team]) {
				stuck[team] = true
				continue
			}
			picked = true
			picks++
		}
		if !picked {
			return picks
		}
	}
}

func (c *Completer) pickFor(l *League, team int, ranked []int, cursor *int) bool {
	open := l.open(team)
	if !open.any {
		return false
	}

	for ; *cursor < len(ranked); *cursor++ {
		p := ranked[*cursor]
		if l.drafted[p] || !open.accepts(l.table.At(p).Position) {
			continue
		}
		if _, err := l.Assign(team, p); err != nil {
			continue
		}
		*cursor++
		return true
	}
	return false
}
