package draft

import (
	"fmt"
	"strings"

	"github.com/djones2085/ffp/internal/models"
)

const emptySlot = -1

// League is the mutable roster state of one simulation run. Occupancy is a
// flat teams×slots array of player indices into the PlayerTable, so Clone and
// Restore are plain slice copies.
type League struct {
	table    *models.PlayerTable
	template Template
	teams    []string
	occ      []int
	drafted  []bool
}

type RosterSlot struct {
	Def      SlotDef
	PlayerID string
}

// TeamRoster is a read-only snapshot of one team's slots.
type TeamRoster struct {
	Team  string
	Slots []RosterSlot
	Total float64
}

func NewLeague(table *models.PlayerTable, template Template, teams []string) (*League, error) {
	if len(template) == 0 {
		return nil, ErrEmptyTemplate
	}
	if len(teams) == 0 {
		return nil, ErrNoTeams
	}

	seen := make(map[string]bool, len(teams))
	for _, name := range teams {
		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("duplicate team name %q", name)
		}
		seen[key] = true
	}

	occ := make([]int, len(teams)*len(template))
	for i := range occ {
		occ[i] = emptySlot
	}

	return &League{
		table:    table,
		template: template,
		teams:    append([]string(nil), teams...),
		occ:      occ,
		drafted:  make([]bool, table.Len()),
	}, nil
}

func (l *League) Table() *models.PlayerTable {
	return l.table
}

func (l *League) Template() Template {
	return l.template
}

func (l *League) NumTeams() int {
	return len(l.teams)
}

func (l *League) TeamName(team int) string {
	return l.teams[team]
}

func (l *League) Teams() []string {
	return append([]string(nil), l.teams...)
}

// TeamIndex looks a team up by name, ignoring case.
func (l *League) TeamIndex(name string) (int, bool) {
	for i, t := range l.teams {
		if strings.EqualFold(t, name) {
			return i, true
		}
	}
	return 0, false
}

// Clone returns an independent copy. The PlayerTable and template are
// shared because they are never mutated.
func (l *League) Clone() *League {
	return &League{
		table:    l.table,
		template: l.template,
		teams:    l.teams,
		occ:      append([]int(nil), l.occ...),
		drafted:  append([]bool(nil), l.drafted...),
	}
}

// Restore overwrites l with the state of src without allocating. Both
// leagues must come from the same NewLeague call or its clones.
func (l *League) Restore(src *League) {
	copy(l.occ, src.occ)
	copy(l.drafted, src.drafted)
}

func (l *League) Drafted(player int) bool {
	return l.drafted[player]
}

// Draft assigns a player by ID to a team, used to replay picks that were
// already made before evaluation.
func (l *League) Draft(team int, playerID string) (int, error) {
	player, ok := l.table.Index(playerID)
	if !ok {
		return emptySlot, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	return l.Assign(team, player)
}

// Assign places a player in the most specific open slot on the team: an
// exact-position slot first, then the lowest flex slot that accepts the
// position, then the lowest bench slot. It returns the slot index.
func (l *League) Assign(team, player int) (int, error) {
	if team < 0 || team >= len(l.teams) {
		return emptySlot, fmt.Errorf("%w: %d", ErrUnknownTeam, team)
	}
	if player < 0 || player >= l.table.Len() {
		return emptySlot, fmt.Errorf("%w: index %d", ErrUnknownPlayer, player)
	}
	if l.drafted[player] {
		return emptySlot, fmt.Errorf("%w: %s", ErrAlreadyDrafted, l.table.At(player).ID)
	}

	slot := l.slotFor(team, l.table.At(player).Position)
	if slot == emptySlot {
		return emptySlot, fmt.Errorf("%w: %s on %s", ErrNoSlotAvailable, l.table.At(player).ID, l.teams[team])
	}

	l.occ[team*len(l.template)+slot] = player
	l.drafted[player] = true
	return slot, nil
}

// Release empties the slot holding player on team and returns it to the pool.
func (l *League) Release(team, player int) bool {
	base := team * len(l.template)
	for s := range l.template {
		if l.occ[base+s] == player {
			l.occ[base+s] = emptySlot
			l.drafted[player] = false
			return true
		}
	}
	return false
}

func (l *League) slotFor(team int, pos models.Position) int {
	base := team * len(l.template)
	flex, bench := emptySlot, emptySlot
	for s, def := range l.template {
		if l.occ[base+s] != emptySlot {
			continue
		}
		switch def.Kind {
		case SlotPosition:
			if def.Position == pos {
				return s
			}
		case SlotFlex:
			if flex == emptySlot && pos.FlexEligible() {
				flex = s
			}
		case SlotBench:
			if bench == emptySlot {
				bench = s
			}
		}
	}
	if flex != emptySlot {
		return flex
	}
	return bench
}

// CanAccept reports whether the team has an open slot for the position.
func (l *League) CanAccept(team int, pos models.Position) bool {
	return l.slotFor(team, pos) != emptySlot
}

const numPositions = int(models.DEF) + 1

// openKinds summarizes a team's open slots.
type openKinds struct {
	exact    [numPositions]bool
	exactAny bool
	flex     bool
	bench    bool
	any      bool
}

func (l *League) open(team int) openKinds {
	var o openKinds
	base := team * len(l.template)
	for s, def := range l.template {
		if l.occ[base+s] != emptySlot {
			continue
		}
		o.any = true
		switch def.Kind {
		case SlotPosition:
			o.exact[def.Position] = true
			o.exactAny = true
		case SlotFlex:
			o.flex = true
		case SlotBench:
			o.bench = true
		}
	}
	return o
}

func (o openKinds) starter() bool {
	return o.flex || o.exactAny
}

func (o openKinds) accepts(pos models.Position) bool {
	return o.bench || o.exact[pos] || (o.flex && pos.FlexEligible())
}

func (l *League) OpenSlots(team int) int {
	n := 0
	base := team * len(l.template)
	for s := range l.template {
		if l.occ[base+s] == emptySlot {
			n++
		}
	}
	return n
}

func (l *League) Full() bool {
	for _, p := range l.occ {
		if p == emptySlot {
			return false
		}
	}
	return true
}

// Total sums the projections of every player on the team.
func (l *League) Total(team int) float64 {
	total := 0.0
	base := team * len(l.template)
	for s := range l.template {
		if p := l.occ[base+s]; p != emptySlot {
			total += l.table.At(p).Projection
		}
	}
	return total
}

// Players returns the arena indices held by the team in slot order.
func (l *League) Players(team int) []int {
	var out []int
	base := team * len(l.template)
	for s := range l.template {
		if p := l.occ[base+s]; p != emptySlot {
			out = append(out, p)
		}
	}
	return out
}

func (l *League) Roster(team int) TeamRoster {
	r := TeamRoster{
		Team:  l.teams[team],
		Slots: make([]RosterSlot, len(l.template)),
		Total: l.Total(team),
	}
	base := team * len(l.template)
	for s, def := range l.template {
		r.Slots[s].Def = def
		if p := l.occ[base+s]; p != emptySlot {
			r.Slots[s].PlayerID = l.table.At(p).ID
		}
	}
	return r
}

func (l *League) Rosters() []TeamRoster {
	out := make([]TeamRoster, len(l.teams))
	for i := range l.teams {
		out[i] = l.Roster(i)
	}
	return out
}
