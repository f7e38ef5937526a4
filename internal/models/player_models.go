package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrUnknownPosition = errors.New("unknown position")
	ErrDuplicatePlayer = errors.New("duplicate player id")
)

// Position is a primary roster position. The zero value is invalid.
type Position int

const (
	QB Position = iota + 1
	RB
	WR
	TE
	K
	DEF
)

// Positions lists every valid position in display order.
var Positions = []Position{QB, RB, WR, TE, K, DEF}

var positionNames = map[Position]string{
	QB: "QB", RB: "RB", WR: "WR", TE: "TE", K: "K", DEF: "DEF",
}

var positionAliases = map[string]Position{
	"QB":   QB,
	"RB":   RB,
	"WR":   WR,
	"TE":   TE,
	"K":    K,
	"PK":   K,
	"DEF":  DEF,
	"DST":  DEF,
	"D/ST": DEF,
}

func ParsePosition(s string) (Position, error) {
	pos, ok := positionAliases[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPosition, s)
	}
	return pos, nil
}

func (p Position) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return "Unknown"
}

func (p Position) Valid() bool {
	_, ok := positionNames[p]
	return ok
}

func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	pos, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = pos
	return nil
}

// FlexEligible reports whether the position may fill a FLEX slot.
func (p Position) FlexEligible() bool {
	return p == RB || p == WR || p == TE
}

type Player struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Position   Position `json:"position"`
	Team       string   `json:"team,omitempty"`
	Projection float64  `json:"projection"`
}

// PlayerTable is an immutable snapshot of the candidate pool. A player's
// index in the table is its arena index for the whole run.
type PlayerTable struct {
	players     []Player
	index       map[string]int
	LastUpdated time.Time
}

// NewPlayerTable copies players into a table ordered by ID.
func NewPlayerTable(players []Player) (*PlayerTable, error) {
	sorted := make([]Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	index := make(map[string]int, len(sorted))
	for i, p := range sorted {
		if !p.Position.Valid() {
			return nil, fmt.Errorf("player %s: %w", p.ID, ErrUnknownPosition)
		}
		if _, ok := index[p.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.ID)
		}
		index[p.ID] = i
	}

	return &PlayerTable{
		players:     sorted,
		index:       index,
		LastUpdated: time.Now(),
	}, nil
}

func (t *PlayerTable) Len() int {
	return len(t.players)
}

func (t *PlayerTable) At(i int) Player {
	return t.players[i]
}

func (t *PlayerTable) Index(id string) (int, bool) {
	i, ok := t.index[id]
	return i, ok
}

func (t *PlayerTable) Get(id string) (Player, bool) {
	i, ok := t.index[id]
	if !ok {
		return Player{}, false
	}
	return t.players[i], true
}

// Players returns a copy of the table contents.
func (t *PlayerTable) Players() []Player {
	out := make([]Player, len(t.players))
	copy(out, t.players)
	return out
}
