package draft

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/djones2085/ffp/internal/models"
)

type SlotKind int

const (
	SlotPosition SlotKind = iota
	SlotFlex
	SlotBench
)

// SlotDef describes which positions a roster slot accepts.
type SlotDef struct {
	Kind     SlotKind
	Position models.Position
}

func PositionSlot(pos models.Position) SlotDef {
	return SlotDef{Kind: SlotPosition, Position: pos}
}

func FlexSlot() SlotDef {
	return SlotDef{Kind: SlotFlex}
}

func BenchSlot() SlotDef {
	return SlotDef{Kind: SlotBench}
}

func (d SlotDef) Accepts(pos models.Position) bool {
	switch d.Kind {
	case SlotPosition:
		return d.Position == pos
	case SlotFlex:
		return pos.FlexEligible()
	case SlotBench:
		return pos.Valid()
	}
	return false
}

func (d SlotDef) String() string {
	switch d.Kind {
	case SlotFlex:
		return "FLEX"
	case SlotBench:
		return "BN"
	}
	return d.Position.String()
}

// Template is the ordered slot layout shared by every team in a league.
type Template []SlotDef

// ParseTemplate accepts either a slot list ("QB,RB,RB,FLEX,BN") or counted
// entries ("QB:1,RB:2,FLEX:1,BN:5"). Slot order is preserved.
func ParseTemplate(s string) (Template, error) {
	var t Template
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		name, count := field, 1
		if i := strings.IndexAny(field, ":="); i >= 0 {
			name = strings.TrimSpace(field[:i])
			n, err := strconv.Atoi(strings.TrimSpace(field[i+1:]))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid slot count in %q", field)
			}
			count = n
		}

		def, err := parseSlot(name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < count; i++ {
			t = append(t, def)
		}
	}

	if len(t) == 0 {
		return nil, ErrEmptyTemplate
	}
	return t, nil
}

func parseSlot(name string) (SlotDef, error) {
	switch strings.ToUpper(name) {
	case "FLEX", "W/R/T", "RB/WR/TE":
		return FlexSlot(), nil
	case "BN", "BENCH":
		return BenchSlot(), nil
	}
	pos, err := models.ParsePosition(name)
	if err != nil {
		return SlotDef{}, fmt.Errorf("parsing roster slot: %w", err)
	}
	return PositionSlot(pos), nil
}

// Count returns the number of exact-position slots for pos.
func (t Template) Count(pos models.Position) int {
	n := 0
	for _, d := range t {
		if d.Kind == SlotPosition && d.Position == pos {
			n++
		}
	}
	return n
}

func (t Template) FlexCount() int {
	n := 0
	for _, d := range t {
		if d.Kind == SlotFlex {
			n++
		}
	}
	return n
}

func (t Template) String() string {
	names := make([]string, len(t))
	for i, d := range t {
		names[i] = d.String()
	}
	return strings.Join(names, ",")
}
