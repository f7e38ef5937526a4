package models

// DraftPick is an already-made selection imported from a draft source.
type DraftPick struct {
	PickNo    int
	DraftSlot int
	PlayerID  string
}

type RankedPlayer struct {
	Rank   int     `json:"rank"`
	Player Player  `json:"player"`
	VORP   float64 `json:"vorp"`
}

type RosterSlotView struct {
	Slot   string  `json:"slot"`
	Player *Player `json:"player,omitempty"`
}

type TeamRosterView struct {
	TeamName string           `json:"team"`
	Slots    []RosterSlotView `json:"slots"`
	Total    float64          `json:"total"`
}

// PickRecommendation is an evaluated pick with the simulated end-of-draft
// rosters. Player is nil when no candidate was eligible.
type PickRecommendation struct {
	Team    string           `json:"team"`
	Found   bool             `json:"found"`
	Player  *Player          `json:"player,omitempty"`
	VORP    float64          `json:"vorp,omitempty"`
	Total   float64          `json:"total,omitempty"`
	Rosters []TeamRosterView `json:"rosters,omitempty"`
}
