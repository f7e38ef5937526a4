package models

type SleeperPlayer struct {
	PlayerID         string   `json:"player_id"`
	FullName         string   `json:"full_name"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Position         string   `json:"position"`
	FantasyPositions []string `json:"fantasy_positions"`
	Team             string   `json:"team"`
	Active           bool     `json:"active"`
}

// SleeperPlayers is keyed by Sleeper player ID. Team defenses use the team
// abbreviation as their ID.
type SleeperPlayers map[string]SleeperPlayer

// SleeperProjections maps player ID to projected stat totals, including the
// scoring-format point totals (pts_ppr, pts_half_ppr, pts_std).
type SleeperProjections map[string]map[string]float64

type SleeperDraftPick struct {
	Round     int                 `json:"round"`
	PickNo    int                 `json:"pick_no"`
	DraftSlot int                 `json:"draft_slot"`
	RosterID  int                 `json:"roster_id"`
	PlayerID  string              `json:"player_id"`
	PickedBy  string              `json:"picked_by"`
	Metadata  SleeperPickMetadata `json:"metadata"`
}

type SleeperPickMetadata struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
}
