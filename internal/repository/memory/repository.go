package memory

import (
	"errors"
	"sync"

	"github.com/djones2085/ffp/internal/models"
)

var ErrAlreadyPicked = errors.New("player already picked")

// Repository keeps the current player snapshot and the picks recorded so far.
type Repository struct {
	table *models.PlayerTable
	picks map[string][]string
	owner map[string]string
	mu    sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{
		picks: make(map[string][]string),
		owner: make(map[string]string),
	}
}

func (r *Repository) SaveTable(table *models.PlayerTable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table = table
}

func (r *Repository) GetTable() *models.PlayerTable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table
}

func (r *Repository) AddPick(team, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.owner[playerID]; ok {
		return ErrAlreadyPicked
	}
	r.owner[playerID] = team
	r.picks[team] = append(r.picks[team], playerID)
	return nil
}

// RemoveLastPick undoes the team's most recent pick.
func (r *Repository) RemoveLastPick(team string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.picks[team]
	if len(ids) == 0 {
		return "", false
	}
	last := ids[len(ids)-1]
	r.picks[team] = ids[:len(ids)-1]
	delete(r.owner, last)
	return last, true
}

func (r *Repository) Owner(playerID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	team, ok := r.owner[playerID]
	return team, ok
}

// Picks returns a copy of every team's picks in the order they were made.
func (r *Repository) Picks() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]string, len(r.picks))
	for team, ids := range r.picks {
		out[team] = append([]string(nil), ids...)
	}
	return out
}

func (r *Repository) ClearPicks() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.picks = make(map[string][]string)
	r.owner = make(map[string]string)
}
