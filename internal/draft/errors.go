package draft

import "errors"

var (
	ErrNoSlotAvailable = errors.New("no slot available")
	ErrAlreadyDrafted  = errors.New("player already drafted")
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrUnknownTeam     = errors.New("unknown team")
	ErrEmptyTemplate   = errors.New("roster template has no slots")
	ErrNoTeams         = errors.New("league has no teams")
)
