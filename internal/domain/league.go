package domain

import "fmt"

// League is one of the LoL esports leagues tracked on the dashboard.
type League string

const (
	LeagueLEC League = "LEC"
	LeagueLCS League = "LCS"
	LeagueLPL League = "LPL"
	LeagueLCK League = "LCK"
)

// Leagues lists every valid league in display order.
func Leagues() []League {
	return []League{LeagueLEC, LeagueLCS, LeagueLPL, LeagueLCK}
}

// ParseLeague validates a raw query-string value against the closed league
// set. This is the only place user input reaches this layer.
func ParseLeague(s string) (League, error) {
	switch League(s) {
	case LeagueLEC, LeagueLCS, LeagueLPL, LeagueLCK:
		return League(s), nil
	}
	return "", fmt.Errorf("%w: must be one of: LEC, LCS, LPL, LCK", ErrInvalidLeague)
}

// EventGroup is a derived, display-only grouping of the markets that share
// an event ticker. Recomputed on every fetch, never persisted.
type EventGroup struct {
	EventTicker string   `json:"event_ticker"`
	EventName   string   `json:"event_name"`
	Markets     []Market `json:"markets"`
}
