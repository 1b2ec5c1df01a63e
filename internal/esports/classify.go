// Package esports classifies exchange markets into LoL esports leagues and
// groups them by event for display.
package esports

import (
	"regexp"

	"github.com/kalshme/kalshme/internal/domain"
)

// leaguePatterns matches a league code as a whole word, case-insensitively,
// in a market's title or subtitle. The patterns are not mutually exclusive:
// a market can in principle match several leagues or none. Markets matching
// none are simply dropped from the classified view.
var leaguePatterns = map[domain.League]*regexp.Regexp{
	domain.LeagueLEC: regexp.MustCompile(`(?i)\bLEC\b`),
	domain.LeagueLCS: regexp.MustCompile(`(?i)\bLCS\b`),
	domain.LeagueLPL: regexp.MustCompile(`(?i)\bLPL\b`),
	domain.LeagueLCK: regexp.MustCompile(`(?i)\bLCK\b`),
}

// MatchesLeague reports whether the market's title or subtitle mentions the
// league.
func MatchesLeague(m domain.Market, league domain.League) bool {
	pattern, ok := leaguePatterns[league]
	if !ok {
		return false
	}
	return pattern.MatchString(m.Title) || pattern.MatchString(m.Subtitle)
}

// FilterByLeague returns the markets matching one league, preserving input
// order.
func FilterByLeague(markets []domain.Market, league domain.League) []domain.Market {
	matched := make([]domain.Market, 0, len(markets))
	for _, m := range markets {
		if MatchesLeague(m, league) {
			matched = append(matched, m)
		}
	}
	return matched
}

// Classify partitions markets across every league. Input order is preserved
// within each league's list.
func Classify(markets []domain.Market) map[domain.League][]domain.Market {
	out := make(map[domain.League][]domain.Market, len(leaguePatterns))
	for _, league := range domain.Leagues() {
		out[league] = FilterByLeague(markets, league)
	}
	return out
}
