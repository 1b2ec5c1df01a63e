package esports

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kalshme/kalshme/internal/domain"
)

// tickerSegment accepts the last hyphen-delimited piece of an event ticker
// when it looks like a team pairing, e.g. "T1GENG" out of
// "LOLLCK-26JAN21-T1GENG".
var tickerSegment = regexp.MustCompile(`^[A-Z0-9]{4,}$`)

// GroupByEvent turns a flat market list into event-level groups. Groups come
// out in first-seen event-ticker order; within each group markets are sorted
// by title ascending, using a locale-aware compare rather than raw byte
// order.
func GroupByEvent(markets []domain.Market) []domain.EventGroup {
	// Collators carry internal buffers and are not safe for concurrent use,
	// so each call gets its own.
	titleCollator := collate.New(language.English, collate.Loose)

	index := make(map[string]int, len(markets))
	groups := make([]domain.EventGroup, 0, len(markets))

	for _, m := range markets {
		i, seen := index[m.EventTicker]
		if !seen {
			i = len(groups)
			index[m.EventTicker] = i
			groups = append(groups, domain.EventGroup{EventTicker: m.EventTicker})
		}
		groups[i].Markets = append(groups[i].Markets, m)
	}

	for i := range groups {
		g := &groups[i]
		sort.SliceStable(g.Markets, func(a, b int) bool {
			return titleCollator.CompareString(g.Markets[a].Title, g.Markets[b].Title) < 0
		})
		g.EventName = eventDisplayName(*g)
	}

	return groups
}

// eventDisplayName prefers the first non-empty market subtitle in the group.
// Failing that it falls back to the last hyphen-delimited ticker segment when
// that segment is uppercase-alphanumeric and at least 4 characters, else the
// raw ticker. A heuristic only: tickers outside the expected XXX-XXX-XXX
// shape surface as-is.
func eventDisplayName(g domain.EventGroup) string {
	for _, m := range g.Markets {
		if m.Subtitle != "" {
			return m.Subtitle
		}
	}

	if i := strings.LastIndexByte(g.EventTicker, '-'); i >= 0 {
		segment := g.EventTicker[i+1:]
		if tickerSegment.MatchString(segment) {
			return segment
		}
	}
	return g.EventTicker
}
