package league

import (
	"testing"
	"time"

	"github.com/kalshme/kalshme/internal/domain"
)

// fakeClock is a manually advanced clock for deterministic expiry tests.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestCache_HitWithinTTL(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := New(5*time.Minute, clock.now)

	markets := []domain.Market{{Ticker: "KXLCK-1"}}
	c.Set(domain.LeagueLCK, markets)

	// Exactly at the TTL boundary is still a hit.
	clock.advance(5 * time.Minute)

	got, ok := c.Get(domain.LeagueLCK)
	if !ok {
		t.Fatal("expected cache hit within TTL")
	}
	if len(got) != 1 || got[0].Ticker != "KXLCK-1" {
		t.Errorf("unexpected cached markets: %+v", got)
	}
}

func TestCache_MissPastTTLRemovesEntry(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := New(5*time.Minute, clock.now)

	c.Set(domain.LeagueLCK, []domain.Market{{Ticker: "KXLCK-1"}})
	clock.advance(5*time.Minute + time.Millisecond)

	if _, ok := c.Get(domain.LeagueLCK); ok {
		t.Fatal("expected cache miss past TTL")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not removed, Len = %d", c.Len())
	}
}

func TestCache_MissOnEmpty(t *testing.T) {
	c := New(5*time.Minute, nil)

	if _, ok := c.Get(domain.LeagueLEC); ok {
		t.Error("expected miss on empty cache")
	}
}

func TestCache_OverwriteRestartsTTL(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := New(5*time.Minute, clock.now)

	c.Set(domain.LeagueLPL, []domain.Market{{Ticker: "OLD"}})
	clock.advance(4 * time.Minute)
	c.Set(domain.LeagueLPL, []domain.Market{{Ticker: "NEW"}})
	clock.advance(4 * time.Minute)

	got, ok := c.Get(domain.LeagueLPL)
	if !ok {
		t.Fatal("expected hit: second write restarted the TTL")
	}
	if got[0].Ticker != "NEW" {
		t.Errorf("got %q, want last write to win", got[0].Ticker)
	}
}

func TestCache_LeaguesAreIndependent(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := New(5*time.Minute, clock.now)

	c.Set(domain.LeagueLCK, []domain.Market{{Ticker: "A"}})

	if _, ok := c.Get(domain.LeagueLEC); ok {
		t.Error("LEC should miss when only LCK was written")
	}
	if _, ok := c.Get(domain.LeagueLCK); !ok {
		t.Error("LCK should hit")
	}
}
