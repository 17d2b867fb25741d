package refcache

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tibaulingg/boxleague/internal/league"
)

// defaultTTL keeps roster and season reads off the database between syncs.
const defaultTTL = 5 * time.Minute

// Source is the backing store the cache reads through to.
type Source interface {
	GetPlayers(boxID string) ([]league.PlayerRecord, error)
	GetSeasons() ([]league.SeasonRecord, error)
	GetMatches(q league.MatchQuery) ([]*league.MatchRecord, error)
}

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e entry[T]) fresh(now time.Time) bool {
	return now.Before(e.expiresAt)
}

// Cache is a read-through cache for reference data: rosters and seasons, the
// slow-moving inputs every standings and analytics computation needs. Matches
// change on every result entry and are always read from the source.
type Cache struct {
	source Source
	ttl    time.Duration
	now    func() time.Time

	mu      sync.RWMutex
	players map[string]entry[[]league.PlayerRecord] // keyed by boxID, "" = all
	seasons *entry[[]league.SeasonRecord]
}

// New creates a Cache over the given source.
func New(source Source) *Cache {
	return &Cache{
		source:  source,
		ttl:     defaultTTL,
		now:     time.Now,
		players: make(map[string]entry[[]league.PlayerRecord]),
	}
}

// Players returns the roster for a box (all players when boxID is empty),
// from cache when fresh. forceRefresh bypasses and repopulates the cache.
func (c *Cache) Players(forceRefresh bool, boxID string) ([]league.PlayerRecord, error) {
	if !forceRefresh {
		c.mu.RLock()
		cached, ok := c.players[boxID]
		c.mu.RUnlock()
		if ok && cached.fresh(c.now()) {
			return cached.value, nil
		}
	}

	players, err := c.source.GetPlayers(boxID)
	if err != nil {
		return nil, err
	}
	log.Debug("Refreshed player cache", "boxID", boxID, "count", len(players))

	c.mu.Lock()
	c.players[boxID] = entry[[]league.PlayerRecord]{value: players, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return players, nil
}

// Seasons returns all seasons, from cache when fresh.
func (c *Cache) Seasons(forceRefresh bool) ([]league.SeasonRecord, error) {
	if !forceRefresh {
		c.mu.RLock()
		cached := c.seasons
		c.mu.RUnlock()
		if cached != nil && cached.fresh(c.now()) {
			return cached.value, nil
		}
	}

	seasons, err := c.source.GetSeasons()
	if err != nil {
		return nil, err
	}
	log.Debug("Refreshed season cache", "count", len(seasons))

	c.mu.Lock()
	c.seasons = &entry[[]league.SeasonRecord]{value: seasons, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return seasons, nil
}

// Matches always delegates to the source; results change too often to cache.
func (c *Cache) Matches(q league.MatchQuery) ([]*league.MatchRecord, error) {
	return c.source.GetMatches(q)
}

// Invalidate drops everything cached. Called after an upstream sync rewrites
// the reference data.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.players = make(map[string]entry[[]league.PlayerRecord])
	c.seasons = nil
}
