package cache

import (
	"fmt"
	"time"

	"github.com/ReneKroon/ttlcache"
)

// ActiveGames remembers the game a player is currently playing. Entries
// expire after a period of inactivity.
type ActiveGames struct {
	cache *ttlcache.Cache
}

func NewActiveGames(ttl time.Duration) *ActiveGames {
	cache := ttlcache.NewCache()
	cache.SetTTL(ttl)

	return &ActiveGames{cache}
}

func (ag *ActiveGames) makeKey(playerID string) string {
	return fmt.Sprintf("player:%v", playerID)
}

func (ag *ActiveGames) Get(playerID string) (string, bool) {
	if gameID, ok := ag.cache.Get(ag.makeKey(playerID)); ok {
		if gameID, ok := gameID.(string); ok {
			return gameID, true
		}
	}

	return "", false
}

func (ag *ActiveGames) Set(playerID, gameID string) {
	ag.cache.Set(ag.makeKey(playerID), gameID)
}

// Remove forgets the player's game only if it's still the one given.
func (ag *ActiveGames) Remove(playerID, gameID string) bool {
	if current, ok := ag.Get(playerID); !ok || current != gameID {
		return false
	}

	return ag.cache.Remove(ag.makeKey(playerID))
}

func (ag *ActiveGames) Len() int {
	return ag.cache.Count()
}

func (ag *ActiveGames) Close() {
	ag.cache.Close()
}
