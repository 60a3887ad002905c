package memory

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// RoomParticipants is the cached authorization fact for one room: the two
// profile ids allowed to touch it.
type RoomParticipants struct {
	FromProfileId uint
	ToProfileId   uint
}

func (p RoomParticipants) Contains(profileId uint) bool {
	return p.FromProfileId == profileId || p.ToProfileId == profileId
}

// AccessCache keeps room membership lookups off the database on the message
// hot path. Entries expire quickly; membership never changes for a live room,
// so the TTL only bounds memory.
type AccessCache struct {
	cache *cache.Cache
}

func NewAccessCache() *AccessCache {
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &AccessCache{
		cache: c,
	}
}

func (a *AccessCache) Get(roomId uint) (RoomParticipants, bool) {
	if x, found := a.cache.Get(roomKey(roomId)); found {
		return x.(RoomParticipants), true
	}
	return RoomParticipants{}, false
}

func (a *AccessCache) Set(roomId uint, participants RoomParticipants) {
	a.cache.Set(roomKey(roomId), participants, cache.DefaultExpiration)
}

func roomKey(roomId uint) string {
	return strconv.FormatUint(uint64(roomId), 10)
}
