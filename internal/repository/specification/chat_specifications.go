package specification

import "gorm.io/gorm"

// ByMatchID pins the unique room of a match.
type ByMatchID struct {
	MatchID uint
}

func (s ByMatchID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("match_id = ?", s.MatchID)
}

// RoomsForProfile selects rooms whose underlying match has the profile as
// either side.
type RoomsForProfile struct {
	ProfileID uint
}

func (s RoomsForProfile) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN matches ON matches.id = chat_rooms.match_id").
		Where("matches.from_profile_id = ? OR matches.to_profile_id = ?", s.ProfileID, s.ProfileID)
}

// ByChatRoomID filters messages of one room.
type ByChatRoomID struct {
	ChatRoomID uint
}

func (s ByChatRoomID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_room_id = ?", s.ChatRoomID)
}
