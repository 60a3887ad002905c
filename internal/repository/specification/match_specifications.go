package specification

import "gorm.io/gorm"

// ByOrderedPair pins the single directed row for (from, to).
type ByOrderedPair struct {
	FromProfileID uint
	ToProfileID   uint
}

func (s ByOrderedPair) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("from_profile_id = ? AND to_profile_id = ?", s.FromProfileID, s.ToProfileID)
}

// ByFromProfile filters actions originating from a profile.
type ByFromProfile struct {
	ProfileID uint
}

func (s ByFromProfile) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("from_profile_id = ?", s.ProfileID)
}

// MatchedOnly keeps confirmed rows.
type MatchedOnly struct{}

func (s MatchedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_matched = ?", true)
}

// ByAction filters by action kind.
type ByAction struct {
	Action string
}

func (s ByAction) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("action = ?", s.Action)
}
