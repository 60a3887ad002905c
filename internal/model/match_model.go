package model

import "time"

// The composite unique index is the last line of defense against concurrent
// duplicate actions for the same ordered pair; inserts that hit it surface as
// duplicated-key errors for the caller to handle.
type Match struct {
	Id            uint      `gorm:"primaryKey;autoIncrement"`
	FromProfileId uint      `gorm:"not null;uniqueIndex:idx_matches_from_to,priority:1"`
	ToProfileId   uint      `gorm:"not null;uniqueIndex:idx_matches_from_to,priority:2"`
	Action        string    `gorm:"type:varchar(10);not null"`
	IsMatched     bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Match) TableName() string {
	return "matches"
}
