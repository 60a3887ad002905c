package model

import "time"

type ChatRoom struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	MatchId   uint      `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ChatRoom) TableName() string {
	return "chat_rooms"
}
