package model

import "time"

type ChatMessage struct {
	Id              uint      `gorm:"primaryKey;autoIncrement"`
	ChatRoomId      uint      `gorm:"not null;index:idx_chat_room_created,priority:1"`
	SenderProfileId uint      `gorm:"not null"`
	Content         string    `gorm:"type:varchar(2000);not null"`
	Type            string    `gorm:"type:varchar(20);not null;default:'TEXT'"`
	IsRead          bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index:idx_chat_room_created,priority:2"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
