package model

import "time"

type FcmToken struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	UserId    uint      `gorm:"not null;index"`
	Token     string    `gorm:"type:varchar(512);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (FcmToken) TableName() string {
	return "fcm_tokens"
}
