package model

import "time"

type User struct {
	Id           uint      `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	PhoneNumber  string    `gorm:"type:varchar(30)"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
