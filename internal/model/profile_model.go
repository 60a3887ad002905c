package model

import (
	"time"

	"gorm.io/datatypes"
)

type Profile struct {
	Id               uint           `gorm:"primaryKey;autoIncrement"`
	UserId           uint           `gorm:"not null;uniqueIndex"`
	Nickname         string         `gorm:"type:varchar(50);not null"`
	BirthDate        time.Time      `gorm:"type:date;not null"`
	Gender           string         `gorm:"type:varchar(10);not null"`
	Bio              string         `gorm:"type:varchar(500)"`
	Location         string         `gorm:"type:varchar(100)"`
	ImageUrls        datatypes.JSON `gorm:"type:jsonb"`
	Interests        datatypes.JSON `gorm:"type:jsonb"`
	MinAgePreference int            `gorm:"not null;default:18"`
	MaxAgePreference int            `gorm:"not null;default:99"`
	MaxDistance      int            `gorm:"not null;default:50"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
