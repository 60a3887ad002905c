package entity

import "time"

type User struct {
	Id           uint
	Email        string
	PasswordHash string
	Name         string
	PhoneNumber  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type FcmToken struct {
	Id        uint
	UserId    uint
	Token     string
	CreatedAt time.Time
}
