package dto

import (
	"time"

	"dating-app-be/internal/entity"
)

type CreateProfileRequest struct {
	Nickname  string    `json:"nickname" validate:"required,max=50"`
	BirthDate time.Time `json:"birthDate" validate:"required"`
	Gender    string    `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	Bio       string    `json:"bio" validate:"omitempty,max=500"`
	Location  string    `json:"location" validate:"omitempty,max=100"`
}

// UpdateProfileRequest carries partial updates; nil fields are left untouched.
type UpdateProfileRequest struct {
	Nickname         *string `json:"nickname" validate:"omitempty,max=50"`
	Bio              *string `json:"bio" validate:"omitempty,max=500"`
	Location         *string `json:"location" validate:"omitempty,max=100"`
	MinAgePreference *int    `json:"minAgePreference" validate:"omitempty,gte=18,lte=99"`
	MaxAgePreference *int    `json:"maxAgePreference" validate:"omitempty,gte=18,lte=99"`
	MaxDistance      *int    `json:"maxDistance" validate:"omitempty,gte=1,lte=500"`
}

type UpdateImagesRequest struct {
	ImageUrls []string `json:"imageUrls" validate:"required,max=9,dive,url"`
}

type UpdateInterestsRequest struct {
	Interests []string `json:"interests" validate:"required,max=20,dive,max=50"`
}

type ProfileResponse struct {
	Id               uint     `json:"id"`
	UserId           uint     `json:"userId"`
	Nickname         string   `json:"nickname"`
	Age              int      `json:"age"`
	Gender           string   `json:"gender"`
	Bio              string   `json:"bio"`
	Location         string   `json:"location"`
	ImageUrls        []string `json:"imageUrls"`
	Interests        []string `json:"interests"`
	MinAgePreference int      `json:"minAgePreference"`
	MaxAgePreference int      `json:"maxAgePreference"`
	MaxDistance      int      `json:"maxDistance"`
}

func NewProfileResponse(p *entity.Profile, now time.Time) *ProfileResponse {
	return &ProfileResponse{
		Id:               p.Id,
		UserId:           p.UserId,
		Nickname:         p.Nickname,
		Age:              p.Age(now),
		Gender:           string(p.Gender),
		Bio:              p.Bio,
		Location:         p.Location,
		ImageUrls:        p.ImageUrls,
		Interests:        p.Interests,
		MinAgePreference: p.MinAgePreference,
		MaxAgePreference: p.MaxAgePreference,
		MaxDistance:      p.MaxDistance,
	}
}
