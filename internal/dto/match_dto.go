package dto

import (
	"time"

	"dating-app-be/internal/entity"
)

type MatchResponse struct {
	Id            uint      `json:"id"`
	FromProfileId uint      `json:"fromProfileId"`
	ToProfileId   uint      `json:"toProfileId"`
	Action        string    `json:"action"`
	IsMatched     bool      `json:"isMatched"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewMatchResponse(m *entity.Match) *MatchResponse {
	return &MatchResponse{
		Id:            m.Id,
		FromProfileId: m.FromProfileId,
		ToProfileId:   m.ToProfileId,
		Action:        string(m.Action),
		IsMatched:     m.IsMatched,
		CreatedAt:     m.CreatedAt,
	}
}
