package dto

import (
	"time"

	"dating-app-be/internal/entity"
)

type ChatRoomResponse struct {
	Id        uint      `json:"id"`
	MatchId   uint      `json:"matchId"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewChatRoomResponse(r *entity.ChatRoom) *ChatRoomResponse {
	return &ChatRoomResponse{
		Id:        r.Id,
		MatchId:   r.MatchId,
		CreatedAt: r.CreatedAt,
	}
}

// PublishChatMessage is the payload handed to the in-process bus for
// realtime fan-out to connected room clients.
type PublishChatMessage struct {
	RoomId  uint                `json:"roomId"`
	Message ChatMessageResponse `json:"message"`
}

type ChatMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
	Type    string `json:"type" validate:"omitempty,oneof=TEXT IMAGE SYSTEM"`
}

type ChatMessageResponse struct {
	Id              uint      `json:"id"`
	ChatRoomId      uint      `json:"chatRoomId"`
	SenderProfileId uint      `json:"senderProfileId"`
	Content         string    `json:"content"`
	Type            string    `json:"type"`
	IsRead          bool      `json:"isRead"`
	CreatedAt       time.Time `json:"createdAt"`
}

func NewChatMessageResponse(m *entity.ChatMessage) *ChatMessageResponse {
	return &ChatMessageResponse{
		Id:              m.Id,
		ChatRoomId:      m.ChatRoomId,
		SenderProfileId: m.SenderProfileId,
		Content:         m.Content,
		Type:            string(m.Type),
		IsRead:          m.IsRead,
		CreatedAt:       m.CreatedAt,
	}
}
