package entity

import "time"

type MessageType string

const (
	MessageTypeText   MessageType = "TEXT"
	MessageTypeImage  MessageType = "IMAGE"
	MessageTypeSystem MessageType = "SYSTEM"
)

// ChatRoom is the lazily created, unique child of a confirmed match.
type ChatRoom struct {
	Id        uint
	MatchId   uint
	CreatedAt time.Time
}

// ChatMessage is immutable after creation except for the read flag.
type ChatMessage struct {
	Id              uint
	ChatRoomId      uint
	SenderProfileId uint
	Content         string
	Type            MessageType
	IsRead          bool
	CreatedAt       time.Time
}

func (m *ChatMessage) MarkAsRead() {
	m.IsRead = true
}
