package events

// Event is anything the NATS bus can carry. EventType becomes the subject
// suffix under "events.".
type Event interface {
	EventType() string
	Payload() interface{}
}

const (
	TypeMatchConfirmed  = "match.confirmed"
	TypeChatMessageSent = "chat.message.sent"
)

// MatchConfirmedEvent fires once per confirmed match, after both directed
// rows are flagged.
type MatchConfirmedEvent struct {
	MatchId       uint `json:"match_id"`
	FromProfileId uint `json:"from_profile_id"`
	ToProfileId   uint `json:"to_profile_id"`
	FromUserId    uint `json:"from_user_id"`
	ToUserId      uint `json:"to_user_id"`
}

func (e MatchConfirmedEvent) EventType() string    { return TypeMatchConfirmed }
func (e MatchConfirmedEvent) Payload() interface{} { return e }

// ChatMessageSentEvent fires after a message is durably stored.
type ChatMessageSentEvent struct {
	MessageId       uint   `json:"message_id"`
	ChatRoomId      uint   `json:"chat_room_id"`
	SenderProfileId uint   `json:"sender_profile_id"`
	RecipientUserId uint   `json:"recipient_user_id"`
	Preview         string `json:"preview"`
}

func (e ChatMessageSentEvent) EventType() string    { return TypeChatMessageSent }
func (e ChatMessageSentEvent) Payload() interface{} { return e }
