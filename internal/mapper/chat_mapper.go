package mapper

import (
	"dating-app-be/internal/entity"
	"dating-app-be/internal/model"
)

type ChatRoomMapper struct{}

func NewChatRoomMapper() *ChatRoomMapper {
	return &ChatRoomMapper{}
}

func (m *ChatRoomMapper) ToEntity(r *model.ChatRoom) *entity.ChatRoom {
	if r == nil {
		return nil
	}
	return &entity.ChatRoom{
		Id:        r.Id,
		MatchId:   r.MatchId,
		CreatedAt: r.CreatedAt,
	}
}

func (m *ChatRoomMapper) ToModel(r *entity.ChatRoom) *model.ChatRoom {
	if r == nil {
		return nil
	}
	return &model.ChatRoom{
		Id:        r.Id,
		MatchId:   r.MatchId,
		CreatedAt: r.CreatedAt,
	}
}

func (m *ChatRoomMapper) ToEntities(models []*model.ChatRoom) []*entity.ChatRoom {
	entities := make([]*entity.ChatRoom, 0, len(models))
	for _, r := range models {
		entities = append(entities, m.ToEntity(r))
	}
	return entities
}

type ChatMessageMapper struct{}

func NewChatMessageMapper() *ChatMessageMapper {
	return &ChatMessageMapper{}
}

func (m *ChatMessageMapper) ToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:              msg.Id,
		ChatRoomId:      msg.ChatRoomId,
		SenderProfileId: msg.SenderProfileId,
		Content:         msg.Content,
		Type:            entity.MessageType(msg.Type),
		IsRead:          msg.IsRead,
		CreatedAt:       msg.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:              msg.Id,
		ChatRoomId:      msg.ChatRoomId,
		SenderProfileId: msg.SenderProfileId,
		Content:         msg.Content,
		Type:            string(msg.Type),
		IsRead:          msg.IsRead,
		CreatedAt:       msg.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToEntities(models []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, 0, len(models))
	for _, msg := range models {
		entities = append(entities, m.ToEntity(msg))
	}
	return entities
}
