package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dating-app-be/internal/apperror"
	"dating-app-be/internal/dto"
	"dating-app-be/internal/entity"
	"dating-app-be/internal/pkg/logger"
	"dating-app-be/internal/repository/memory"
	"dating-app-be/internal/repository/specification"
	"dating-app-be/internal/repository/unitofwork"
	"dating-app-be/pkg/events"
	pktNats "dating-app-be/pkg/nats"

	"gorm.io/gorm"
)

const messagePreviewLen = 80

// Columns callers may sort message history by.
var messageSortFields = map[string]bool{
	"created_at": true,
	"id":         true,
}

type IChatService interface {
	GetMyChatRooms(ctx context.Context, userId uint) ([]*dto.ChatRoomResponse, error)
	CreateChatRoom(ctx context.Context, userId, matchId uint) (*dto.ChatRoomResponse, error)
	SendMessage(ctx context.Context, userId, roomId uint, req *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error)
	GetMessages(ctx context.Context, userId, roomId uint, page dto.PageRequest) (*dto.PageResponse[*dto.ChatMessageResponse], error)
	CanAccessRoom(ctx context.Context, userId, roomId uint) error
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	accessCache      *memory.AccessCache
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	accessCache *memory.AccessCache,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		accessCache:      accessCache,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

func (s *chatService) GetMyChatRooms(ctx context.Context, userId uint) ([]*dto.ChatRoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	me, err := s.requireProfile(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	rooms, err := uow.ChatRoomRepository().FindAll(ctx,
		specification.RoomsForProfile{ProfileID: me.Id},
		specification.OrderBy{Field: "chat_rooms.created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	responses := make([]*dto.ChatRoomResponse, 0, len(rooms))
	for _, r := range rooms {
		responses = append(responses, dto.NewChatRoomResponse(r))
	}
	return responses, nil
}

// CreateChatRoom lazily creates the unique room of a confirmed match. Calling
// it again returns the same room.
func (s *chatService) CreateChatRoom(ctx context.Context, userId, matchId uint) (*dto.ChatRoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	me, err := s.requireProfile(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	match, err := uow.MatchRepository().FindOne(ctx, specification.ByID{ID: matchId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if match == nil {
		return nil, apperror.NotFound(apperror.CodeMatchNotFound, "Match not found")
	}
	if !match.Involves(me.Id) {
		return nil, apperror.Forbidden(apperror.CodeChatAccessDenied, "Not a participant of this match")
	}
	if !match.IsMatched {
		return nil, apperror.Forbidden(apperror.CodeChatAccessDenied, "Match is not confirmed")
	}

	existing, err := uow.ChatRoomRepository().FindOne(ctx, specification.ByMatchID{MatchID: matchId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return dto.NewChatRoomResponse(existing), nil
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	room := &entity.ChatRoom{
		MatchId:   matchId,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatRoomRepository().Create(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the creation race; the winner's row is the room.
			fresh := s.uowFactory.NewUnitOfWork(ctx)
			winner, findErr := fresh.ChatRoomRepository().FindOne(ctx, specification.ByMatchID{MatchID: matchId})
			if findErr != nil || winner == nil {
				return nil, apperror.Internal(err)
			}
			return dto.NewChatRoomResponse(winner), nil
		}
		return nil, apperror.Internal(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}
	return dto.NewChatRoomResponse(room), nil
}

func (s *chatService) SendMessage(ctx context.Context, userId, roomId uint, req *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	me, err := s.requireProfile(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	participants, err := s.roomParticipants(ctx, uow, roomId)
	if err != nil {
		return nil, err
	}
	if !participants.Contains(me.Id) {
		return nil, apperror.Forbidden(apperror.CodeChatAccessDenied, "Not a participant of this chat room")
	}

	msgType := entity.MessageType(req.Type)
	if msgType == "" {
		msgType = entity.MessageTypeText
	}

	msg := &entity.ChatMessage{
		ChatRoomId:      roomId,
		SenderProfileId: me.Id,
		Content:         req.Content,
		Type:            msgType,
		CreatedAt:       time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
		return nil, apperror.Internal(err)
	}

	response := dto.NewChatMessageResponse(msg)

	s.fanOut(ctx, roomId, response)
	s.publishMessageSent(ctx, uow, msg, participants, me.Id)

	return response, nil
}

func (s *chatService) GetMessages(ctx context.Context, userId, roomId uint, page dto.PageRequest) (*dto.PageResponse[*dto.ChatMessageResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	me, err := s.requireProfile(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	participants, err := s.roomParticipants(ctx, uow, roomId)
	if err != nil {
		return nil, err
	}
	if !participants.Contains(me.Id) {
		return nil, apperror.Forbidden(apperror.CodeChatAccessDenied, "Not a participant of this chat room")
	}

	page = page.Normalized()

	order := specification.OrderBy{Field: "created_at", Desc: true}
	if page.Sort != "" {
		if !messageSortFields[page.Sort] {
			return nil, apperror.BadRequest(apperror.CodeInvalidInput, "Unsupported sort field")
		}
		order = specification.OrderBy{Field: page.Sort, Desc: page.Desc}
	}

	total, err := uow.ChatMessageRepository().Count(ctx, specification.ByChatRoomID{ChatRoomID: roomId})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatRoomID{ChatRoomID: roomId},
		order,
		specification.Pagination{Limit: page.Size, Offset: page.Offset()},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	content := make([]*dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		content = append(content, dto.NewChatMessageResponse(m))
	}
	return dto.NewPageResponse(content, page, total), nil
}

// CanAccessRoom gates the realtime handshake with the same membership rule as
// the HTTP endpoints.
func (s *chatService) CanAccessRoom(ctx context.Context, userId, roomId uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	me, err := s.requireProfile(ctx, uow, userId)
	if err != nil {
		return err
	}

	participants, err := s.roomParticipants(ctx, uow, roomId)
	if err != nil {
		return err
	}
	if !participants.Contains(me.Id) {
		return apperror.Forbidden(apperror.CodeChatAccessDenied, "Not a participant of this chat room")
	}
	return nil
}

// roomParticipants resolves the two profiles allowed into a room, through the
// cache on the hot path.
func (s *chatService) roomParticipants(ctx context.Context, uow unitofwork.UnitOfWork, roomId uint) (memory.RoomParticipants, error) {
	if participants, found := s.accessCache.Get(roomId); found {
		return participants, nil
	}

	room, err := uow.ChatRoomRepository().FindOne(ctx, specification.ByID{ID: roomId})
	if err != nil {
		return memory.RoomParticipants{}, apperror.Internal(err)
	}
	if room == nil {
		return memory.RoomParticipants{}, apperror.NotFound(apperror.CodeChatRoomNotFound, "Chat room not found")
	}

	match, err := uow.MatchRepository().FindOne(ctx, specification.ByID{ID: room.MatchId})
	if err != nil {
		return memory.RoomParticipants{}, apperror.Internal(err)
	}
	if match == nil {
		return memory.RoomParticipants{}, apperror.NotFound(apperror.CodeMatchNotFound, "Match not found")
	}

	participants := memory.RoomParticipants{
		FromProfileId: match.FromProfileId,
		ToProfileId:   match.ToProfileId,
	}
	s.accessCache.Set(roomId, participants)
	return participants, nil
}

func (s *chatService) fanOut(ctx context.Context, roomId uint, msg *dto.ChatMessageResponse) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.PublishChatMessage{
		RoomId:  roomId,
		Message: *msg,
	})
	if err != nil {
		s.log.Warn("chat_service", "failed to marshal fan-out payload", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("chat_service", "failed to publish realtime message", map[string]interface{}{
			"room_id": roomId,
			"error":   err.Error(),
		})
	}
}

func (s *chatService) publishMessageSent(ctx context.Context, uow unitofwork.UnitOfWork, msg *entity.ChatMessage, participants memory.RoomParticipants, senderProfileId uint) {
	if s.eventPublisher == nil {
		return
	}

	recipientProfileId := participants.FromProfileId
	if recipientProfileId == senderProfileId {
		recipientProfileId = participants.ToProfileId
	}

	recipient, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: recipientProfileId})
	if err != nil || recipient == nil {
		s.log.Warn("chat_service", "failed to resolve message recipient", map[string]interface{}{
			"profile_id": recipientProfileId,
		})
		return
	}

	event := events.ChatMessageSentEvent{
		MessageId:       msg.Id,
		ChatRoomId:      msg.ChatRoomId,
		SenderProfileId: msg.SenderProfileId,
		RecipientUserId: recipient.UserId,
		Preview:         truncate(msg.Content, messagePreviewLen),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.log.Warn("chat_service", "failed to publish chat.message.sent", map[string]interface{}{
			"message_id": msg.Id,
			"error":      err.Error(),
		})
	}
}

func (s *chatService) requireProfile(ctx context.Context, uow unitofwork.UnitOfWork, userId uint) (*entity.Profile, error) {
	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, apperror.NotFound(apperror.CodeProfileNotFound, "Profile not found")
	}
	return profile, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
