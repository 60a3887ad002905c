package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dating-app-be/internal/apperror"
	"dating-app-be/internal/dto"
	"dating-app-be/internal/entity"
	"dating-app-be/internal/pkg/logger"
	"dating-app-be/internal/pkg/push"
	"dating-app-be/internal/repository/specification"
	"dating-app-be/internal/repository/unitofwork"
	"dating-app-be/pkg/events"
)

type INotificationService interface {
	RegisterToken(ctx context.Context, userId uint, req *dto.FcmTokenRequest) error
	DeleteToken(ctx context.Context, userId uint, token string) error
	SendToUser(ctx context.Context, userId uint, req *dto.NotificationRequest) error

	HandleMatchConfirmed(ctx context.Context, subject string, data []byte) error
	HandleChatMessageSent(ctx context.Context, subject string, data []byte) error
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	pushSender push.IPushSender
	log        logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, pushSender push.IPushSender, log logger.ILogger) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		pushSender: pushSender,
		log:        log,
	}
}

// RegisterToken upserts the device token. Re-registering a token moves it to
// the new user, which covers device handoff between accounts.
func (s *notificationService) RegisterToken(ctx context.Context, userId uint, req *dto.FcmTokenRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	token := &entity.FcmToken{
		UserId:    userId,
		Token:     req.Token,
		CreatedAt: time.Now(),
	}
	if err := uow.FcmTokenRepository().Save(ctx, token); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *notificationService) DeleteToken(ctx context.Context, userId uint, token string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.FcmTokenRepository().FindOne(ctx, specification.Filter("token", token))
	if err != nil {
		return apperror.Internal(err)
	}
	if existing == nil {
		return apperror.NotFound(apperror.CodeInvalidFcmToken, "Token not registered")
	}
	if existing.UserId != userId {
		return apperror.Forbidden(apperror.CodeForbidden, "Token belongs to another user")
	}

	if err := uow.FcmTokenRepository().DeleteByToken(ctx, token); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// SendToUser pushes to every device of the user. A failing token never blocks
// the others.
func (s *notificationService) SendToUser(ctx context.Context, userId uint, req *dto.NotificationRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tokens, err := uow.FcmTokenRepository().FindAll(ctx, specification.Filter("user_id", userId))
	if err != nil {
		return apperror.Internal(err)
	}
	if len(tokens) == 0 {
		return nil
	}

	var failed int
	for _, t := range tokens {
		if sendErr := s.pushSender.Send(ctx, t.Token, req.Title, req.Body, req.Data); sendErr != nil {
			failed++
			s.log.Warn("notification_service", "push delivery failed", map[string]interface{}{
				"user_id": userId,
				"error":   sendErr.Error(),
			})
		}
	}
	if failed == len(tokens) {
		return apperror.New(apperror.CodeNotificationSendFailed, apperror.KindInternal, "All push deliveries failed")
	}
	return nil
}

// HandleMatchConfirmed notifies both sides of a new match.
func (s *notificationService) HandleMatchConfirmed(ctx context.Context, subject string, data []byte) error {
	var event events.MatchConfirmedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		s.log.Error("notification_service", "malformed match.confirmed payload", map[string]interface{}{"error": err.Error()})
		return nil
	}

	req := &dto.NotificationRequest{
		Title: "It's a match!",
		Body:  "You have a new match. Say hello!",
		Data: map[string]string{
			"type":     "match_confirmed",
			"match_id": fmt.Sprintf("%d", event.MatchId),
		},
	}
	for _, userId := range []uint{event.FromUserId, event.ToUserId} {
		if err := s.SendToUser(ctx, userId, req); err != nil {
			s.log.Warn("notification_service", "match notification failed", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
		}
	}
	return nil
}

// HandleChatMessageSent notifies the recipient of a new message.
func (s *notificationService) HandleChatMessageSent(ctx context.Context, subject string, data []byte) error {
	var event events.ChatMessageSentEvent
	if err := json.Unmarshal(data, &event); err != nil {
		s.log.Error("notification_service", "malformed chat.message.sent payload", map[string]interface{}{"error": err.Error()})
		return nil
	}

	req := &dto.NotificationRequest{
		Title: "New message",
		Body:  event.Preview,
		Data: map[string]string{
			"type":         "chat_message",
			"chat_room_id": fmt.Sprintf("%d", event.ChatRoomId),
			"message_id":   fmt.Sprintf("%d", event.MessageId),
		},
	}
	if err := s.SendToUser(ctx, event.RecipientUserId, req); err != nil {
		s.log.Warn("notification_service", "message notification failed", map[string]interface{}{
			"user_id": event.RecipientUserId,
			"error":   err.Error(),
		})
	}
	return nil
}
