package service

import (
	"context"
	"encoding/json"

	"dating-app-be/internal/dto"
	"dating-app-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// RoomBroadcaster is the delivery side of realtime fan-out. The websocket hub
// implements it.
type RoomBroadcaster interface {
	BroadcastRoom(roomId uint, data []byte)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains stored chat messages off the in-process bus and
// pushes them to connected room clients.
type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	broadcaster RoomBroadcaster
	log         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	broadcaster RoomBroadcaster,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		broadcaster: broadcaster,
		log:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.PublishChatMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer_service", "failed to unmarshal fan-out payload", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed payloads never become deliverable
		return
	}

	frame, err := json.Marshal(map[string]interface{}{
		"type": "chat_message",
		"data": payload.Message,
	})
	if err != nil {
		cs.log.Error("consumer_service", "failed to marshal client frame", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	cs.broadcaster.BroadcastRoom(payload.RoomId, frame)
	msg.Ack()
}
