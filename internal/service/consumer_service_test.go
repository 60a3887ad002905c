package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"dating-app-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBroadcaster struct {
	mu     sync.Mutex
	rooms  []uint
	frames [][]byte
}

func (b *recordingBroadcaster) BroadcastRoom(roomId uint, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rooms = append(b.rooms, roomId)
	b.frames = append(b.frames, data)
}

func (b *recordingBroadcaster) snapshot() ([]uint, [][]byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]uint(nil), b.rooms...), append([][]byte(nil), b.frames...)
}

func TestConsumerDeliversToRoom(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	broadcaster := &recordingBroadcaster{}
	publisher := NewPublisherService("chat.test", pubSub)
	consumer := NewConsumerService(pubSub, "chat.test", broadcaster, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	payload, _ := json.Marshal(dto.PublishChatMessage{
		RoomId: 42,
		Message: dto.ChatMessageResponse{
			Id:      7,
			Content: "hello",
		},
	})
	require.NoError(t, publisher.Publish(ctx, payload))

	require.Eventually(t, func() bool {
		rooms, _ := broadcaster.snapshot()
		return len(rooms) == 1
	}, time.Second, 10*time.Millisecond)

	rooms, frames := broadcaster.snapshot()
	assert.Equal(t, uint(42), rooms[0])

	var frame struct {
		Type string                  `json:"type"`
		Data dto.ChatMessageResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(frames[0], &frame))
	assert.Equal(t, "chat_message", frame.Type)
	assert.Equal(t, uint(7), frame.Data.Id)
	assert.Equal(t, "hello", frame.Data.Content)
}

func TestConsumerSkipsMalformedPayload(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	broadcaster := &recordingBroadcaster{}
	publisher := NewPublisherService("chat.test", pubSub)
	consumer := NewConsumerService(pubSub, "chat.test", broadcaster, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	require.NoError(t, publisher.Publish(ctx, []byte("{broken")))

	good, _ := json.Marshal(dto.PublishChatMessage{RoomId: 1})
	require.NoError(t, publisher.Publish(ctx, good))

	require.Eventually(t, func() bool {
		rooms, _ := broadcaster.snapshot()
		return len(rooms) == 1
	}, time.Second, 10*time.Millisecond)

	rooms, _ := broadcaster.snapshot()
	assert.Equal(t, []uint{1}, rooms)
}
