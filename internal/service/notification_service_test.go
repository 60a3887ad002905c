package service

import (
	"context"
	"encoding/json"
	"testing"

	"dating-app-be/internal/apperror"
	"dating-app-be/internal/dto"
	"dating-app-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTokenIsIdempotent(t *testing.T) {
	f := newFakeFactory()
	sender := &capturingPushSender{}
	svc := NewNotificationService(f, sender, nopLogger{})
	ctx := context.Background()

	require.NoError(t, svc.RegisterToken(ctx, 1, &dto.FcmTokenRequest{Token: "device-a"}))
	require.NoError(t, svc.RegisterToken(ctx, 1, &dto.FcmTokenRequest{Token: "device-a"}))

	f.store.mu.Lock()
	count := len(f.store.fcmTokens)
	f.store.mu.Unlock()
	assert.Equal(t, 1, count)
}

func TestRegisterTokenMovesBetweenUsers(t *testing.T) {
	f := newFakeFactory()
	svc := NewNotificationService(f, &capturingPushSender{}, nopLogger{})
	ctx := context.Background()

	require.NoError(t, svc.RegisterToken(ctx, 1, &dto.FcmTokenRequest{Token: "shared-device"}))
	require.NoError(t, svc.RegisterToken(ctx, 2, &dto.FcmTokenRequest{Token: "shared-device"}))

	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	require.Len(t, f.store.fcmTokens, 1)
	assert.Equal(t, uint(2), f.store.fcmTokens[0].UserId)
}

func TestDeleteTokenOwnership(t *testing.T) {
	f := newFakeFactory()
	svc := NewNotificationService(f, &capturingPushSender{}, nopLogger{})
	ctx := context.Background()

	require.NoError(t, svc.RegisterToken(ctx, 1, &dto.FcmTokenRequest{Token: "device-a"}))

	err := svc.DeleteToken(ctx, 2, "device-a")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeForbidden))

	require.NoError(t, svc.DeleteToken(ctx, 1, "device-a"))

	err = svc.DeleteToken(ctx, 1, "device-a")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidFcmToken))
}

func TestSendToUserHitsEveryDevice(t *testing.T) {
	f := newFakeFactory()
	sender := &capturingPushSender{}
	svc := NewNotificationService(f, sender, nopLogger{})
	ctx := context.Background()

	require.NoError(t, svc.RegisterToken(ctx, 1, &dto.FcmTokenRequest{Token: "phone"}))
	require.NoError(t, svc.RegisterToken(ctx, 1, &dto.FcmTokenRequest{Token: "tablet"}))

	err := svc.SendToUser(ctx, 1, &dto.NotificationRequest{Title: "hi", Body: "there"})
	require.NoError(t, err)
	assert.Len(t, sender.sends, 2)
}

func TestSendToUserWithoutTokensIsNoop(t *testing.T) {
	f := newFakeFactory()
	sender := &capturingPushSender{}
	svc := NewNotificationService(f, sender, nopLogger{})

	err := svc.SendToUser(context.Background(), 1, &dto.NotificationRequest{Title: "hi", Body: "there"})
	require.NoError(t, err)
	assert.Empty(t, sender.sends)
}

func TestSendToUserAllFailed(t *testing.T) {
	f := newFakeFactory()
	sender := &capturingPushSender{fail: true}
	svc := NewNotificationService(f, sender, nopLogger{})
	ctx := context.Background()

	require.NoError(t, svc.RegisterToken(ctx, 1, &dto.FcmTokenRequest{Token: "phone"}))

	err := svc.SendToUser(ctx, 1, &dto.NotificationRequest{Title: "hi", Body: "there"})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotificationSendFailed))
}

func TestHandleMatchConfirmedNotifiesBothSides(t *testing.T) {
	f := newFakeFactory()
	sender := &capturingPushSender{}
	svc := NewNotificationService(f, sender, nopLogger{})
	ctx := context.Background()

	require.NoError(t, svc.RegisterToken(ctx, 1, &dto.FcmTokenRequest{Token: "alice-phone"}))
	require.NoError(t, svc.RegisterToken(ctx, 2, &dto.FcmTokenRequest{Token: "bob-phone"}))

	payload, _ := json.Marshal(events.MatchConfirmedEvent{
		MatchId:    7,
		FromUserId: 1,
		ToUserId:   2,
	})
	require.NoError(t, svc.HandleMatchConfirmed(ctx, "events.match.confirmed", payload))

	require.Len(t, sender.sends, 2)
	assert.Equal(t, "match_confirmed", sender.sends[0].Data["type"])
	assert.Equal(t, "7", sender.sends[0].Data["match_id"])
}

func TestHandleChatMessageSentNotifiesRecipient(t *testing.T) {
	f := newFakeFactory()
	sender := &capturingPushSender{}
	svc := NewNotificationService(f, sender, nopLogger{})
	ctx := context.Background()

	require.NoError(t, svc.RegisterToken(ctx, 2, &dto.FcmTokenRequest{Token: "bob-phone"}))

	payload, _ := json.Marshal(events.ChatMessageSentEvent{
		MessageId:       11,
		ChatRoomId:      3,
		SenderProfileId: 1,
		RecipientUserId: 2,
		Preview:         "hey you",
	})
	require.NoError(t, svc.HandleChatMessageSent(ctx, "events.chat.message.sent", payload))

	require.Len(t, sender.sends, 1)
	assert.Equal(t, "bob-phone", sender.sends[0].Token)
	assert.Equal(t, "hey you", sender.sends[0].Body)
}

func TestHandleMalformedEventIsDropped(t *testing.T) {
	f := newFakeFactory()
	sender := &capturingPushSender{}
	svc := NewNotificationService(f, sender, nopLogger{})

	// Returning nil acks the message so the bus never redelivers garbage.
	require.NoError(t, svc.HandleMatchConfirmed(context.Background(), "events.match.confirmed", []byte("{broken")))
	require.NoError(t, svc.HandleChatMessageSent(context.Background(), "events.chat.message.sent", []byte("{broken")))
	assert.Empty(t, sender.sends)
}
