package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// IPushSender delivers one notification to one device token. Delivery is
// best-effort; callers decide what a failure means.
type IPushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

type fcmClient struct {
	endpoint   string
	serverKey  string
	httpClient *http.Client
}

func NewFcmClient(endpoint, serverKey string) IPushSender {
	return &fcmClient{
		endpoint:  endpoint,
		serverKey: serverKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type fcmMessage struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (c *fcmClient) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	payload := fcmMessage{
		To: token,
		Notification: fcmNotification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("push rejected with status %d", resp.StatusCode)
	}
	return nil
}
