package websocket

import (
	"context"
	"encoding/json"
	"time"

	"dating-app-be/internal/apperror"
	"dating-app-be/internal/dto"
	"dating-app-be/internal/service"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	// Identity of the connected participant
	UserID uint

	// Room this connection is bound to
	RoomID uint

	// Buffered channel of outbound messages
	Send chan []byte

	chatService service.IChatService
}

type errorFrame struct {
	Type         string `json:"type"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// readPump pumps inbound frames from the websocket connection into the chat
// service. Persisting the message triggers the fan-out back to the room, so
// the sender sees their own message through the same path as everyone else.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Hub", "Unexpected close", map[string]interface{}{
					"room_id": c.RoomID,
					"user_id": c.UserID,
					"error":   err.Error(),
				})
			}
			break
		}

		var req dto.ChatMessageRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			c.sendError(apperror.BadRequest(apperror.CodeInvalidInput, "Malformed message frame"))
			continue
		}
		if req.Content == "" {
			c.sendError(apperror.BadRequest(apperror.CodeInvalidInput, "Message content is required"))
			continue
		}

		if _, err := c.chatService.SendMessage(context.Background(), c.UserID, c.RoomID, &req); err != nil {
			if appErr, ok := apperror.As(err); ok {
				c.sendError(appErr)
			} else {
				c.sendError(apperror.Internal(err))
			}
		}
	}
}

func (c *Client) sendError(appErr *apperror.AppError) {
	frame, _ := json.Marshal(errorFrame{
		Type:         "error",
		ErrorCode:    string(appErr.Code),
		ErrorMessage: appErr.Message,
	})
	select {
	case c.Send <- frame:
	default:
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
