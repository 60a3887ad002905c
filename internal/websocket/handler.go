package websocket

import (
	"dating-app-be/internal/service"

	"github.com/gofiber/websocket/v2"
)

// ServeWs binds an upgraded connection to a room. Access was already checked
// on the HTTP side before the upgrade.
func ServeWs(hub *Hub, c *websocket.Conn, userId, roomId uint, chatService service.IChatService) {
	client := &Client{
		Hub:         hub,
		Conn:        c,
		UserID:      userId,
		RoomID:      roomId,
		Send:        make(chan []byte, 256),
		chatService: chatService,
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
