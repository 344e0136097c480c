package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/omondi-dev/messagebox/models"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)

// Deliver pushes a freshly persisted message to its receiver's open
// socket, if any. Offline receivers rely on their Notification row.
var Deliver = make(chan *models.Message)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case message := <-Deliver:
			clientsMu.RLock()
			conn, ok := clients[message.ReceiverID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(message); err != nil {
				log.Printf("Error delivering message to client %s: %v", message.ReceiverID, err)
				conn.Close()
				clientsMu.Lock()
				if current, ok := clients[message.ReceiverID]; ok && current == conn {
					delete(clients, message.ReceiverID)
				}
				clientsMu.Unlock()
			}
		}
	}
}
