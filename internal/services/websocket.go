package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // origin is enforced by the CORS layer
	},
}

// Event is the wire envelope for every websocket frame in both directions.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type inboundEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Client represents one authenticated websocket connection.
type Client struct {
	UserID uint
	Role   string
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *Hub
}

// Hub maintains the set of active clients and their room memberships. Room
// membership lives only in this process; clients re-join after reconnect.
type Hub struct {
	db  *gorm.DB
	rdb *redis.Client

	clients    map[*Client]bool
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// NewHub creates a new websocket hub. rdb may be nil; presence flags are
// then skipped.
func NewHub(db *gorm.DB, rdb *redis.Client) *Hub {
	return &Hub{
		db:         db,
		rdb:        rdb,
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// PersonalRoom is the per-user broadcast channel every connection joins at
// connect time.
func PersonalRoom(userID uint) string {
	return fmt.Sprintf("user_%d", userID)
}

// ConversationRoom derives the stable, order-independent room id for a pair
// of users.
func ConversationRoom(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d_%d", a, b)
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.joinLocked(client, PersonalRoom(client.UserID))
			h.mutex.Unlock()
			if h.rdb != nil {
				if err := SetUserOnline(context.Background(), h.rdb, client.UserID); err != nil {
					log.Printf("presence set failed for user %d: %v", client.UserID, err)
				}
			}
			log.Printf("Client %d connected", client.UserID)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				for room, members := range h.rooms {
					if members[client] {
						h.leaveLocked(client, room)
					}
				}
				close(client.Send)
			}
			h.mutex.Unlock()
			if h.rdb != nil {
				if err := SetUserOffline(context.Background(), h.rdb, client.UserID); err != nil {
					log.Printf("presence clear failed for user %d: %v", client.UserID, err)
				}
			}
			log.Printf("Client %d disconnected", client.UserID)
		}
	}
}

func (h *Hub) joinLocked(client *Client, room string) {
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]bool)
		h.rooms[room] = members
	}
	members[client] = true
}

func (h *Hub) leaveLocked(client *Client, room string) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// JoinRoom adds a client to a room.
func (h *Hub) JoinRoom(client *Client, room string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.joinLocked(client, room)
}

// LeaveRoom removes a client from a room.
func (h *Hub) LeaveRoom(client *Client, room string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.leaveLocked(client, room)
}

// EmitToRoom sends an event to every connection currently in the room.
// Delivery is best-effort; connections with a full send buffer are skipped.
func (h *Hub) EmitToRoom(room string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", event.Type, err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.rooms[room] {
		select {
		case client.Send <- data:
		default:
			log.Printf("Warning: could not send to client %d (channel full)", client.UserID)
		}
	}
}

// EmitToUser sends an event to every connection of one user, regardless of
// which conversation rooms they have joined.
func (h *Hub) EmitToUser(userID uint, event Event) {
	h.EmitToRoom(PersonalRoom(userID), event)
}

// GetConnectedClients returns the number of connected clients
func (h *Hub) GetConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades an authenticated request to a websocket connection and
// starts the read/write pumps.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint, role string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		UserID: userID,
		Role:   role,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		Hub:    hub,
	}

	hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump pumps messages from the websocket connection into the hub
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var event inboundEvent
		if err := json.Unmarshal(message, &event); err != nil {
			c.sendError("Malformed event")
			continue
		}

		switch event.Type {
		case "join_conversation":
			c.handleJoinConversation(event.Data)
		case "leave_conversation":
			c.handleLeaveConversation(event.Data)
		case "send_message":
			c.handleSendMessage(event.Data)
		case "typing_start":
			c.handleTyping(event.Data, true)
		case "typing_stop":
			c.handleTyping(event.Data, false)
		default:
			c.sendError("Unknown event type")
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

type conversationRef struct {
	OtherUserID uint `json:"otherUserId"`
}

type outgoingMessage struct {
	ReceiverID uint   `json:"receiverId"`
	Message    string `json:"message"`
}

func (c *Client) handleJoinConversation(data json.RawMessage) {
	var ref conversationRef
	if err := json.Unmarshal(data, &ref); err != nil || ref.OtherUserID == 0 {
		c.sendError("Missing required fields")
		return
	}

	c.Hub.JoinRoom(c, ConversationRoom(c.UserID, ref.OtherUserID))

	// Joining a conversation consumes the counterpart's unread messages and
	// tells them their messages were read.
	if _, err := MarkConversationRead(c.Hub.db, ref.OtherUserID, c.UserID); err != nil {
		log.Printf("mark read failed for user %d: %v", c.UserID, err)
		return
	}
	c.Hub.EmitToUser(ref.OtherUserID, Event{
		Type: "messages_read",
		Data: map[string]interface{}{"userId": c.UserID},
	})
}

func (c *Client) handleLeaveConversation(data json.RawMessage) {
	var ref conversationRef
	if err := json.Unmarshal(data, &ref); err != nil || ref.OtherUserID == 0 {
		c.sendError("Missing required fields")
		return
	}
	c.Hub.LeaveRoom(c, ConversationRoom(c.UserID, ref.OtherUserID))
}

func (c *Client) handleSendMessage(data json.RawMessage) {
	var msg outgoingMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.ReceiverID == 0 || msg.Message == "" {
		c.sendError("Missing required fields")
		return
	}

	if _, err := SendChatMessage(c.Hub.db, c.Hub, c.UserID, msg.ReceiverID, msg.Message); err != nil {
		c.sendError(chatErrorMessage(err))
	}
}

func (c *Client) handleTyping(data json.RawMessage, typing bool) {
	var ref struct {
		ReceiverID uint `json:"receiverId"`
	}
	if err := json.Unmarshal(data, &ref); err != nil || ref.ReceiverID == 0 {
		return
	}
	c.Hub.EmitToUser(ref.ReceiverID, Event{
		Type: "user_typing",
		Data: map[string]interface{}{"userId": c.UserID, "typing": typing},
	})
}

// sendError emits a connection-scoped error event. Errors are never
// broadcast and never persisted.
func (c *Client) sendError(message string) {
	data, err := json.Marshal(Event{Type: "error", Data: map[string]string{"message": message}})
	if err != nil {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}
