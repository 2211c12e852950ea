package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationRoomIsOrderIndependent(t *testing.T) {
	assert.Equal(t, ConversationRoom(3, 7), ConversationRoom(7, 3))
	assert.Equal(t, "3_7", ConversationRoom(7, 3))
	assert.Equal(t, "1_1", ConversationRoom(1, 1))
}

func TestPersonalRoom(t *testing.T) {
	assert.Equal(t, "user_42", PersonalRoom(42))
}

func TestEmitToRoomWithoutMembersIsNoop(t *testing.T) {
	hub := NewHub(nil, nil)
	// no members, nothing to deliver, must not panic
	hub.EmitToRoom("1_2", Event{Type: "new_message", Data: "hi"})
	hub.EmitToUser(9, Event{Type: "notification"})
}

func TestJoinAndLeaveRoom(t *testing.T) {
	hub := NewHub(nil, nil)
	client := &Client{UserID: 1, Send: make(chan []byte, 4), Hub: hub}

	hub.JoinRoom(client, "1_2")
	hub.EmitToRoom("1_2", Event{Type: "new_message", Data: "hello"})
	assert.Len(t, client.Send, 1)

	hub.LeaveRoom(client, "1_2")
	hub.EmitToRoom("1_2", Event{Type: "new_message", Data: "again"})
	assert.Len(t, client.Send, 1)
}

func TestEmitSkipsFullChannels(t *testing.T) {
	hub := NewHub(nil, nil)
	client := &Client{UserID: 1, Send: make(chan []byte, 1), Hub: hub}

	hub.JoinRoom(client, "room")
	hub.EmitToRoom("room", Event{Type: "a"})
	hub.EmitToRoom("room", Event{Type: "b"})

	// second event dropped instead of blocking the hub
	assert.Len(t, client.Send, 1)
}
