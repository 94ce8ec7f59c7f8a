package chats

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "c1",
	}

	hub.register <- client

	msg := outboundPayload{Action: "chat", Content: "hello test"}
	data, _ := json.Marshal(msg)
	hub.broadcast <- broadcastMsg{Room: "c1", Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubBroadcastSkipsOtherRooms(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	inRoom := &Client{Send: make(chan []byte, 1), Room: "c1"}
	other := &Client{Send: make(chan []byte, 1), Room: "c2"}
	hub.register <- inRoom
	hub.register <- other

	hub.broadcast <- broadcastMsg{Room: "c1", Data: []byte("x")}

	select {
	case <-inRoom.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	select {
	case got := <-other.Send:
		t.Fatalf("unexpected message in other room: %s", got)
	case <-time.After(50 * time.Millisecond):
	}
}
