package chats

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/middleware"
	"agrimart/models"
	"agrimart/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type inboundPayload struct {
	Action  string `json:"action"` // "chat" only for now
	Content string `json:"content,omitempty"`
}

type outboundPayload struct {
	Action    string `json:"action"`
	ID        string `json:"id"`
	Room      string `json:"room,omitempty"`
	SenderID  string `json:"senderId,omitempty"`
	Content   string `json:"content,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// WebSocketHandler upgrades GET /ws/chat/:chatId. Browsers cannot set
// headers on websocket dials, so the token rides in ?token=.
func WebSocketHandler(hub *Hub, auth *middleware.Authenticator) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := r.URL.Query().Get("token")
		claims, err := auth.ValidateJWT("Bearer " + token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		room := ps.ByName("chatId")
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		ok := isParticipant(ctx, room, claims.UserID)
		cancel()
		if !ok {
			http.Error(w, "Chat not found", http.StatusNotFound)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("[chat] upgrade:", err)
			return
		}

		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			Room:   room,
			UserID: claims.UserID,
		}

		go sendHistory(client)

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

// sendHistory replays the last 30 messages, oldest first.
func sendHistory(c *Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(30)

	history, err := utils.FindAndDecode[models.Message](ctx, db.MessagesCollection,
		bson.M{"chatid": c.Room}, opts)
	if err != nil {
		log.Println("[chat] history:", err)
		return
	}
	for i := len(history) - 1; i >= 0; i-- {
		m := history[i]
		out := outboundPayload{
			Action:    "chat",
			ID:        m.MessageID,
			Room:      m.ChatID,
			SenderID:  m.SenderID,
			Content:   m.Text,
			Timestamp: m.CreatedAt.Unix(),
		}
		if data, err := json.Marshal(out); err == nil {
			c.Send <- data
		}
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var in inboundPayload
		if err := json.Unmarshal(raw, &in); err != nil {
			log.Println("[chat] invalid payload:", err)
			continue
		}
		if in.Action != "chat" || in.Content == "" {
			continue
		}

		now := time.Now()
		msg := models.Message{
			MessageID: utils.NewID("m"),
			ChatID:    c.Room,
			SenderID:  c.UserID,
			Text:      in.Content,
			CreatedAt: now,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err = db.MessagesCollection.InsertOne(ctx, msg)
		if err == nil {
			_, _ = db.ChatsCollection.UpdateOne(ctx,
				bson.M{"chatid": c.Room},
				bson.M{"$set": bson.M{"last_text": in.Content, "updated_at": now}})
		}
		cancel()
		if err != nil {
			log.Println("[chat] insert:", err)
			continue
		}

		out := outboundPayload{
			Action:    "chat",
			ID:        msg.MessageID,
			Room:      msg.ChatID,
			SenderID:  msg.SenderID,
			Content:   msg.Text,
			Timestamp: now.Unix(),
		}
		if data, err := json.Marshal(out); err == nil {
			hub.broadcast <- broadcastMsg{Room: c.Room, Data: data}
		}
	}
}
