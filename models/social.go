package models

import "time"

type Review struct {
	ReviewID   string    `json:"reviewid" bson:"reviewid"`
	UserID     string    `json:"userid" bson:"userid"`
	EntityType string    `json:"entity_type" bson:"entity_type"`
	EntityID   string    `json:"entity_id" bson:"entity_id"`
	Rating     int       `json:"rating" bson:"rating"`
	Comment    string    `json:"comment" bson:"comment"`
	Reply      string    `json:"reply,omitempty" bson:"reply,omitempty"`
	RepliedBy  string    `json:"replied_by,omitempty" bson:"replied_by,omitempty"`
	Likes      []string  `json:"likes,omitempty" bson:"likes,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// WishlistItem is unique per (buyer, product); duplicate adds are
// swallowed rather than surfaced.
type WishlistItem struct {
	BuyerID   string    `json:"buyerid" bson:"buyerid"`
	ProductID string    `json:"productid" bson:"productid"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

type TicketReply struct {
	UserID    string    `json:"userid" bson:"userid"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type SupportTicket struct {
	TicketID  string        `json:"ticketid" bson:"ticketid"`
	UserID    string        `json:"userid" bson:"userid"`
	Subject   string        `json:"subject" bson:"subject"`
	Message   string        `json:"message" bson:"message"`
	Category  string        `json:"category,omitempty" bson:"category,omitempty"`
	Status    TicketStatus  `json:"status" bson:"status"`
	Replies   []TicketReply `json:"replies,omitempty" bson:"replies,omitempty"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

type Message struct {
	MessageID string    `json:"messageid" bson:"messageid"`
	ChatID    string    `json:"chatid" bson:"chatid"`
	SenderID  string    `json:"senderid" bson:"senderid"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type Chat struct {
	ChatID    string    `json:"chatid" bson:"chatid"`
	Users     []string  `json:"users" bson:"users"`
	LastText  string    `json:"last_text,omitempty" bson:"last_text,omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
