package models

import "time"

type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

// Bid is a buyer's offer on a product. AgentID is the product owner,
// copied at creation and never re-derived.
type Bid struct {
	BidID     string    `json:"bidid" bson:"bidid"`
	ProductID string    `json:"productid" bson:"productid"`
	BuyerID   string    `json:"buyerid" bson:"buyerid"`
	AgentID   string    `json:"agentid" bson:"agentid"`
	Amount    float64   `json:"amount" bson:"amount"`
	Message   string    `json:"message,omitempty" bson:"message,omitempty"`
	Status    BidStatus `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
