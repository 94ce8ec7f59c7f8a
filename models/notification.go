package models

import "time"

// NotificationType enumerates the event kinds the side-channel records.
type NotificationType string

const (
	NotifOrderStatus         NotificationType = "order_status"
	NotifTransportStatus     NotificationType = "transport_status"
	NotifTransactionApproved NotificationType = "transaction_approved"
	NotifTransactionRejected NotificationType = "transaction_rejected"
	NotifTransactionRefunded NotificationType = "transaction_refunded"
	NotifBidPlaced           NotificationType = "bid_placed"
	NotifBidDecided          NotificationType = "bid_decided"
	NotifNegotiationOffer    NotificationType = "negotiation_offer"
	NotifNegotiationAccepted NotificationType = "negotiation_accepted"
	NotifNegotiationRejected NotificationType = "negotiation_rejected"
	NotifSupportReply        NotificationType = "support_reply"
)

// Notification is immutable once written except for the IsRead flip.
type Notification struct {
	NotificationID string           `json:"notificationid" bson:"notificationid"`
	UserID         string           `json:"userid" bson:"userid"`
	Type           NotificationType `json:"type" bson:"type"`
	Title          string           `json:"title" bson:"title"`
	Message        string           `json:"message" bson:"message"`
	Metadata       map[string]any   `json:"metadata,omitempty" bson:"metadata,omitempty"`
	IsRead         bool             `json:"is_read" bson:"is_read"`
	CreatedAt      time.Time        `json:"created_at" bson:"created_at"`
}

// TrackingEvent is one entry of the append-only transport audit trail.
type TrackingEvent struct {
	EventID   string          `json:"eventid" bson:"eventid"`
	OrderID   string          `json:"orderid" bson:"orderid"`
	Status    TransportStatus `json:"status" bson:"status"`
	Note      string          `json:"note,omitempty" bson:"note,omitempty"`
	Location  string          `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
}
