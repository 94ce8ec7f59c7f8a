package models

import "time"

type ShippingStatus string

const (
	ShippingPending       ShippingStatus = "pending"
	ShippingInNegotiation ShippingStatus = "in_negotiation"
	ShippingAccepted      ShippingStatus = "accepted"
	ShippingRejected      ShippingStatus = "rejected"
)

// Terminal reports whether the request refuses further offers.
func (s ShippingStatus) Terminal() bool {
	return s == ShippingAccepted || s == ShippingRejected
}

// ShippingRequest is a buyer's call for transport quotes. Product fields
// are snapshotted at creation rather than joined live.
type ShippingRequest struct {
	RequestID        string         `json:"requestid" bson:"requestid"`
	BuyerID          string         `json:"buyerid" bson:"buyerid"`
	ProductID        string         `json:"productid" bson:"productid"`
	ProductName      string         `json:"product_name" bson:"product_name"`
	ProductImage     string         `json:"product_image,omitempty" bson:"product_image,omitempty"`
	ProductSizeInKG  float64        `json:"product_size_in_kg" bson:"product_size_in_kg"`
	Price            float64        `json:"price" bson:"price"`
	TotalKG          float64        `json:"total_kg" bson:"total_kg"`
	TotalAmount      float64        `json:"total_amount" bson:"total_amount"`
	Negotiable       bool           `json:"negotiable" bson:"negotiable"`
	PickupLocation   string         `json:"pickup_location" bson:"pickup_location"`
	DropoffLocation  string         `json:"dropoff_location" bson:"dropoff_location"`
	TransporterID    string         `json:"transporterid,omitempty" bson:"transporterid,omitempty"`
	NegotiationPrice float64        `json:"negotiation_price,omitempty" bson:"negotiation_price,omitempty"`
	Status           ShippingStatus `json:"status" bson:"status"`
	CreatedAt        time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" bson:"updated_at"`
}

type NegotiationStatus string

const (
	NegotiationPending  NegotiationStatus = "pending"
	NegotiationAccepted NegotiationStatus = "accepted"
	NegotiationRejected NegotiationStatus = "rejected"
)

// NegotiationOffer is one transporter's quote against a shipping request.
// At most one offer per request ends up accepted.
type NegotiationOffer struct {
	OfferID       string            `json:"offerid" bson:"offerid"`
	RequestID     string            `json:"requestid" bson:"requestid"`
	TransporterID string            `json:"transporterid" bson:"transporterid"`
	Amount        float64           `json:"amount" bson:"amount"`
	WeightInKG    float64           `json:"weight_in_kg" bson:"weight_in_kg"`
	PickupRoute   string            `json:"pickup_route,omitempty" bson:"pickup_route,omitempty"`
	DropoffRoute  string            `json:"dropoff_route,omitempty" bson:"dropoff_route,omitempty"`
	Message       string            `json:"message,omitempty" bson:"message,omitempty"`
	Status        NegotiationStatus `json:"negotiation_status" bson:"negotiation_status"`
	CreatedAt     time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" bson:"updated_at"`
}
