package models

import "time"

// OrderStatus is the payment/fulfillment axis of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderDelivered OrderStatus = "delivered"
)

func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderPaid, OrderDelivered:
		return true
	}
	return false
}

// TransportStatus is the delivery axis, independent of OrderStatus.
type TransportStatus string

const (
	TransportPending   TransportStatus = "pending"
	TransportPicked    TransportStatus = "picked"
	TransportOnTransit TransportStatus = "on_transit"
	TransportDelivered TransportStatus = "delivered"
)

func ValidTransportStatus(s TransportStatus) bool {
	switch s {
	case TransportPending, TransportPicked, TransportOnTransit, TransportDelivered:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID string  `json:"productid" bson:"productid"`
	AgentID   string  `json:"agentid" bson:"agentid"` // product owner, snapshotted at checkout
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

type Order struct {
	OrderID         string          `json:"orderid" bson:"orderid"`
	BuyerID         string          `json:"buyerid" bson:"buyerid"`
	Items           []OrderItem     `json:"items" bson:"items"`
	TotalAmount     float64         `json:"total_amount" bson:"total_amount"`
	Status          OrderStatus     `json:"status" bson:"status"`
	TransportStatus TransportStatus `json:"transport_status" bson:"transport_status"`
	TransporterID   string          `json:"transporterid,omitempty" bson:"transporterid,omitempty"`
	Address         string          `json:"address" bson:"address"`
	CreatedAt       time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" bson:"updated_at"`
}

// AgentIDs returns the distinct agents whose products appear in the
// order's line items.
func (o *Order) AgentIDs() []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range o.Items {
		if it.AgentID == "" || seen[it.AgentID] {
			continue
		}
		seen[it.AgentID] = true
		out = append(out, it.AgentID)
	}
	return out
}

// HasAgent reports whether userID owns any line-item product.
func (o *Order) HasAgent(userID string) bool {
	for _, it := range o.Items {
		if it.AgentID == userID {
			return true
		}
	}
	return false
}
