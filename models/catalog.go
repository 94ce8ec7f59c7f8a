package models

import "time"

// Farmer is the producer profile an agent manages; products reference it.
type Farmer struct {
	FarmerID  string    `json:"farmerid" bson:"farmerid"`
	AgentID   string    `json:"agentid" bson:"agentid"`
	Name      string    `json:"name" bson:"name"`
	Region    string    `json:"region" bson:"region"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	ImageURL  string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type Product struct {
	ProductID string    `json:"productid" bson:"productid"`
	OwnerID   string    `json:"ownerid" bson:"ownerid"` // agent who listed it
	FarmerID  string    `json:"farmerid,omitempty" bson:"farmerid,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Category  string    `json:"category" bson:"category"`
	Region    string    `json:"region,omitempty" bson:"region,omitempty"`
	Price     float64   `json:"price" bson:"price"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	SizeInKG  float64   `json:"size_in_kg" bson:"size_in_kg"` // unit weight of one item
	ImageURL  string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
	Featured  bool      `json:"featured" bson:"featured"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Index is the payload emitted to the indexing channel when an entity
// is created, updated or deleted.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
}
