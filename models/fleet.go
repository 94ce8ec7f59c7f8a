package models

import "time"

type Truck struct {
	TruckID       string    `json:"truckid" bson:"truckid"`
	TransporterID string    `json:"transporterid" bson:"transporterid"`
	PlateNumber   string    `json:"plate_number" bson:"plate_number"`
	Type          string    `json:"type" bson:"type"`
	CapacityKG    float64   `json:"capacity_kg" bson:"capacity_kg"`
	Active        bool      `json:"active" bson:"active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

type Driver struct {
	DriverID      string    `json:"driverid" bson:"driverid"`
	TransporterID string    `json:"transporterid" bson:"transporterid"`
	Name          string    `json:"name" bson:"name"`
	Phone         string    `json:"phone" bson:"phone"`
	LicenceNumber string    `json:"licence_number" bson:"licence_number"`
	TruckID       string    `json:"truckid,omitempty" bson:"truckid,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}
