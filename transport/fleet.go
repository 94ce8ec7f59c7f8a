package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/models"
	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type truckRequest struct {
	PlateNumber string  `json:"plate_number"`
	Type        string  `json:"type"`
	CapacityKG  float64 `json:"capacity_kg"`
}

// POST /api/transporters/trucks
func CreateTruck(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	transporterID := utils.GetUserIDFromRequest(r)

	var req truckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.PlateNumber == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Plate number is required")
		return
	}

	truck := models.Truck{
		TruckID:       utils.NewID("tk"),
		TransporterID: transporterID,
		PlateNumber:   req.PlateNumber,
		Type:          req.Type,
		CapacityKG:    req.CapacityKG,
		Active:        true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if _, err := db.TrucksCollection.InsertOne(ctx, truck); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create truck")
		return
	}
	utils.RespondSuccess(w, http.StatusCreated, truck, "Truck registered")
}

// GET /api/transporters/trucks
func ListTrucks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	transporterID := utils.GetUserIDFromRequest(r)
	list, err := utils.FindAndDecode[models.Truck](ctx, db.TrucksCollection,
		bson.M{"transporterid": transporterID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch trucks")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, list, "")
}

// PUT /api/transporters/trucks/:id
func UpdateTruck(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	transporterID := utils.GetUserIDFromRequest(r)

	var req struct {
		PlateNumber *string  `json:"plate_number"`
		Type        *string  `json:"type"`
		CapacityKG  *float64 `json:"capacity_kg"`
		Active      *bool    `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if req.PlateNumber != nil {
		update["plate_number"] = *req.PlateNumber
	}
	if req.Type != nil {
		update["type"] = *req.Type
	}
	if req.CapacityKG != nil {
		update["capacity_kg"] = *req.CapacityKG
	}
	if req.Active != nil {
		update["active"] = *req.Active
	}

	res, err := db.TrucksCollection.UpdateOne(ctx,
		bson.M{"truckid": ps.ByName("id"), "transporterid": transporterID},
		bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update truck")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Truck not found")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, nil, "Truck updated")
}

// DELETE /api/transporters/trucks/:id
func DeleteTruck(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	transporterID := utils.GetUserIDFromRequest(r)
	res, err := db.TrucksCollection.DeleteOne(ctx,
		bson.M{"truckid": ps.ByName("id"), "transporterid": transporterID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete truck")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Truck not found")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, nil, "Truck deleted")
}

type driverRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenceNumber string `json:"licence_number"`
	TruckID       string `json:"truckid"`
}

// POST /api/transporters/drivers
func CreateDriver(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	transporterID := utils.GetUserIDFromRequest(r)

	var req driverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Name == "" || req.LicenceNumber == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and licence number are required")
		return
	}

	// An assigned truck must belong to the same transporter.
	if req.TruckID != "" {
		count, err := db.TrucksCollection.CountDocuments(ctx,
			bson.M{"truckid": req.TruckID, "transporterid": transporterID})
		if err != nil || count == 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Truck not found in your fleet")
			return
		}
	}

	driver := models.Driver{
		DriverID:      utils.NewID("d"),
		TransporterID: transporterID,
		Name:          req.Name,
		Phone:         req.Phone,
		LicenceNumber: req.LicenceNumber,
		TruckID:       req.TruckID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if _, err := db.DriversCollection.InsertOne(ctx, driver); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create driver")
		return
	}
	utils.RespondSuccess(w, http.StatusCreated, driver, "Driver registered")
}

// GET /api/transporters/drivers
func ListDrivers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	transporterID := utils.GetUserIDFromRequest(r)
	list, err := utils.FindAndDecode[models.Driver](ctx, db.DriversCollection,
		bson.M{"transporterid": transporterID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch drivers")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, list, "")
}

// DELETE /api/transporters/drivers/:id
func DeleteDriver(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	transporterID := utils.GetUserIDFromRequest(r)
	res, err := db.DriversCollection.DeleteOne(ctx,
		bson.M{"driverid": ps.ByName("id"), "transporterid": transporterID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete driver")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Driver not found")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, nil, "Driver deleted")
}

// GET /api/transporters/orders — orders assigned to the caller.
func ListAssignedOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	transporterID := utils.GetUserIDFromRequest(r)
	filter := bson.M{"transporterid": transporterID}
	if s := r.URL.Query().Get("transportStatus"); s != "" {
		filter["transport_status"] = s
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).SetLimit(limit)

	list, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, list, "")
}
