package farmers

import (
	"context"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/filemgr"
	"agrimart/models"
	"agrimart/mq"
	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// POST /api/farmers — agent registers a producer they represent.
func CreateFarmer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	agentID := utils.GetUserIDFromRequest(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form")
		return
	}
	name := r.FormValue("name")
	if name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	farmer := models.Farmer{
		FarmerID:  utils.NewID("f"),
		AgentID:   agentID,
		Name:      name,
		Region:    r.FormValue("region"),
		Phone:     r.FormValue("phone"),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if filename, err := filemgr.SaveFormImage(r.MultipartForm, "image", filemgr.EntityFarmer, false); err == nil && filename != "" {
		farmer.ImageURL = filename
	}

	if _, err := db.FarmersCollection.InsertOne(ctx, farmer); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create farmer")
		return
	}

	go mq.Emit("farmer-created", models.Index{EntityType: "farmer", EntityId: farmer.FarmerID, Method: "POST"})

	utils.RespondSuccess(w, http.StatusCreated, farmer, "Farmer created")
}

// GET /api/farmers — the agent's own farmers, or all with ?all=true.
func GetFarmers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{"agentid": utils.GetUserIDFromRequest(r)}
	if r.URL.Query().Get("all") == "true" {
		filter = bson.M{}
	}
	if region := r.URL.Query().Get("region"); region != "" {
		filter["region"] = region
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).SetLimit(limit)

	list, err := utils.FindAndDecode[models.Farmer](ctx, db.FarmersCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch farmers")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, list, "")
}

// GET /api/farmers/:id
func GetFarmer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var farmer models.Farmer
	err := db.FarmersCollection.FindOne(r.Context(), bson.M{"farmerid": ps.ByName("id")}).Decode(&farmer)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Farmer not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load farmer")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, farmer, "")
}

// PUT /api/farmers/:id
func EditFarmer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	agentID := utils.GetUserIDFromRequest(r)
	farmerID := ps.ByName("id")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form")
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if v := r.FormValue("name"); v != "" {
		update["name"] = v
	}
	if v := r.FormValue("region"); v != "" {
		update["region"] = v
	}
	if v := r.FormValue("phone"); v != "" {
		update["phone"] = v
	}
	if filename, err := filemgr.SaveFormImage(r.MultipartForm, "image", filemgr.EntityFarmer, false); err == nil && filename != "" {
		update["image_url"] = filename
	}

	res, err := db.FarmersCollection.UpdateOne(ctx,
		bson.M{"farmerid": farmerID, "agentid": agentID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update farmer")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Farmer not found")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, nil, "Farmer updated")
}

// DELETE /api/farmers/:id
func DeleteFarmer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	agentID := utils.GetUserIDFromRequest(r)
	farmerID := ps.ByName("id")

	res, err := db.FarmersCollection.DeleteOne(ctx, bson.M{"farmerid": farmerID, "agentid": agentID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete farmer")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Farmer not found")
		return
	}

	go mq.Emit("farmer-deleted", models.Index{EntityType: "farmer", EntityId: farmerID, Method: "DELETE"})

	utils.RespondSuccess(w, http.StatusOK, nil, "Farmer deleted")
}
