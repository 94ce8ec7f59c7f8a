package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/models"
	"agrimart/rdx"
	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const catalogueKey = "product_catalogue"

// GET /api/products — filterable listing.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	params := r.URL.Query()
	filter := bson.M{}

	if c := params.Get("category"); c != "" {
		filter["category"] = c
	}
	if region := params.Get("region"); region != "" {
		filter["region"] = region
	}
	if params.Get("inStock") == "true" {
		filter["quantity"] = bson.M{"$gt": 0}
	}
	if agent := params.Get("agent"); agent != "" {
		filter["ownerid"] = agent
	}

	price := bson.M{}
	if min := utils.ParseFloat(params.Get("minPrice")); min > 0 {
		price["$gte"] = min
	}
	if max := utils.ParseFloat(params.Get("maxPrice")); max > 0 {
		price["$lte"] = max
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).SetLimit(limit)

	list, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, list, "")
}

// GET /api/catalogue — the full unfiltered list, served from
// redis when warm.
func GetCatalogue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if val, err := rdx.Conn.Get(ctx, catalogueKey).Result(); err == nil && val != "" {
		var cached []models.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			utils.RespondSuccess(w, http.StatusOK, cached, "")
			return
		}
	}

	list, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch catalogue")
		return
	}

	if data, err := json.Marshal(list); err == nil {
		if err := rdx.Conn.Set(ctx, catalogueKey, data, 2*time.Hour).Err(); err != nil {
			log.Printf("[products] catalogue cache write failed: %v", err)
		}
	}
	utils.RespondSuccess(w, http.StatusOK, list, "")
}

// GET /api/products/:id
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var product models.Product
	err := db.ProductsCollection.FindOne(r.Context(), bson.M{"productid": ps.ByName("id")}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, product, "")
}

func invalidateCatalogue() {
	if err := rdx.RdxDel(catalogueKey); err != nil {
		log.Printf("[products] catalogue invalidate failed: %v", err)
	}
}
