package shipping

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/models"
	"agrimart/notifications"
	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Handler struct {
	notify *notifications.Service
}

func NewHandler(notify *notifications.Service) *Handler {
	return &Handler{notify: notify}
}

type createShippingRequest struct {
	ProductID       string  `json:"productid"`
	TotalKG         float64 `json:"total_kg"`
	Negotiable      bool    `json:"negotiable"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation string  `json:"dropoff_location"`
}

// POST /api/shipping/requests — buyer requests transport quotes. Product name,
// image and unit size are snapshotted onto the request.
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	buyerID := utils.GetUserIDFromRequest(r)

	var req createShippingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.TotalKG <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Total weight must be positive")
		return
	}

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": req.ProductID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	sr := models.ShippingRequest{
		RequestID:       utils.NewID("sr"),
		BuyerID:         buyerID,
		ProductID:       product.ProductID,
		ProductName:     product.Name,
		ProductImage:    product.ImageURL,
		ProductSizeInKG: product.SizeInKG,
		Price:           product.Price,
		TotalKG:         req.TotalKG,
		TotalAmount:     DeriveTotal(product.Price, req.TotalKG, product.SizeInKG),
		Negotiable:      req.Negotiable,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		Status:          models.ShippingPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if _, err := db.ShippingRequestsCollection.InsertOne(ctx, sr); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create shipping request")
		return
	}
	utils.RespondSuccess(w, http.StatusCreated, sr, "Shipping request created")
}

// GET /api/shipping/requests — buyer's own requests.
func (h *Handler) ListMyRequests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	buyerID := utils.GetUserIDFromRequest(r)
	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).SetLimit(limit)

	list, err := utils.FindAndDecode[models.ShippingRequest](ctx, db.ShippingRequestsCollection,
		bson.M{"buyerid": buyerID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch shipping requests")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, list, "")
}

// GET /api/shipping/open-requests — requests transporters can still bid on.
func (h *Handler) ListOpenRequests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).SetLimit(limit)

	filter := bson.M{"status": bson.M{"$in": bson.A{models.ShippingPending, models.ShippingInNegotiation}}}
	list, err := utils.FindAndDecode[models.ShippingRequest](ctx, db.ShippingRequestsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch shipping requests")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, list, "")
}

// GET /api/shipping/requests/:id/offers
func (h *Handler) ListOffers(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	list, err := utils.FindAndDecode[models.NegotiationOffer](ctx, db.NegotiationsCollection,
		bson.M{"requestid": ps.ByName("id")}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch offers")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, list, "")
}

func loadRequest(ctx context.Context, requestID string) (*models.ShippingRequest, error) {
	var sr models.ShippingRequest
	err := db.ShippingRequestsCollection.FindOne(ctx, bson.M{"requestid": requestID}).Decode(&sr)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sr, nil
}
