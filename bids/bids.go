package bids

import (
	"context"
	"encoding/json"
	"fmt"
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

type createBidRequest struct {
	ProductID string  `json:"productid"`
	Amount    float64 `json:"amount"`
	Message   string  `json:"message"`
}

// POST /api/bids — buyer bids on a product. The product's owner is
// copied onto the bid as the agent at creation time.
func (h *Handler) CreateBid(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	buyerID := utils.GetUserIDFromRequest(r)

	var req createBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Bid amount must be positive")
		return
	}

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": req.ProductID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	bid := models.Bid{
		BidID:     utils.NewID("b"),
		ProductID: product.ProductID,
		BuyerID:   buyerID,
		AgentID:   product.OwnerID,
		Amount:    req.Amount,
		Message:   req.Message,
		Status:    models.BidPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if _, err := db.BidsCollection.InsertOne(ctx, bid); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create bid")
		return
	}

	h.notify.Create(ctx, bid.AgentID, models.NotifBidPlaced,
		"New bid received",
		fmt.Sprintf("A buyer bid %.2f on %s", bid.Amount, product.Name),
		map[string]any{"bidid": bid.BidID, "productid": product.ProductID, "amount": bid.Amount})

	utils.RespondSuccess(w, http.StatusCreated, bid, "Bid placed")
}

type updateBidRequest struct {
	Status models.BidStatus `json:"status"`
}

// PATCH /api/bids/:id — status only; the bid's agent or buyer may
// accept or reject, nothing else is mutable after creation.
func (h *Handler) UpdateBid(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	callerID := utils.GetUserIDFromRequest(r)

	var req updateBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Status != models.BidAccepted && req.Status != models.BidRejected {
		utils.RespondWithError(w, http.StatusBadRequest, "Status must be accepted or rejected")
		return
	}

	var bid models.Bid
	err := db.BidsCollection.FindOne(ctx, bson.M{"bidid": ps.ByName("id")}).Decode(&bid)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Bid not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load bid")
		return
	}
	if bid.AgentID != callerID && bid.BuyerID != callerID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the bid's agent or buyer may decide it")
		return
	}
	if bid.Status != models.BidPending {
		utils.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("bid is already %s", bid.Status))
		return
	}

	if _, err := db.BidsCollection.UpdateOne(ctx,
		bson.M{"bidid": bid.BidID},
		bson.M{"$set": bson.M{"status": req.Status, "updated_at": time.Now()}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update bid")
		return
	}
	bid.Status = req.Status

	// Tell the other party.
	recipient := bid.BuyerID
	if callerID == bid.BuyerID {
		recipient = bid.AgentID
	}
	h.notify.Create(ctx, recipient, models.NotifBidDecided,
		"Bid "+string(req.Status),
		fmt.Sprintf("Bid %s on product %s was %s", bid.BidID, bid.ProductID, req.Status),
		map[string]any{"bidid": bid.BidID, "productid": bid.ProductID, "status": string(req.Status)})

	utils.RespondSuccess(w, http.StatusOK, bid, "Bid updated")
}

// GET /api/bids — buyer's bids; ?incoming=true lists the agent's side.
func (h *Handler) ListBids(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	callerID := utils.GetUserIDFromRequest(r)
	filter := bson.M{"buyerid": callerID}
	if r.URL.Query().Get("incoming") == "true" {
		filter = bson.M{"agentid": callerID}
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).SetLimit(limit)

	list, err := utils.FindAndDecode[models.Bid](ctx, db.BidsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bids")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, list, "")
}

// GET /api/products/:id/bids/leading — derived view, never persisted.
func (h *Handler) GetLeadingBid(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	bids, err := utils.FindAndDecode[models.Bid](ctx, db.BidsCollection,
		bson.M{"productid": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bids")
		return
	}

	leading := Leading(bids)
	if leading == nil {
		utils.RespondWithError(w, http.StatusNotFound, "No bids for this product")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, leading, "")
}

// Leading picks the highest-amount bid, earliest created on ties.
func Leading(bids []models.Bid) *models.Bid {
	var best *models.Bid
	for i := range bids {
		b := &bids[i]
		if best == nil ||
			b.Amount > best.Amount ||
			(b.Amount == best.Amount && b.CreatedAt.Before(best.CreatedAt)) {
			best = b
		}
	}
	return best
}
