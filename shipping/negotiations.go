package shipping

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/models"
	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type createOfferRequest struct {
	RequestID    string  `json:"requestid"`
	Amount       float64 `json:"amount"`
	WeightInKG   float64 `json:"weight_in_kg"`
	PickupRoute  string  `json:"pickup_route"`
	DropoffRoute string  `json:"dropoff_route"`
	Message      string  `json:"message"`
}

// POST /api/negotiations — transporter quotes against an open request.
// The first offer flips the request to in_negotiation.
func (h *Handler) CreateOffer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	transporterID := utils.GetUserIDFromRequest(r)

	var req createOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Offer amount must be positive")
		return
	}

	sr, err := loadRequest(ctx, req.RequestID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load shipping request")
		return
	}
	if sr == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Shipping request not found")
		return
	}
	if err := CheckOfferCreation(sr.Status); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	offer := models.NegotiationOffer{
		OfferID:       utils.NewID("ng"),
		RequestID:     sr.RequestID,
		TransporterID: transporterID,
		Amount:        req.Amount,
		WeightInKG:    req.WeightInKG,
		PickupRoute:   req.PickupRoute,
		DropoffRoute:  req.DropoffRoute,
		Message:       req.Message,
		Status:        models.NegotiationPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if _, err := db.NegotiationsCollection.InsertOne(ctx, offer); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create offer")
		return
	}

	if sr.Status == models.ShippingPending {
		if _, err := db.ShippingRequestsCollection.UpdateOne(ctx,
			bson.M{"requestid": sr.RequestID},
			bson.M{"$set": bson.M{"status": models.ShippingInNegotiation, "updated_at": time.Now()}}); err != nil {
			log.Printf("[shipping] request flip to in_negotiation failed for %s: %v", sr.RequestID, err)
		}
	}

	h.notify.Create(ctx, sr.BuyerID, models.NotifNegotiationOffer,
		"New shipping offer",
		fmt.Sprintf("A transporter offered %.2f for shipping request %s", offer.Amount, sr.RequestID),
		map[string]any{"requestid": sr.RequestID, "offerid": offer.OfferID, "amount": offer.Amount})

	utils.RespondSuccess(w, http.StatusCreated, offer, "Offer submitted")
}

// POST /api/negotiations/:id/accept — buyer picks the winner. The
// sibling bulk-reject is best-effort; losing transporters are not
// individually notified.
func (h *Handler) AcceptOfferHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	offer, sr, ok := h.loadOfferForBuyer(ctx, w, r, ps.ByName("id"))
	if !ok {
		return
	}
	if err := CheckDecision(offer.Status, sr.Status); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	AcceptOffer(sr, offer)
	now := time.Now()

	if _, err := db.NegotiationsCollection.UpdateOne(ctx,
		bson.M{"offerid": offer.OfferID},
		bson.M{"$set": bson.M{"negotiation_status": models.NegotiationAccepted, "updated_at": now}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to accept offer")
		return
	}
	if _, err := db.ShippingRequestsCollection.UpdateOne(ctx,
		bson.M{"requestid": sr.RequestID},
		bson.M{"$set": bson.M{
			"status":            models.ShippingAccepted,
			"transporterid":     sr.TransporterID,
			"negotiation_price": sr.NegotiationPrice,
			"updated_at":        now,
		}}); err != nil {
		log.Printf("[shipping] request accept cascade failed for %s: %v", sr.RequestID, err)
	}

	// Bulk-reject the still-pending siblings; already-decided offers
	// stay as they are.
	siblings, err := utils.FindAndDecode[models.NegotiationOffer](ctx,
		db.NegotiationsCollection, bson.M{"requestid": sr.RequestID})
	if err != nil {
		log.Printf("[shipping] sibling load failed for %s: %v", sr.RequestID, err)
	} else if losers := LosingSiblings(siblings, offer.OfferID); len(losers) > 0 {
		if _, err := db.NegotiationsCollection.UpdateMany(ctx,
			bson.M{"offerid": bson.M{"$in": losers}},
			bson.M{"$set": bson.M{"negotiation_status": models.NegotiationRejected, "updated_at": now}}); err != nil {
			log.Printf("[shipping] sibling reject failed for %s: %v", sr.RequestID, err)
		}
	}

	h.notify.Create(ctx, offer.TransporterID, models.NotifNegotiationAccepted,
		"Shipping offer accepted",
		fmt.Sprintf("Your offer of %.2f on request %s was accepted", offer.Amount, sr.RequestID),
		map[string]any{"requestid": sr.RequestID, "offerid": offer.OfferID, "amount": offer.Amount})

	utils.RespondSuccess(w, http.StatusOK, offer, "Offer accepted")
}

// POST /api/negotiations/:id/reject — buyer declines one offer.
func (h *Handler) RejectOfferHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	offer, sr, ok := h.loadOfferForBuyer(ctx, w, r, ps.ByName("id"))
	if !ok {
		return
	}
	if err := CheckDecision(offer.Status, sr.Status); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := db.NegotiationsCollection.UpdateOne(ctx,
		bson.M{"offerid": offer.OfferID},
		bson.M{"$set": bson.M{"negotiation_status": models.NegotiationRejected, "updated_at": time.Now()}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reject offer")
		return
	}

	h.notify.Create(ctx, offer.TransporterID, models.NotifNegotiationRejected,
		"Shipping offer rejected",
		fmt.Sprintf("Your offer on request %s was rejected", sr.RequestID),
		map[string]any{"requestid": sr.RequestID, "offerid": offer.OfferID})

	utils.RespondSuccess(w, http.StatusOK, nil, "Offer rejected")
}

type respondRequest struct {
	Action string  `json:"action"`
	Amount float64 `json:"amount"`
}

// POST /api/transporters/negotiations/:id/respond — the offer's own
// transporter accepts, withdraws, or counters with a new amount.
func (h *Handler) RespondToOffer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	callerID := utils.GetUserIDFromRequest(r)

	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !ValidAction(req.Action) {
		utils.RespondWithError(w, http.StatusBadRequest, "Action must be accept, reject or counter")
		return
	}

	var offer models.NegotiationOffer
	err := db.NegotiationsCollection.FindOne(ctx, bson.M{"offerid": ps.ByName("id")}).Decode(&offer)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Offer not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load offer")
		return
	}
	if offer.TransporterID != callerID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the offer's transporter may respond to it")
		return
	}

	sr, err := loadRequest(ctx, offer.RequestID)
	if err != nil || sr == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Shipping request not found")
		return
	}

	now := time.Now()
	switch req.Action {
	case ActionAccept:
		if err := CheckDecision(offer.Status, sr.Status); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		AcceptOffer(sr, &offer)
		if _, err := db.NegotiationsCollection.UpdateOne(ctx,
			bson.M{"offerid": offer.OfferID},
			bson.M{"$set": bson.M{"negotiation_status": models.NegotiationAccepted, "updated_at": now}}); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to accept offer")
			return
		}
		if _, err := db.ShippingRequestsCollection.UpdateOne(ctx,
			bson.M{"requestid": sr.RequestID},
			bson.M{"$set": bson.M{
				"status":            models.ShippingAccepted,
				"transporterid":     sr.TransporterID,
				"negotiation_price": sr.NegotiationPrice,
				"updated_at":        now,
			}}); err != nil {
			log.Printf("[shipping] request accept cascade failed for %s: %v", sr.RequestID, err)
		}
		h.notify.Create(ctx, sr.BuyerID, models.NotifNegotiationAccepted,
			"Transporter confirmed shipping",
			fmt.Sprintf("The transporter confirmed request %s at %.2f", sr.RequestID, offer.Amount),
			map[string]any{"requestid": sr.RequestID, "offerid": offer.OfferID, "amount": offer.Amount})

	case ActionReject:
		if err := CheckDecision(offer.Status, sr.Status); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if _, err := db.NegotiationsCollection.UpdateOne(ctx,
			bson.M{"offerid": offer.OfferID},
			bson.M{"$set": bson.M{"negotiation_status": models.NegotiationRejected, "updated_at": now}}); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to withdraw offer")
			return
		}
		h.notify.Create(ctx, sr.BuyerID, models.NotifNegotiationRejected,
			"Transporter withdrew offer",
			fmt.Sprintf("The transporter withdrew their offer on request %s", sr.RequestID),
			map[string]any{"requestid": sr.RequestID, "offerid": offer.OfferID})

	case ActionCounter:
		if req.Amount <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Counter amount must be positive")
			return
		}
		if sr.Status.Terminal() {
			utils.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("shipping request is already %s", sr.Status))
			return
		}
		// A counter resets the offer for a fresh buyer decision.
		if _, err := db.NegotiationsCollection.UpdateOne(ctx,
			bson.M{"offerid": offer.OfferID},
			bson.M{"$set": bson.M{
				"amount":             req.Amount,
				"negotiation_status": models.NegotiationPending,
				"updated_at":         now,
			}}); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to counter offer")
			return
		}
		CounterOffer(&offer, req.Amount)
		h.notify.Create(ctx, sr.BuyerID, models.NotifNegotiationOffer,
			"Counter offer received",
			fmt.Sprintf("The transporter countered with %.2f on request %s", req.Amount, sr.RequestID),
			map[string]any{"requestid": sr.RequestID, "offerid": offer.OfferID, "amount": req.Amount})
	}

	utils.RespondSuccess(w, http.StatusOK, offer, "Response recorded")
}

func (h *Handler) loadOfferForBuyer(ctx context.Context, w http.ResponseWriter, r *http.Request, offerID string) (*models.NegotiationOffer, *models.ShippingRequest, bool) {
	buyerID := utils.GetUserIDFromRequest(r)

	var offer models.NegotiationOffer
	err := db.NegotiationsCollection.FindOne(ctx, bson.M{"offerid": offerID}).Decode(&offer)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Offer not found")
		return nil, nil, false
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load offer")
		return nil, nil, false
	}

	sr, err := loadRequest(ctx, offer.RequestID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load shipping request")
		return nil, nil, false
	}
	if sr == nil || sr.BuyerID != buyerID {
		// Hidden rather than forbidden so existence does not leak.
		utils.RespondWithError(w, http.StatusNotFound, "Offer not found")
		return nil, nil, false
	}
	return &offer, sr, true
}
