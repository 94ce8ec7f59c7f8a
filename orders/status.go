package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/models"
	"agrimart/tracking"
	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type statusRequest struct {
	Status          *models.OrderStatus     `json:"status"`
	TransportStatus *models.TransportStatus `json:"transportStatus"`
	TransporterID   *string                 `json:"transporter"`
	Note            string                  `json:"note"`
	Location        string                  `json:"location"`
}

// PATCH /api/orders/:id/status — the single transition endpoint for
// both order axes and the transporter assignment. Checks run in order:
// enum validity, order existence, authorization, transition legality.
// Only then is anything written; tracking and notification writes after
// the order update are best-effort.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body statusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	req := ChangeRequest{
		Status:          body.Status,
		TransportStatus: body.TransportStatus,
		TransporterID:   body.TransporterID,
	}
	if err := req.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, caller, ok := h.loadOrderForCaller(w, r, ps.ByName("id"))
	if !ok {
		return
	}

	if err := Authorize(order, caller, req); err != nil {
		if errors.Is(err, ErrForbidden) {
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := CheckTransition(order, caller, req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	prevStatus := order.Status
	prevTransport := order.TransportStatus
	statusChanged, transportChanged := Apply(order, req)
	order.UpdatedAt = time.Now()

	update := bson.M{
		"status":           order.Status,
		"transport_status": order.TransportStatus,
		"transporterid":    order.TransporterID,
		"updated_at":       order.UpdatedAt,
	}
	if _, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": order.OrderID}, bson.M{"$set": update}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}

	// Transporter progress feeds the append-only timeline.
	if transportChanged && order.TransporterID == caller.UserID {
		if err := tracking.Append(ctx, order.OrderID, order.TransportStatus, body.Note, body.Location); err != nil {
			log.Printf("[orders] tracking append failed for %s: %v", order.OrderID, err)
		}
	}

	if statusChanged {
		h.notify.Create(ctx, order.BuyerID, models.NotifOrderStatus,
			"Order status updated",
			fmt.Sprintf("Order %s moved from %s to %s", order.OrderID, prevStatus, order.Status),
			map[string]any{"orderid": order.OrderID, "from": string(prevStatus), "to": string(order.Status)})
	}
	if transportChanged {
		h.notify.Create(ctx, order.BuyerID, models.NotifTransportStatus,
			"Delivery update",
			fmt.Sprintf("Order %s transport moved from %s to %s", order.OrderID, prevTransport, order.TransportStatus),
			map[string]any{"orderid": order.OrderID, "from": string(prevTransport), "to": string(order.TransportStatus)})
	}

	utils.RespondSuccess(w, http.StatusOK, order, "Order updated")
}
