package transactions

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/middleware"
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

type createRequest struct {
	OrderID       string  `json:"orderid"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
}

// POST /api/transactions — buyer initiates payment for their order.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	buyerID := utils.GetUserIDFromRequest(r)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.OrderID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Order id is required")
		return
	}

	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": req.OrderID}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.BuyerID != buyerID {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	amount := req.Amount
	if amount <= 0 {
		amount = order.TotalAmount
	}

	txn := models.Transaction{
		TransactionID: utils.NewID("t"),
		OrderID:       order.OrderID,
		BuyerID:       buyerID,
		Amount:        amount,
		Status:        models.TxnPending,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if _, err := db.TransactionsCollection.InsertOne(ctx, txn); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	utils.RespondSuccess(w, http.StatusCreated, txn, "Transaction created, awaiting approval")
}

// GET /api/transactions — buyer's own; admins see everything.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	claims, ok := middleware.ClaimsFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter := bson.M{"buyerid": claims.UserID}
	if claims.ActiveRole == models.RoleAdmin {
		filter = bson.M{}
	}
	if s := r.URL.Query().Get("status"); s != "" {
		filter["status"] = s
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).SetLimit(limit)

	list, err := utils.FindAndDecode[models.Transaction](ctx, db.TransactionsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, list, "")
}

type statusRequest struct {
	Status models.TransactionStatus `json:"status"`
}

// PATCH /api/admin/transactions/:id/status — admin approves or rejects.
func (h *Handler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.updateStatus(w, r, ps.ByName("id"), true)
}

// PATCH /api/transporters/transactions/:id/status — scoped to the
// transporter assigned to the linked order.
func (h *Handler) TransporterUpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.updateStatus(w, r, ps.ByName("id"), false)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request, txnID string, byAdmin bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	callerID := utils.GetUserIDFromRequest(r)

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var txn models.Transaction
	err := db.TransactionsCollection.FindOne(ctx, bson.M{"transactionid": txnID}).Decode(&txn)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load transaction")
		return
	}

	var order models.Order
	orderLoaded := true
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": txn.OrderID}).Decode(&order); err != nil {
		orderLoaded = false
	}

	if !byAdmin {
		if !orderLoaded || order.TransporterID != callerID {
			utils.RespondWithError(w, http.StatusForbidden, "Transaction is not tied to one of your orders")
			return
		}
	}

	if err := Decide(txn.Status, req.Status, byAdmin); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	set := bson.M{"status": req.Status, "updated_at": time.Now()}
	if req.Status == models.TxnApproved {
		set["approved_by"] = callerID
	}
	if _, err := db.TransactionsCollection.UpdateOne(ctx,
		bson.M{"transactionid": txn.TransactionID}, bson.M{"$set": set}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update transaction")
		return
	}
	prev := txn.Status
	txn.Status = req.Status
	if req.Status == models.TxnApproved {
		txn.ApprovedBy = callerID
	}

	h.cascadeOrder(ctx, &txn, &order, orderLoaded)
	h.fanOutStatusChange(ctx, &txn, &order, orderLoaded, prev)

	utils.RespondSuccess(w, http.StatusOK, txn, "Transaction updated")
}

// cascadeOrder flips the linked order after an approval or rejection.
// The payment record is authoritative; the flip is best-effort, logged
// when it cannot happen but never rolled back.
func (h *Handler) cascadeOrder(ctx context.Context, txn *models.Transaction, order *models.Order, orderLoaded bool) {
	next, ok := CascadeOrderStatus(txn.Status)
	if !ok {
		return
	}
	if !orderLoaded {
		log.Printf("[transactions] order %s not found, cascade to %s skipped for %s", txn.OrderID, next, txn.TransactionID)
		return
	}
	if _, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": order.OrderID},
		bson.M{"$set": bson.M{"status": next, "updated_at": time.Now()}}); err != nil {
		log.Printf("[transactions] order cascade failed for %s: %v", order.OrderID, err)
	}
}

// fanOutStatusChange notifies the buyer, each distinct line-item agent
// and the assigned transporter about a transaction status change.
func (h *Handler) fanOutStatusChange(ctx context.Context, txn *models.Transaction, order *models.Order, orderLoaded bool, prev models.TransactionStatus) {
	typ := models.NotifTransactionApproved
	title := "Payment approved"
	switch txn.Status {
	case models.TxnRejected:
		typ = models.NotifTransactionRejected
		title = "Payment rejected"
	case models.TxnPending:
		typ = models.NotifTransactionRejected
		title = "Payment moved back to pending"
	case models.TxnRefunded:
		typ = models.NotifTransactionRefunded
		title = "Payment refunded"
	}

	message := fmt.Sprintf("Transaction %s for order %s moved from %s to %s",
		txn.TransactionID, txn.OrderID, prev, txn.Status)
	metadata := map[string]any{
		"transactionid": txn.TransactionID,
		"orderid":       txn.OrderID,
		"amount":        txn.Amount,
	}

	recipients := []string{txn.BuyerID}
	if orderLoaded {
		recipients = append(recipients, order.AgentIDs()...)
		if order.TransporterID != "" {
			recipients = append(recipients, order.TransporterID)
		}
	}

	seen := make(map[string]bool)
	for _, id := range recipients {
		if seen[id] {
			continue
		}
		seen[id] = true
		h.notify.Create(ctx, id, typ, title, message, metadata)
	}
}
