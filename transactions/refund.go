package transactions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/models"
	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type refundRequest struct {
	Reason       string  `json:"reason"`
	RefundAmount float64 `json:"refundAmount"`
}

// POST /api/admin/transactions/:id/refund — one-way transition out of
// approved. The refund amount defaults to the original amount and may
// differ from it (partial refunds).
func (h *Handler) RefundTransaction(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var txn models.Transaction
	err := db.TransactionsCollection.FindOne(ctx, bson.M{"transactionid": ps.ByName("id")}).Decode(&txn)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load transaction")
		return
	}

	if err := CheckRefund(txn.Status); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount := req.RefundAmount
	if amount <= 0 {
		amount = txn.Amount
	}

	set := bson.M{
		"status":        models.TxnRefunded,
		"refund_amount": amount,
		"refund_reason": req.Reason,
		"updated_at":    time.Now(),
	}
	if _, err := db.TransactionsCollection.UpdateOne(ctx,
		bson.M{"transactionid": txn.TransactionID}, bson.M{"$set": set}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to refund transaction")
		return
	}
	txn.Status = models.TxnRefunded
	txn.RefundAmount = amount
	txn.RefundReason = req.Reason

	h.notify.Create(ctx, txn.BuyerID, models.NotifTransactionRefunded,
		"Payment refunded",
		fmt.Sprintf("Transaction %s was refunded", txn.TransactionID),
		map[string]any{
			"transactionid": txn.TransactionID,
			"orderid":       txn.OrderID,
			"amount":        amount,
		})

	utils.RespondSuccess(w, http.StatusOK, txn, "Transaction refunded")
}
