package models

import "time"

type TransactionStatus string

const (
	TxnPending  TransactionStatus = "pending"
	TxnApproved TransactionStatus = "approved"
	TxnRejected TransactionStatus = "rejected"
	TxnRefunded TransactionStatus = "refunded"
)

func ValidTransactionStatus(s TransactionStatus) bool {
	switch s {
	case TxnPending, TxnApproved, TxnRejected, TxnRefunded:
		return true
	}
	return false
}

// Transaction is a payment record against an order. An order may carry
// several (retries); the record itself is authoritative, the order's
// paid flag is cascaded best-effort.
type Transaction struct {
	TransactionID string            `json:"transactionid" bson:"transactionid"`
	OrderID       string            `json:"orderid" bson:"orderid"`
	BuyerID       string            `json:"buyerid" bson:"buyerid"`
	Amount        float64           `json:"amount" bson:"amount"`
	Status        TransactionStatus `json:"status" bson:"status"`
	PaymentMethod string            `json:"payment_method" bson:"payment_method"`
	ApprovedBy    string            `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	RefundAmount  float64           `json:"refund_amount,omitempty" bson:"refund_amount,omitempty"`
	RefundReason  string            `json:"refund_reason,omitempty" bson:"refund_reason,omitempty"`
	CreatedAt     time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" bson:"updated_at"`
}
