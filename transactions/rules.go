package transactions

import (
	"fmt"

	"agrimart/models"
)

// Decide validates a requested transaction transition. Admins work the
// full machine: pending -> approved/rejected, approved -> refunded (via
// the refund endpoint only). Transporters get the narrower
// pending <-> approved toggle for orders assigned to them.
func Decide(current, next models.TransactionStatus, byAdmin bool) error {
	if !models.ValidTransactionStatus(next) {
		return fmt.Errorf("invalid transaction status %q", next)
	}
	if next == current {
		return fmt.Errorf("transaction is already %s", current)
	}
	if next == models.TxnRefunded {
		return fmt.Errorf("refunds go through the refund endpoint")
	}
	if current == models.TxnRefunded {
		return fmt.Errorf("transaction has been refunded")
	}

	if byAdmin {
		switch {
		case current == models.TxnPending && (next == models.TxnApproved || next == models.TxnRejected):
			return nil
		}
		return fmt.Errorf("cannot move transaction from %s to %s", current, next)
	}

	// Transporter-scoped toggle.
	switch {
	case current == models.TxnPending && next == models.TxnApproved,
		current == models.TxnApproved && next == models.TxnPending:
		return nil
	}
	return fmt.Errorf("cannot move transaction from %s to %s", current, next)
}

// CascadeOrderStatus maps a transaction status to the order status it
// implies. Approval marks the order paid; rejection (or a transporter
// walking an approval back) reopens it as pending so payment can be
// retried. A declined transaction is deliberately not a terminal state,
// unlike a refund.
func CascadeOrderStatus(next models.TransactionStatus) (models.OrderStatus, bool) {
	switch next {
	case models.TxnApproved:
		return models.OrderPaid, true
	case models.TxnRejected, models.TxnPending:
		return models.OrderPending, true
	}
	return "", false
}

// CheckRefund enforces the refund precondition: only an approved
// transaction can be refunded, and refunded is terminal.
func CheckRefund(current models.TransactionStatus) error {
	if current != models.TxnApproved {
		return fmt.Errorf("only approved transactions can be refunded, current status is %s", current)
	}
	return nil
}
