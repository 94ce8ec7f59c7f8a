package transactions

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"

	"agrimart/models"

	"github.com/stretchr/testify/assert"
)

func TestDecideAdmin(t *testing.T) {
	assert.NoError(t, Decide(models.TxnPending, models.TxnApproved, true))
	assert.NoError(t, Decide(models.TxnPending, models.TxnRejected, true))

	// Admin decisions on a decided transaction.
	assert.Error(t, Decide(models.TxnApproved, models.TxnRejected, true))
	assert.Error(t, Decide(models.TxnRejected, models.TxnApproved, true))
	assert.Error(t, Decide(models.TxnApproved, models.TxnPending, true))
}

func TestDecideTransporterToggle(t *testing.T) {
	assert.NoError(t, Decide(models.TxnPending, models.TxnApproved, false))
	assert.NoError(t, Decide(models.TxnApproved, models.TxnPending, false))

	assert.Error(t, Decide(models.TxnPending, models.TxnRejected, false),
		"rejection is an admin call")
	assert.Error(t, Decide(models.TxnRejected, models.TxnApproved, false))
}

func TestDecideGuards(t *testing.T) {
	assert.Error(t, Decide(models.TxnPending, "paid", true), "unknown status")
	assert.Error(t, Decide(models.TxnApproved, models.TxnApproved, true), "no-op transition")
	assert.Error(t, Decide(models.TxnApproved, models.TxnRefunded, true),
		"refunds only via the refund endpoint")
	assert.Error(t, Decide(models.TxnRefunded, models.TxnPending, true), "refunded is terminal")
}

func TestCascadeOrderStatus(t *testing.T) {
	got, ok := CascadeOrderStatus(models.TxnApproved)
	assert.True(t, ok)
	assert.Equal(t, models.OrderPaid, got)

	// Rejection reopens the order instead of killing it.
	got, ok = CascadeOrderStatus(models.TxnRejected)
	assert.True(t, ok)
	assert.Equal(t, models.OrderPending, got)

	got, ok = CascadeOrderStatus(models.TxnPending)
	assert.True(t, ok)
	assert.Equal(t, models.OrderPending, got)

	_, ok = CascadeOrderStatus(models.TxnRefunded)
	assert.False(t, ok, "refunds do not touch the order")
}

func TestCheckRefund(t *testing.T) {
	assert.NoError(t, CheckRefund(models.TxnApproved))
	assert.Error(t, CheckRefund(models.TxnPending))
	assert.Error(t, CheckRefund(models.TxnRejected))
	assert.Error(t, CheckRefund(models.TxnRefunded))
}

func TestCascadeOrderMissingOrderLogged(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	h := &Handler{}
	txn := &models.Transaction{TransactionID: "t1", OrderID: "o1", Status: models.TxnApproved}
	h.cascadeOrder(context.Background(), txn, &models.Order{}, false)
	assert.Contains(t, buf.String(), "order o1 not found")
	assert.Contains(t, buf.String(), "skipped for t1")

	buf.Reset()
	txn.Status = models.TxnRefunded
	h.cascadeOrder(context.Background(), txn, &models.Order{}, false)
	assert.Empty(t, buf.String(), "refunds never cascade, nothing to report")
}
