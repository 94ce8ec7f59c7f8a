package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReceiptPayloadVerifies(t *testing.T) {
	h := &Handler{receiptSecret: []byte("receipt-secret")}

	payload := h.receiptPayload("o1", "buyer1", 1740000000)
	assert.True(t, h.VerifyReceiptPayload(payload))
}

func TestReceiptPayloadTamperDetected(t *testing.T) {
	h := &Handler{receiptSecret: []byte("receipt-secret")}

	payload := h.receiptPayload("o1", "buyer1", 1740000000)
	tampered := "o2" + payload[2:]
	assert.False(t, h.VerifyReceiptPayload(tampered))

	other := &Handler{receiptSecret: []byte("different-secret")}
	assert.False(t, other.VerifyReceiptPayload(payload))

	assert.False(t, h.VerifyReceiptPayload("no-signature-here"))
}
