package orders

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"

	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// receiptPayload returns orderid|buyerid|timestamp|signature for the QR
// code, so a scanned receipt can be verified offline.
func (h *Handler) receiptPayload(orderID, buyerID string, issuedAt int64) string {
	data := fmt.Sprintf("%s|%s|%d", orderID, buyerID, issuedAt)
	mac := hmac.New(sha256.New, h.receiptSecret)
	mac.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyReceiptPayload re-computes the signature over a scanned payload.
func (h *Handler) VerifyReceiptPayload(payload string) bool {
	idx := lastPipe(payload)
	if idx < 0 {
		return false
	}
	data, sig := payload[:idx], payload[idx+1:]
	mac := hmac.New(sha256.New, h.receiptSecret)
	mac.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(sig))
}

func lastPipe(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '|' {
			return i
		}
	}
	return -1
}

// GET /api/orders/:id/receipt — PDF receipt with a signed QR code.
func (h *Handler) PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	order, caller, ok := h.loadOrderForCaller(w, r, ps.ByName("id"))
	if !ok {
		return
	}
	if !caller.IsAdmin && order.BuyerID != caller.UserID && !order.HasAgent(caller.UserID) {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	qrPayload := h.receiptPayload(order.OrderID, order.BuyerID, order.CreatedAt.Unix())
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order ID: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Placed: %s", order.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s / %s", order.Status, order.TransportStatus))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Deliver to: %s", order.Address))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(100, 8, "Item")
	pdf.Cell(20, 8, "Qty")
	pdf.Cell(30, 8, "Price")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	for _, it := range order.Items {
		pdf.Cell(100, 8, it.Name)
		pdf.Cell(20, 8, fmt.Sprintf("%d", it.Quantity))
		pdf.Cell(30, 8, fmt.Sprintf("%.2f", it.Price*float64(it.Quantity)))
		pdf.Ln(8)
	}
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(120, 8, "Total")
	pdf.Cell(30, 8, fmt.Sprintf("%.2f", order.TotalAmount))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 20, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+order.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
