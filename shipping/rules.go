package shipping

import (
	"fmt"

	"agrimart/models"
)

// DeriveTotal computes the quoted shipping total from the product
// snapshot: price * totalKG / unit size.
func DeriveTotal(price, totalKG, productSizeInKG float64) float64 {
	if productSizeInKG <= 0 {
		return 0
	}
	return price * totalKG / productSizeInKG
}

// CheckOfferCreation enforces the terminal rule: an accepted or
// rejected request takes no further offers.
func CheckOfferCreation(status models.ShippingStatus) error {
	if status.Terminal() {
		return fmt.Errorf("shipping request is already %s", status)
	}
	return nil
}

// CheckDecision guards buyer accept/reject of a specific offer.
func CheckDecision(offer models.NegotiationStatus, request models.ShippingStatus) error {
	if offer != models.NegotiationPending {
		return fmt.Errorf("negotiation already processed")
	}
	if request.Terminal() {
		return fmt.Errorf("shipping request is already %s", request)
	}
	return nil
}

// AcceptOffer applies the winning side of the accept cascade in memory:
// the offer wins, the request records the transporter and agreed price.
// Sibling rejection is a separate best-effort bulk write.
func AcceptOffer(req *models.ShippingRequest, offer *models.NegotiationOffer) {
	offer.Status = models.NegotiationAccepted
	req.Status = models.ShippingAccepted
	req.TransporterID = offer.TransporterID
	req.NegotiationPrice = offer.Amount
}

// CounterOffer reprices the offer and resets it for a fresh buyer
// decision.
func CounterOffer(offer *models.NegotiationOffer, amount float64) {
	offer.Amount = amount
	offer.Status = models.NegotiationPending
}

// LosingSiblings returns the offer ids that must flip to rejected when
// winnerID is accepted: every other still-pending offer on the same
// request. Offers already decided stay untouched.
func LosingSiblings(offers []models.NegotiationOffer, winnerID string) []string {
	var out []string
	for _, o := range offers {
		if o.OfferID == winnerID {
			continue
		}
		if o.Status == models.NegotiationPending {
			out = append(out, o.OfferID)
		}
	}
	return out
}

// Transporter self-service actions.
const (
	ActionAccept  = "accept"
	ActionReject  = "reject"
	ActionCounter = "counter"
)

func ValidAction(a string) bool {
	return a == ActionAccept || a == ActionReject || a == ActionCounter
}
