package shipping

import (
	"testing"

	"agrimart/models"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTotal(t *testing.T) {
	// 500 per 50kg bag, shipping 200kg => 4 bags.
	assert.InDelta(t, 2000, DeriveTotal(500, 200, 50), 0.001)
	assert.InDelta(t, 0, DeriveTotal(500, 200, 0), 0.001, "zero unit size cannot divide")
	assert.InDelta(t, 0, DeriveTotal(500, 200, -1), 0.001)
}

func TestCheckOfferCreation(t *testing.T) {
	assert.NoError(t, CheckOfferCreation(models.ShippingPending))
	assert.NoError(t, CheckOfferCreation(models.ShippingInNegotiation))
	assert.Error(t, CheckOfferCreation(models.ShippingAccepted))
	assert.Error(t, CheckOfferCreation(models.ShippingRejected))
}

func TestCheckDecision(t *testing.T) {
	assert.NoError(t, CheckDecision(models.NegotiationPending, models.ShippingInNegotiation))
	assert.Error(t, CheckDecision(models.NegotiationAccepted, models.ShippingInNegotiation),
		"offer already decided")
	assert.Error(t, CheckDecision(models.NegotiationPending, models.ShippingAccepted),
		"request already closed")
}

func TestAcceptOfferCascade(t *testing.T) {
	req := &models.ShippingRequest{
		RequestID: "sr1",
		Status:    models.ShippingInNegotiation,
	}
	offer := &models.NegotiationOffer{
		OfferID:       "n2",
		RequestID:     "sr1",
		TransporterID: "trans7",
		Amount:        1800,
		Status:        models.NegotiationPending,
	}

	AcceptOffer(req, offer)

	assert.Equal(t, models.NegotiationAccepted, offer.Status)
	assert.Equal(t, models.ShippingAccepted, req.Status)
	assert.Equal(t, "trans7", req.TransporterID)
	assert.InDelta(t, 1800, req.NegotiationPrice, 0.001)
}

func TestCounterOfferResetsToPending(t *testing.T) {
	offer := &models.NegotiationOffer{
		OfferID: "n1",
		Amount:  2000,
		Status:  models.NegotiationRejected,
	}

	CounterOffer(offer, 1750)

	assert.InDelta(t, 1750, offer.Amount, 0.001)
	assert.Equal(t, models.NegotiationPending, offer.Status)
}

func TestLosingSiblings(t *testing.T) {
	offers := []models.NegotiationOffer{
		{OfferID: "n1", Status: models.NegotiationPending},
		{OfferID: "n2", Status: models.NegotiationPending}, // winner
		{OfferID: "n3", Status: models.NegotiationRejected},
		{OfferID: "n4", Status: models.NegotiationPending},
	}

	assert.Equal(t, []string{"n1", "n4"}, LosingSiblings(offers, "n2"),
		"only still-pending siblings flip")
	assert.Empty(t, LosingSiblings(offers[1:2], "n2"), "winner alone has no losers")
}

func TestValidAction(t *testing.T) {
	assert.True(t, ValidAction(ActionAccept))
	assert.True(t, ValidAction(ActionReject))
	assert.True(t, ValidAction(ActionCounter))
	assert.False(t, ValidAction("withdraw"))
	assert.False(t, ValidAction(""))
}
