package bids

import (
	"testing"
	"time"

	"agrimart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeading(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	bids := []models.Bid{
		{BidID: "b1", Amount: 100, CreatedAt: base},
		{BidID: "b2", Amount: 150, CreatedAt: base.Add(time.Hour)},
		{BidID: "b3", Amount: 120, CreatedAt: base.Add(2 * time.Hour)},
	}

	got := Leading(bids)
	require.NotNil(t, got)
	assert.Equal(t, "b2", got.BidID)
}

func TestLeadingTieGoesToEarliest(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	bids := []models.Bid{
		{BidID: "late", Amount: 200, CreatedAt: base.Add(time.Minute)},
		{BidID: "early", Amount: 200, CreatedAt: base},
	}

	got := Leading(bids)
	require.NotNil(t, got)
	assert.Equal(t, "early", got.BidID)
}

func TestLeadingEmpty(t *testing.T) {
	assert.Nil(t, Leading(nil))
	assert.Nil(t, Leading([]models.Bid{}))
}
