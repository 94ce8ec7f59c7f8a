package tracking

import (
	"testing"
	"time"

	"agrimart/models"

	"github.com/stretchr/testify/assert"
)

func TestTimelineOldestFirst(t *testing.T) {
	base := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)
	events := []models.TrackingEvent{
		{EventID: "e3", Status: models.TransportOnTransit, CreatedAt: base.Add(2 * time.Hour)},
		{EventID: "e1", Status: models.TransportPending, CreatedAt: base},
		{EventID: "e2", Status: models.TransportPicked, CreatedAt: base.Add(time.Hour)},
	}

	got := Timeline(events)
	assert.Equal(t, "e1", got[0].EventID)
	assert.Equal(t, "e2", got[1].EventID)
	assert.Equal(t, "e3", got[2].EventID)
}

func TestTimelineStableOnEqualTimes(t *testing.T) {
	at := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)
	events := []models.TrackingEvent{
		{EventID: "first", CreatedAt: at},
		{EventID: "second", CreatedAt: at},
	}

	got := Timeline(events)
	assert.Equal(t, "first", got[0].EventID)
	assert.Equal(t, "second", got[1].EventID)
}
