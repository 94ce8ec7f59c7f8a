package tracking

import (
	"context"
	"net/http"
	"sort"
	"time"

	"agrimart/db"
	"agrimart/models"
	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Append writes one timeline entry. Events are never updated or
// deleted; the order's current transport_status field is a separate
// concern from this audit trail.
func Append(ctx context.Context, orderID string, status models.TransportStatus, note, location string) error {
	event := models.TrackingEvent{
		EventID:   utils.NewID("te"),
		OrderID:   orderID,
		Status:    status,
		Note:      note,
		Location:  location,
		CreatedAt: time.Now(),
	}
	_, err := db.TrackingCollection.InsertOne(ctx, event)
	return err
}

// Timeline sorts events oldest-first for display.
func Timeline(events []models.TrackingEvent) []models.TrackingEvent {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events
}

// GET /api/orders/:id/tracking
func GetTimeline(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	events, err := utils.FindAndDecode[models.TrackingEvent](ctx, db.TrackingCollection,
		bson.M{"orderid": ps.ByName("id")}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch tracking events")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, Timeline(events), "")
}
