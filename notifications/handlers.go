package notifications

import (
	"context"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/models"
	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/notifications
func GetNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	filter := bson.M{"userid": userID}
	if r.URL.Query().Get("unread") == "true" {
		filter["is_read"] = false
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).SetLimit(limit)

	list, err := utils.FindAndDecode[models.Notification](ctx, db.NotificationsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, list, "")
}

// PUT /api/notifications/:id/read
func MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	res, err := db.NotificationsCollection.UpdateOne(r.Context(),
		bson.M{"notificationid": ps.ByName("id"), "userid": userID},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Notification not found")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, nil, "Notification marked read")
}

// POST /api/notifications/read-all
func MarkAllRead(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	_, err := db.NotificationsCollection.UpdateMany(r.Context(),
		bson.M{"userid": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update notifications")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, nil, "All notifications marked read")
}

// DELETE /api/notifications/:id
func DeleteNotification(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	res, err := db.NotificationsCollection.DeleteOne(r.Context(),
		bson.M{"notificationid": ps.ByName("id"), "userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete notification")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Notification not found")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, nil, "Notification deleted")
}
