package reviews

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/middleware"
	"agrimart/models"
	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var reviewableEntities = map[string]bool{
	"product": true,
	"farmer":  true,
	"agent":   true,
}

// GET /api/reviews/:entityType/:entityId
func GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"entity_type": ps.ByName("entityType"),
		"entity_id":   ps.ByName("entityId"),
	}
	skip, limit := utils.ParsePagination(r, 10, 100)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).SetLimit(limit)

	list, err := utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, list, "")
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// POST /api/reviews/:entityType/:entityId — one review per user per entity.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	entityType := ps.ByName("entityType")
	entityID := ps.ByName("entityId")

	if !reviewableEntities[entityType] {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown entity type")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Rating < 1 || req.Rating > 5 || req.Comment == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be 1 to 5 with a comment")
		return
	}

	count, err := db.ReviewsCollection.CountDocuments(ctx, bson.M{
		"userid":      userID,
		"entity_type": entityType,
		"entity_id":   entityID,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check existing review")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "You have already reviewed this")
		return
	}

	review := models.Review{
		ReviewID:   utils.NewID("rv"),
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if _, err := db.ReviewsCollection.InsertOne(ctx, review); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add review")
		return
	}
	utils.RespondSuccess(w, http.StatusCreated, review, "Review added")
}

// PUT /api/review/:id — author-only edits to rating and comment.
func EditReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Rating < 1 || req.Rating > 5 || req.Comment == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be 1 to 5 with a comment")
		return
	}

	res, err := db.ReviewsCollection.UpdateOne(ctx,
		bson.M{"reviewid": ps.ByName("id"), "userid": userID},
		bson.M{"$set": bson.M{
			"rating":     req.Rating,
			"comment":    req.Comment,
			"updated_at": time.Now(),
		}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update review")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, nil, "Review updated")
}

// DELETE /api/review/:id — author or admin.
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	claims, ok := middleware.ClaimsFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter := bson.M{"reviewid": ps.ByName("id")}
	if !claims.HasRole(models.RoleAdmin) {
		filter["userid"] = claims.UserID
	}

	res, err := db.ReviewsCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, nil, "Review deleted")
}

// POST /api/review/:id/reply — the reviewed entity's owner responds once.
func ReplyToReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var req struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Reply == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Reply text is required")
		return
	}

	var review models.Review
	err := db.ReviewsCollection.FindOne(ctx, bson.M{"reviewid": ps.ByName("id")}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load review")
		return
	}

	if !canReply(ctx, &review, userID) {
		utils.RespondWithError(w, http.StatusForbidden, "Only the reviewed party can reply")
		return
	}

	_, err = db.ReviewsCollection.UpdateOne(ctx,
		bson.M{"reviewid": review.ReviewID},
		bson.M{"$set": bson.M{
			"reply":      req.Reply,
			"replied_by": userID,
			"updated_at": time.Now(),
		}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save reply")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, nil, "Reply saved")
}

// POST /api/review/:id/like — toggle.
func LikeReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	reviewID := ps.ByName("id")

	res, err := db.ReviewsCollection.UpdateOne(ctx,
		bson.M{"reviewid": reviewID, "likes": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likes": userID}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to like review")
		return
	}
	if res.MatchedCount > 0 {
		utils.RespondSuccess(w, http.StatusOK, utils.M{"liked": true}, "")
		return
	}

	// Already liked (or missing); try the un-like path.
	res, err = db.ReviewsCollection.UpdateOne(ctx,
		bson.M{"reviewid": reviewID},
		bson.M{"$pull": bson.M{"likes": userID}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to unlike review")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, utils.M{"liked": false}, "")
}

// canReply reports whether userID owns whatever the review is about.
func canReply(ctx context.Context, review *models.Review, userID string) bool {
	switch review.EntityType {
	case "product":
		n, err := db.ProductsCollection.CountDocuments(ctx,
			bson.M{"productid": review.EntityID, "ownerid": userID})
		return err == nil && n > 0
	case "farmer":
		n, err := db.FarmersCollection.CountDocuments(ctx,
			bson.M{"farmerid": review.EntityID, "agentid": userID})
		return err == nil && n > 0
	case "agent":
		return review.EntityID == userID
	}
	return false
}
