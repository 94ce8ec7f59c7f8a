package chats

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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// POST /api/chats/:userId — open (or reuse) the 1:1 chat between the
// caller and another user. The user pair is sorted so either side finds
// the same document.
func InitChat(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	callerID := utils.GetUserIDFromRequest(r)
	otherID := ps.ByName("userId")
	if otherID == "" || otherID == callerID {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid chat partner")
		return
	}

	count, err := db.UserCollection.CountDocuments(ctx, bson.M{"userid": otherID})
	if err != nil || count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	users := []string{callerID, otherID}
	sort.Strings(users)

	var existing models.Chat
	err = db.ChatsCollection.FindOne(ctx, bson.M{"users": users}).Decode(&existing)
	if err == nil {
		utils.RespondSuccess(w, http.StatusOK, existing, "")
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to look up chat")
		return
	}

	chat := models.Chat{
		ChatID:    utils.NewID("c"),
		Users:     users,
		UpdatedAt: time.Now(),
	}
	if _, err := db.ChatsCollection.InsertOne(ctx, chat); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create chat")
		return
	}
	utils.RespondSuccess(w, http.StatusCreated, chat, "Chat created")
}

// GET /api/chats — the caller's chats, most recent first.
func GetUserChats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(30)

	chats, err := utils.FindAndDecode[models.Chat](ctx, db.ChatsCollection,
		bson.M{"users": bson.M{"$in": []string{userID}}}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch chats")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, chats, "")
}

// GET /api/chats/:chatId/messages — history, oldest first.
func GetMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	chatID := ps.ByName("chatId")

	if !isParticipant(ctx, chatID, userID) {
		utils.RespondWithError(w, http.StatusNotFound, "Chat not found")
		return
	}

	skip, limit := utils.ParsePagination(r, 50, 200)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(skip).SetLimit(limit)

	messages, err := utils.FindAndDecode[models.Message](ctx, db.MessagesCollection,
		bson.M{"chatid": chatID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, messages, "")
}

func isParticipant(ctx context.Context, chatID, userID string) bool {
	count, err := db.ChatsCollection.CountDocuments(ctx, bson.M{
		"chatid": chatID,
		"users":  bson.M{"$in": []string{userID}},
	})
	return err == nil && count > 0
}
