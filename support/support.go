package support

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/middleware"
	"agrimart/models"
	"agrimart/notifications"
	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// POST /api/support/tickets
func CreateTicket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var req struct {
		Subject  string `json:"subject"`
		Message  string `json:"message"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Subject == "" || req.Message == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Subject and message are required")
		return
	}

	ticket := models.SupportTicket{
		TicketID:  utils.NewID("st"),
		UserID:    userID,
		Subject:   req.Subject,
		Message:   req.Message,
		Category:  req.Category,
		Status:    models.TicketOpen,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if _, err := db.SupportCollection.InsertOne(ctx, ticket); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create ticket")
		return
	}
	utils.RespondSuccess(w, http.StatusCreated, ticket, "Ticket created")
}

// GET /api/support/tickets — own tickets; admins see every ticket and
// can narrow by ?status=.
func ListTickets(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	claims, ok := middleware.ClaimsFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter := bson.M{}
	if !claims.HasRole(models.RoleAdmin) {
		filter["userid"] = claims.UserID
	}
	if s := r.URL.Query().Get("status"); s != "" {
		filter["status"] = s
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetSkip(skip).SetLimit(limit)

	list, err := utils.FindAndDecode[models.SupportTicket](ctx, db.SupportCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch tickets")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, list, "")
}

// GET /api/support/tickets/:id
func GetTicket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	claims, ok := middleware.ClaimsFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var ticket models.SupportTicket
	err := db.SupportCollection.FindOne(ctx, bson.M{"ticketid": ps.ByName("id")}).Decode(&ticket)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Ticket not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load ticket")
		return
	}
	if ticket.UserID != claims.UserID && !claims.HasRole(models.RoleAdmin) {
		utils.RespondWithError(w, http.StatusNotFound, "Ticket not found")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, ticket, "")
}

// POST /api/support/tickets/:id/replies — owner or admin. Replying to a
// closed ticket reopens it.
func ReplyToTicket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	claims, ok := middleware.ClaimsFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Message is required")
		return
	}

	filter := bson.M{"ticketid": ps.ByName("id")}
	if !claims.HasRole(models.RoleAdmin) {
		filter["userid"] = claims.UserID
	}

	reply := models.TicketReply{
		UserID:    claims.UserID,
		Message:   req.Message,
		CreatedAt: time.Now(),
	}
	update := bson.M{
		"$push": bson.M{"replies": reply},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	if claims.HasRole(models.RoleAdmin) {
		update["$set"].(bson.M)["status"] = models.TicketInProgress
	} else {
		update["$set"].(bson.M)["status"] = models.TicketOpen
	}

	res, err := db.SupportCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add reply")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Ticket not found")
		return
	}

	if claims.HasRole(models.RoleAdmin) {
		var ticket models.SupportTicket
		if db.SupportCollection.FindOne(ctx, bson.M{"ticketid": ps.ByName("id")}).Decode(&ticket) == nil &&
			ticket.UserID != claims.UserID {
			notifications.NewService().Create(ctx, ticket.UserID, models.NotifSupportReply,
				"Support replied to your ticket",
				"Your ticket \""+ticket.Subject+"\" has a new reply",
				map[string]any{"ticketid": ticket.TicketID})
		}
	}

	utils.RespondSuccess(w, http.StatusOK, reply, "Reply added")
}

// PUT /api/support/tickets/:id/status — admin only (routed).
func UpdateTicketStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req struct {
		Status models.TicketStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	switch req.Status {
	case models.TicketOpen, models.TicketInProgress, models.TicketResolved, models.TicketClosed:
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown ticket status")
		return
	}

	res, err := db.SupportCollection.UpdateOne(ctx,
		bson.M{"ticketid": ps.ByName("id")},
		bson.M{"$set": bson.M{"status": req.Status, "updated_at": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update ticket")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Ticket not found")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, nil, "Ticket status updated")
}
