package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/models"
	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type switchRoleRequest struct {
	Role models.Role `json:"role"`
}

// POST /api/auth/role — switch the caller's active role. The new token
// returned carries the updated role context; the old token keeps its
// previous active role until it expires.
func (s *Service) SwitchRole(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var req switchRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !models.ValidRole(req.Role) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if !user.HasRole(req.Role) {
		utils.RespondWithError(w, http.StatusBadRequest, "You do not hold that role")
		return
	}

	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"active_role": req.Role, "updated_at": time.Now()}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to switch role")
		return
	}
	user.ActiveRole = req.Role

	tokenString, err := s.mintToken(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, map[string]any{
		"token":      tokenString,
		"activeRole": user.ActiveRole,
	}, "Role switched")
}

// POST /api/auth/roles — request an additional role (buyer adding
// agent, say). Admin stays out of self-service.
func (s *Service) AddRole(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var req switchRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !models.ValidRole(req.Role) || req.Role == models.RoleAdmin {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{
			"$addToSet": bson.M{"roles": req.Role},
			"$set":      bson.M{"updated_at": time.Now()},
		}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add role")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, nil, "Role added")
}

// GET /api/auth/me
func (s *Service) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, user, "")
}
