package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/globals"
	"agrimart/middleware"
	"agrimart/models"
	"agrimart/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	refreshTokenTTL = 7 * 24 * time.Hour
	accessTokenTTL  = 12 * time.Hour
)

// Service mints and rotates tokens. The signing secret is injected at
// startup.
type Service struct {
	secret []byte
}

func NewService(cfg globals.Config) *Service {
	return &Service{secret: cfg.JwtSecret}
}

type registerRequest struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	Name     string      `json:"name"`
	Phone    string      `json:"phone"`
	Address  string      `json:"address"`
}

// POST /api/auth/register
func (s *Service) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleBuyer
	}
	if !models.ValidRole(role) || role == models.RoleAdmin {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	var existing models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"username": req.Username}).Decode(&existing)
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "User already exists")
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		UserID:      utils.NewID("u"),
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashed),
		HeldRoles:   []models.Role{role},
		ActiveRole:  role,
		Name:        req.Name,
		PhoneNumber: req.Phone,
		Address:     req.Address,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	utils.RespondSuccess(w, http.StatusCreated, map[string]string{"userid": user.UserID}, "Account created")
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login — a uniform message on every credential failure
// so nothing about the account leaks.
func (s *Service) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"username": req.Username}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	tokenString, err := s.mintToken(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate refresh token")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{
			"refresh_token":  hashToken(refreshToken),
			"refresh_expiry": time.Now().Add(refreshTokenTTL),
			"last_login":     time.Now(),
		}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store refresh token")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]any{
		"token":        tokenString,
		"refreshToken": refreshToken,
		"userid":       user.UserID,
		"roles":        user.HeldRoles,
		"activeRole":   user.ActiveRole,
	}, "Login successful")
}

// POST /api/auth/token/refresh — body carries the refresh token issued at
// login; a matching unexpired hash gets a fresh access token.
func (s *Service) RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req struct {
		UserID       string `json:"userid"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": req.UserID}).Decode(&user)
	if err != nil || user.RefreshToken != hashToken(req.RefreshToken) || time.Now().After(user.RefreshExp) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	tokenString, err := s.mintToken(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, map[string]string{"token": tokenString}, "Token refreshed")
}

// POST /api/auth/logout
func (s *Service) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	_, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$unset": bson.M{"refresh_token": "", "refresh_expiry": ""}})
	if err != nil {
		log.Printf("[auth] logout cleanup failed for %s: %v", userID, err)
	}
	utils.RespondSuccess(w, http.StatusOK, nil, "Logged out")
}

func (s *Service) mintToken(user *models.User) (string, error) {
	claims := &middleware.Claims{
		Username:   user.Username,
		UserID:     user.UserID,
		Roles:      user.HeldRoles,
		ActiveRole: user.ActiveRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
