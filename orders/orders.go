package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/globals"
	"agrimart/middleware"
	"agrimart/models"
	"agrimart/mq"
	"agrimart/notifications"
	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Handler carries the order endpoints' collaborators.
type Handler struct {
	notify        *notifications.Service
	receiptSecret []byte
}

func NewHandler(notify *notifications.Service, cfg globals.Config) *Handler {
	return &Handler{notify: notify, receiptSecret: cfg.ReceiptHMAC}
}

type checkoutItem struct {
	ProductID string `json:"productid"`
	Quantity  int    `json:"quantity"`
}

type checkoutRequest struct {
	Items   []checkoutItem `json:"items"`
	Address string         `json:"address"`
}

// POST /api/orders — buyer checkout. Line items snapshot the product's
// owner, name and price at order time.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	buyerID := utils.GetUserIDFromRequest(r)

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if len(req.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Order needs at least one item")
		return
	}
	if req.Address == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Delivery address is required")
		return
	}

	order := models.Order{
		OrderID:         utils.NewID("o"),
		BuyerID:         buyerID,
		Address:         req.Address,
		Status:          models.OrderPending,
		TransportStatus: models.TransportPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	for _, it := range req.Items {
		if it.Quantity < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "Item quantity must be at least 1")
			return
		}
		var product models.Product
		err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": it.ProductID}).Decode(&product)
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("Product %s not found", it.ProductID))
			return
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID: product.ProductID,
			AgentID:   product.OwnerID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  it.Quantity,
		})
		order.TotalAmount += product.Price * float64(it.Quantity)
	}

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	go mq.Emit("order-created", models.Index{EntityType: "order", EntityId: order.OrderID, Method: "POST"})

	for _, agentID := range order.AgentIDs() {
		h.notify.Create(ctx, agentID, models.NotifOrderStatus,
			"New order received",
			fmt.Sprintf("Order %s was placed for your products", order.OrderID),
			map[string]any{"orderid": order.OrderID, "amount": order.TotalAmount})
	}

	utils.RespondSuccess(w, http.StatusCreated, order, "Order created")
}

// GET /api/orders/:id
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	order, caller, ok := h.loadOrderForCaller(w, r, ps.ByName("id"))
	if !ok {
		return
	}
	if !caller.IsAdmin && order.BuyerID != caller.UserID &&
		!order.HasAgent(caller.UserID) && order.TransporterID != caller.UserID {
		// Indistinguishable from a missing order on purpose.
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, order, "")
}

// GET /api/orders — the caller's orders in whichever relationship their
// active role implies.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	claims, ok := middleware.ClaimsFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var filter bson.M
	switch claims.ActiveRole {
	case models.RoleAgent:
		filter = bson.M{"items.agentid": claims.UserID}
	case models.RoleTransporter:
		filter = bson.M{"transporterid": claims.UserID}
	case models.RoleAdmin:
		filter = bson.M{}
	default:
		filter = bson.M{"buyerid": claims.UserID}
	}
	if s := r.URL.Query().Get("status"); s != "" {
		filter["status"] = s
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).SetLimit(limit)

	list, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, list, "")
}

// loadOrderForCaller fetches the order and resolves the caller's admin
// flag from the verified claims. Writes the error response itself.
func (h *Handler) loadOrderForCaller(w http.ResponseWriter, r *http.Request, orderID string) (*models.Order, Caller, bool) {
	claims, ok := middleware.ClaimsFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, Caller{}, false
	}
	caller := Caller{UserID: claims.UserID}
	for _, role := range claims.Roles {
		if role == models.RoleAdmin {
			caller.IsAdmin = true
		}
	}

	var order models.Order
	err := db.OrdersCollection.FindOne(r.Context(), bson.M{"orderid": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return nil, Caller{}, false
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load order")
		return nil, Caller{}, false
	}
	return &order, caller, true
}
