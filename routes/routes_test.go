package routes

import (
	"testing"

	"agrimart/auth"
	"agrimart/bids"
	"agrimart/chats"
	"agrimart/globals"
	"agrimart/middleware"
	"agrimart/notifications"
	"agrimart/orders"
	"agrimart/ratelim"
	"agrimart/shipping"
	"agrimart/transactions"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func buildRouter() *httprouter.Router {
	cfg := globals.Config{
		JwtSecret:   []byte("test_secret"),
		ReceiptHMAC: []byte("test_receipt_secret"),
	}
	notify := notifications.NewService()
	router := httprouter.New()
	RoutesWrapper(router, Deps{
		Auth:         middleware.NewAuthenticator(cfg),
		RateLimiter:  ratelim.NewRateLimiter(),
		AuthService:  auth.NewService(cfg),
		Orders:       orders.NewHandler(notify, cfg),
		Transactions: transactions.NewHandler(notify),
		Shipping:     shipping.NewHandler(notify),
		Bids:         bids.NewHandler(notify),
		ChatHub:      chats.NewHub(),
	})
	return router
}

// The router matches methods exactly, so a handler registered under the
// wrong verb or path is unreachable even though registration succeeds.
func TestRouteTableResolves(t *testing.T) {
	router := buildRouter()

	wired := []struct {
		method, path string
	}{
		{"POST", "/api/auth/register"},
		{"POST", "/api/auth/role"},
		{"GET", "/api/catalogue"},
		{"PATCH", "/api/bids/b1"},
		{"GET", "/api/products/p1/bids/leading"},
		{"PATCH", "/api/orders/o1/status"},
		{"PATCH", "/api/admin/transactions/t1/status"},
		{"POST", "/api/admin/transactions/t1/refund"},
		{"PATCH", "/api/transporters/transactions/t1/status"},
		{"POST", "/api/shipping/requests"},
		{"GET", "/api/shipping/open-requests"},
		{"GET", "/api/shipping/requests/s1/offers"},
		{"POST", "/api/negotiations"},
		{"POST", "/api/negotiations/n1/accept"},
		{"POST", "/api/negotiations/n1/reject"},
		{"POST", "/api/transporters/negotiations/n1/respond"},
		{"POST", "/api/notifications/read-all"},
	}
	for _, route := range wired {
		handle, _, _ := router.Lookup(route.method, route.path)
		assert.NotNil(t, handle, "%s %s should resolve", route.method, route.path)
	}

	stale := []struct {
		method, path string
	}{
		{"PUT", "/api/admin/transactions/t1/status"},
		{"PUT", "/api/transporters/transactions/t1/status"},
		{"POST", "/api/shipping/offers"},
		{"POST", "/api/shipping/offers/n1/accept"},
	}
	for _, route := range stale {
		handle, _, _ := router.Lookup(route.method, route.path)
		assert.Nil(t, handle, "%s %s should not resolve", route.method, route.path)
	}
}
