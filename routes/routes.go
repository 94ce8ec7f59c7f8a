package routes

import (
	"net/http"

	"agrimart/auth"
	"agrimart/bids"
	"agrimart/chats"
	"agrimart/farmers"
	"agrimart/middleware"
	"agrimart/models"
	"agrimart/notifications"
	"agrimart/orders"
	"agrimart/products"
	"agrimart/ratelim"
	"agrimart/reviews"
	"agrimart/search"
	"agrimart/shipping"
	"agrimart/support"
	"agrimart/tracking"
	"agrimart/transactions"
	"agrimart/transport"
	"agrimart/wishlist"

	"github.com/julienschmidt/httprouter"
)

// Deps holds everything the route tree needs injected at startup.
type Deps struct {
	Auth         *middleware.Authenticator
	RateLimiter  *ratelim.RateLimiter
	AuthService  *auth.Service
	Orders       *orders.Handler
	Transactions *transactions.Handler
	Shipping     *shipping.Handler
	Bids         *bids.Handler
	ChatHub      *chats.Hub
}

func RoutesWrapper(router *httprouter.Router, d Deps) {
	AddStaticRoutes(router)
	AddAuthRoutes(router, d)
	AddProductRoutes(router, d)
	AddFarmerRoutes(router, d)
	AddBidRoutes(router, d)
	AddOrderRoutes(router, d)
	AddTransactionRoutes(router, d)
	AddShippingRoutes(router, d)
	AddTransporterRoutes(router, d)
	AddNotificationRoutes(router, d)
	AddReviewRoutes(router, d)
	AddWishlistRoutes(router, d)
	AddSupportRoutes(router, d)
	AddChatRoutes(router, d)
	AddSearchRoutes(router, d)
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
	router.ServeFiles("/static/farmerpic/*filepath", http.Dir("static/farmerpic"))
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
}

func AddAuthRoutes(router *httprouter.Router, d Deps) {
	router.POST("/api/auth/register", d.RateLimiter.Limit(d.AuthService.Register))
	router.POST("/api/auth/login", d.RateLimiter.Limit(d.AuthService.Login))
	router.POST("/api/auth/token/refresh", d.RateLimiter.Limit(d.AuthService.RefreshToken))
	router.POST("/api/auth/logout", d.Auth.Authenticate(d.AuthService.Logout))

	router.GET("/api/auth/me", d.Auth.Authenticate(d.AuthService.Me))
	router.POST("/api/auth/roles", d.Auth.Authenticate(d.AuthService.AddRole))
	router.POST("/api/auth/role", d.Auth.Authenticate(d.AuthService.SwitchRole))
}

func AddProductRoutes(router *httprouter.Router, d Deps) {
	agentOnly := middleware.Chain(d.Auth.Authenticate, d.Auth.RequireRoles(models.RoleAgent))

	router.GET("/api/products", products.GetProducts)
	router.GET("/api/catalogue", products.GetCatalogue)
	router.GET("/api/products/:id", products.GetProduct)
	router.POST("/api/products", agentOnly(products.CreateProduct))
	router.PUT("/api/products/:id", agentOnly(products.EditProduct))
	router.DELETE("/api/products/:id", agentOnly(products.DeleteProduct))
}

func AddFarmerRoutes(router *httprouter.Router, d Deps) {
	agentOnly := middleware.Chain(d.Auth.Authenticate, d.Auth.RequireRoles(models.RoleAgent))

	router.GET("/api/farmers", farmers.GetFarmers)
	router.GET("/api/farmers/:id", farmers.GetFarmer)
	router.POST("/api/farmers", agentOnly(farmers.CreateFarmer))
	router.PUT("/api/farmers/:id", agentOnly(farmers.EditFarmer))
	router.DELETE("/api/farmers/:id", agentOnly(farmers.DeleteFarmer))
}

func AddBidRoutes(router *httprouter.Router, d Deps) {
	buyerOnly := middleware.Chain(d.Auth.Authenticate, d.Auth.RequireRoles(models.RoleBuyer))

	router.POST("/api/bids", buyerOnly(d.Bids.CreateBid))
	router.GET("/api/bids", d.Auth.Authenticate(d.Bids.ListBids))
	router.PATCH("/api/bids/:id", d.Auth.Authenticate(d.Bids.UpdateBid))
	router.GET("/api/products/:id/bids/leading", d.Auth.Authenticate(d.Bids.GetLeadingBid))
}

func AddOrderRoutes(router *httprouter.Router, d Deps) {
	buyerOnly := middleware.Chain(d.Auth.Authenticate, d.Auth.RequireRoles(models.RoleBuyer))

	router.POST("/api/orders", buyerOnly(d.Orders.CreateOrder))
	router.GET("/api/orders", d.Auth.Authenticate(d.Orders.ListOrders))
	router.GET("/api/orders/:id", d.Auth.Authenticate(d.Orders.GetOrder))
	router.PATCH("/api/orders/:id/status", d.Auth.Authenticate(d.Orders.UpdateOrderStatus))
	router.GET("/api/orders/:id/receipt", d.Auth.Authenticate(d.Orders.PrintReceipt))
	router.GET("/api/orders/:id/tracking", d.Auth.Authenticate(tracking.GetTimeline))
}

func AddTransactionRoutes(router *httprouter.Router, d Deps) {
	buyerOnly := middleware.Chain(d.Auth.Authenticate, d.Auth.RequireRoles(models.RoleBuyer))
	adminOnly := middleware.Chain(d.Auth.Authenticate, d.Auth.RequireRoles(models.RoleAdmin))
	transporterOnly := middleware.Chain(d.Auth.Authenticate, d.Auth.RequireRoles(models.RoleTransporter))

	router.POST("/api/transactions", buyerOnly(d.Transactions.CreateTransaction))
	router.GET("/api/transactions", d.Auth.Authenticate(d.Transactions.ListTransactions))
	router.PATCH("/api/admin/transactions/:id/status", adminOnly(d.Transactions.AdminUpdateStatus))
	router.POST("/api/admin/transactions/:id/refund", adminOnly(d.Transactions.RefundTransaction))
	router.PATCH("/api/transporters/transactions/:id/status", transporterOnly(d.Transactions.TransporterUpdateStatus))
}

func AddShippingRoutes(router *httprouter.Router, d Deps) {
	buyerOnly := middleware.Chain(d.Auth.Authenticate, d.Auth.RequireRoles(models.RoleBuyer))
	transporterOnly := middleware.Chain(d.Auth.Authenticate, d.Auth.RequireRoles(models.RoleTransporter))

	router.POST("/api/shipping/requests", buyerOnly(d.Shipping.CreateRequest))
	router.GET("/api/shipping/requests", buyerOnly(d.Shipping.ListMyRequests))
	router.GET("/api/shipping/open-requests", transporterOnly(d.Shipping.ListOpenRequests))
	router.GET("/api/shipping/requests/:id/offers", d.Auth.Authenticate(d.Shipping.ListOffers))

	router.POST("/api/negotiations", transporterOnly(d.Shipping.CreateOffer))
	router.POST("/api/negotiations/:id/accept", buyerOnly(d.Shipping.AcceptOfferHandler))
	router.POST("/api/negotiations/:id/reject", buyerOnly(d.Shipping.RejectOfferHandler))
	router.POST("/api/transporters/negotiations/:id/respond", transporterOnly(d.Shipping.RespondToOffer))
}

func AddTransporterRoutes(router *httprouter.Router, d Deps) {
	transporterOnly := middleware.Chain(d.Auth.Authenticate, d.Auth.RequireRoles(models.RoleTransporter))

	router.POST("/api/transporters/trucks", transporterOnly(transport.CreateTruck))
	router.GET("/api/transporters/trucks", transporterOnly(transport.ListTrucks))
	router.PUT("/api/transporters/trucks/:id", transporterOnly(transport.UpdateTruck))
	router.DELETE("/api/transporters/trucks/:id", transporterOnly(transport.DeleteTruck))

	router.POST("/api/transporters/drivers", transporterOnly(transport.CreateDriver))
	router.GET("/api/transporters/drivers", transporterOnly(transport.ListDrivers))
	router.DELETE("/api/transporters/drivers/:id", transporterOnly(transport.DeleteDriver))

	router.GET("/api/transporters/orders", transporterOnly(transport.ListAssignedOrders))
}

func AddNotificationRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/notifications", d.Auth.Authenticate(notifications.GetNotifications))
	router.PUT("/api/notifications/:id/read", d.Auth.Authenticate(notifications.MarkRead))
	router.POST("/api/notifications/read-all", d.Auth.Authenticate(notifications.MarkAllRead))
	router.DELETE("/api/notifications/:id", d.Auth.Authenticate(notifications.DeleteNotification))
}

func AddReviewRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/reviews/:entityType/:entityId", reviews.GetReviews)
	router.POST("/api/reviews/:entityType/:entityId", d.Auth.Authenticate(reviews.AddReview))
	router.PUT("/api/review/:id", d.Auth.Authenticate(reviews.EditReview))
	router.DELETE("/api/review/:id", d.Auth.Authenticate(reviews.DeleteReview))
	router.POST("/api/review/:id/reply", d.Auth.Authenticate(reviews.ReplyToReview))
	router.POST("/api/review/:id/like", d.Auth.Authenticate(reviews.LikeReview))
}

func AddWishlistRoutes(router *httprouter.Router, d Deps) {
	buyerOnly := middleware.Chain(d.Auth.Authenticate, d.Auth.RequireRoles(models.RoleBuyer))

	router.GET("/api/wishlist", buyerOnly(wishlist.GetWishlist))
	router.POST("/api/wishlist/:productId", buyerOnly(wishlist.AddToWishlist))
	router.DELETE("/api/wishlist/:productId", buyerOnly(wishlist.RemoveFromWishlist))
}

func AddSupportRoutes(router *httprouter.Router, d Deps) {
	adminOnly := middleware.Chain(d.Auth.Authenticate, d.Auth.RequireRoles(models.RoleAdmin))

	router.POST("/api/support/tickets", d.RateLimiter.Limit(d.Auth.Authenticate(support.CreateTicket)))
	router.GET("/api/support/tickets", d.Auth.Authenticate(support.ListTickets))
	router.GET("/api/support/tickets/:id", d.Auth.Authenticate(support.GetTicket))
	router.POST("/api/support/tickets/:id/replies", d.Auth.Authenticate(support.ReplyToTicket))
	router.PUT("/api/support/tickets/:id/status", adminOnly(support.UpdateTicketStatus))
}

func AddChatRoutes(router *httprouter.Router, d Deps) {
	router.POST("/api/chats/:userId", d.Auth.Authenticate(chats.InitChat))
	router.GET("/api/chats", d.Auth.Authenticate(chats.GetUserChats))
	router.GET("/api/chats/:chatId/messages", d.Auth.Authenticate(chats.GetMessages))
	router.GET("/ws/chat/:chatId", chats.WebSocketHandler(d.ChatHub, d.Auth))
}

func AddSearchRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/search", d.RateLimiter.Limit(search.Search))
}
