package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agrimart/auth"
	"agrimart/bids"
	"agrimart/chats"
	"agrimart/db"
	"agrimart/filemgr"
	"agrimart/globals"
	"agrimart/middleware"
	"agrimart/mq"
	"agrimart/notifications"
	"agrimart/orders"
	"agrimart/ratelim"
	"agrimart/rdx"
	"agrimart/routes"
	"agrimart/search"
	"agrimart/shipping"
	"agrimart/transactions"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s - %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

func healthCheck(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "ok")
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg := globals.LoadConfig()

	if err := db.Init(cfg); err != nil {
		log.Fatalf("mongo init failed: %v", err)
	}
	if err := rdx.Init(cfg); err != nil {
		log.Fatalf("redis init failed: %v", err)
	}
	filemgr.SetBaseDir(cfg.UploadDir)

	go mq.StartIndexingWorker(search.IndexEntity)

	hub := chats.NewHub()
	go hub.Run()

	notify := notifications.NewService()
	deps := routes.Deps{
		Auth:         middleware.NewAuthenticator(cfg),
		RateLimiter:  ratelim.NewRateLimiter(),
		AuthService:  auth.NewService(cfg),
		Orders:       orders.NewHandler(notify, cfg),
		Transactions: transactions.NewHandler(notify),
		Shipping:     shipping.NewHandler(notify),
		Bids:         bids.NewHandler(notify),
		ChatHub:      hub,
	}

	router := httprouter.New()
	router.GET("/health", healthCheck)
	routes.RoutesWrapper(router, deps)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		hub.Stop()
	})

	go func() {
		log.Printf("Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	if err := db.Close(ctx); err != nil {
		log.Printf("closing mongo: %v", err)
	}

	log.Println("Server stopped cleanly")
}
