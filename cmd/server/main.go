package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/neon-pong/backend/auth"
	"github.com/neon-pong/backend/config"
	"github.com/neon-pong/backend/leaderboard"
	"github.com/neon-pong/backend/room"
	"github.com/neon-pong/backend/wsserver"
)

func main() {
	cfg := config.Load()

	store := buildLeaderboardStore(cfg)

	users := auth.NewUserStore()
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	authHandler := auth.NewHandler(users, tokens)
	leaderboardHandler := leaderboard.NewHandler(store)
	relay := wsserver.NewHandler(room.NewRegistry())

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.Handle("/api/leaderboard", leaderboardHandler)
	mux.Handle("/ws", relay)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[server] listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("[server] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("[server] %v", err)
	}
}

// buildLeaderboardStore picks a backend from the configuration: postgres
// when DATABASE_URL is set, mirrored into redis when REDIS_ADDR is set,
// in-memory otherwise.
func buildLeaderboardStore(cfg config.Config) leaderboard.Store {
	var store leaderboard.Store = leaderboard.NewMemStore()

	if cfg.DatabaseURL != "" {
		pg, err := leaderboard.NewPGStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("[server] failed to connect to database: %v", err)
		}
		log.Println("[server] leaderboard backed by postgres")
		store = pg
	}

	if cfg.RedisAddr != "" {
		store = leaderboard.NewCachedStore(store, leaderboard.NewCache(cfg.RedisAddr))
		log.Println("[server] leaderboard mirrored to redis")
	}

	return store
}

// WebSocket handshakes go through /ws; everything under /api is plain
// HTTP and gets permissive CORS for browser clients.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
