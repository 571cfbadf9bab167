package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"todo-backend/auth"
	"todo-backend/config"
	"todo-backend/handlers"
	"todo-backend/logger"
	"todo-backend/middleware"
	"todo-backend/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		slog.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.DBName)
	users := store.NewUsers(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		slog.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}
	todos := store.NewTodos(db)

	errorLog := logger.New(db.Collection("logs"), slog.Default())
	tokens := auth.NewTokenService(cfg.JWTSecret)
	authHandler := handlers.NewAuthHandler(users, tokens, errorLog, cfg.Production())
	todoHandler := handlers.NewTodoHandler(todos, errorLog, cfg.Production())
	requireAuth := middleware.RequireAuth(tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", health)
	mux.HandleFunc("POST /auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/forgot-password", authHandler.ForgotPassword)
	mux.HandleFunc("POST /auth/reset-password", authHandler.ResetPassword)
	mux.HandleFunc("POST /todos", requireAuth(todoHandler.Create))
	mux.HandleFunc("GET /todos", requireAuth(todoHandler.List))
	mux.HandleFunc("PUT /todos/{id}", requireAuth(todoHandler.Update))
	mux.HandleFunc("PATCH /todos/{id}/toggle", requireAuth(todoHandler.Toggle))
	mux.HandleFunc("DELETE /todos/{id}", requireAuth(todoHandler.Delete))

	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
