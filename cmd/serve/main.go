package main

import (
	"context"
	"fmt"
	stdlog "log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/evenup-app/evenup/internal/log"
	"github.com/evenup-app/evenup/internal/middleware"
	"github.com/evenup-app/evenup/internal/server"
	"github.com/evenup-app/evenup/pkg/config"
	"github.com/evenup-app/evenup/pkg/event"
	"github.com/evenup-app/evenup/pkg/storage"
	"github.com/evenup-app/evenup/pkg/token"
)

func main() {
	if err := run(); err != nil {
		stdlog.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		stdlog.Println("No .env file found, using process environment")
	}

	cfg := config.New()

	logger := slog.New(log.New(slog.NewJSONHandler(os.Stdout, nil)))
	slog.SetDefault(logger)

	ctx := context.Background()
	client, collection, err := storage.NewMongoDB(ctx, cfg.MongoDB)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	tokenService := token.NewService(cfg.Authentication.SecretKey)

	eventRepository := event.NewRepository(collection)
	eventService := event.NewService(logger, eventRepository, tokenService)
	eventHandler := event.NewHandler(eventService)

	authentication := middleware.NewAuthentication(tokenService)

	r, err := server.GetEngine(logger, cfg.BasePath, authentication, eventHandler)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Server starting", "port", cfg.ServerPort)
	return r.Run(fmt.Sprintf(":%d", cfg.ServerPort))
}
