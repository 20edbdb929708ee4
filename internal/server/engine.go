package server

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/evenup-app/evenup/internal/handler"
	"github.com/evenup-app/evenup/internal/middleware"
	"github.com/evenup-app/evenup/pkg/event"
	"github.com/evenup-app/evenup/pkg/health"
)

func GetEngine(logger *slog.Logger, basePath string, authMiddleware middleware.AuthenticationMiddleware, eventHandler event.Handler) (*gin.Engine, error) {
	if err := handler.RegisterValidation(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sloggin.New(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.ErrorHandler())

	router := r.Group(basePath)

	router.GET("/health", health.Health)

	event.Routes(router, authMiddleware, eventHandler)

	return r, nil
}
