// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/xinkuaihuo/wellbeing-engine/cmd/wellbeing-api/handlers"
	"github.com/xinkuaihuo/wellbeing-engine/cmd/wellbeing-api/middleware"
	"github.com/xinkuaihuo/wellbeing-engine/internal/config"
	"github.com/xinkuaihuo/wellbeing-engine/internal/observability"
)

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config, app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(cfg.Server.ReadTimeout))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	chatHandler := handlers.NewChatHandler(logger, app.Router, app.Sessions)
	recommendHandler := handlers.NewRecommendHandler(logger, app.Search, cfg.Retrieval.PageSize)
	nearbyHandler := handlers.NewNearbyHandler(logger, app.Router)
	adminHandler := handlers.NewAdminHandler(logger, app.Taxonomy)

	r.Post("/chat", chatHandler.Chat)
	r.Get("/history", chatHandler.History)
	r.Post("/recommend", recommendHandler.Recommend)
	r.Post("/nearby", nearbyHandler.Nearby)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/reload-keywords", adminHandler.ReloadKeywords)
	})

	return r
}
