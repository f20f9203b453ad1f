// Package main: application assembly.
//
// newApp does the dependency wire-up shared by the serve command and the
// end-to-end tests:
//
//  1. Database (migrations applied)
//  2. Repositories
//  3. WebSocket hub
//  4. Services
//  5. Metrics
//  6. Handlers
//  7. Routes
//  8. Middleware chain and CORS
//
// Nothing is global; everything is built here and passed down.
package main

import (
	"context"
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/akinalp/bloglist/config"
	"github.com/akinalp/bloglist/database"
	"github.com/akinalp/bloglist/middleware"
	"github.com/akinalp/bloglist/pkg/logger"
	"github.com/akinalp/bloglist/ws"
)

type app struct {
	db      *database.DB
	repos   *Repositories
	svcs    *Services
	hub     *ws.Hub
	metrics *middleware.Metrics
	handler http.Handler

	stopHub context.CancelFunc
}

func newApp(cfg *config.Config, log zerolog.Logger) (*app, error) {
	// ─── 1. Database ───
	db, err := database.New(cfg.Database.Path, database.Migrations(), logger.Component(log, "database"))
	if err != nil {
		return nil, err
	}

	// ─── 2. Repositories ───
	repos := initRepositories(db.Conn)

	// ─── 3. WebSocket hub ───
	// Runs until Close; closing it drops every live connection.
	hub := ws.NewHub(logger.Component(log, "ws"))
	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	// ─── 4-6. Layers ───
	svcs := initServices(db.Conn, repos, hub, cfg, log)
	metrics := middleware.NewMetrics()
	h := initHandlers(svcs, hub, metrics, cfg)

	// ─── 7. Routes ───
	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Auth, repos.User, metrics)

	// ─── 8. Middleware chain ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: true,
	})

	handler := corsHandler.Handler(
		middleware.RequestLogger(logger.Component(log, "http"))(
			metrics.Middleware(mux),
		),
	)

	return &app{
		db:      db,
		repos:   repos,
		svcs:    svcs,
		hub:     hub,
		metrics: metrics,
		handler: handler,
		stopHub: stopHub,
	}, nil
}

// Close releases the database and stops background work.
func (a *app) Close() error {
	a.stopHub()
	a.svcs.Close()
	return a.db.Close()
}
