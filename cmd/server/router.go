package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mbranch/crud-api/internal/api"
	"github.com/mbranch/crud-api/internal/api/docs"
	apiMiddleware "github.com/mbranch/crud-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	authHandler := api.NewAuthHandler(app.keyVerifier, app.jwtService, app.forms, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	docsHandlers := docs.NewHandlers([]docs.ResourceInfo{
		{
			Name:          app.contacts.Config().Name,
			SearchColumns: app.contacts.Config().SearchColumns,
			Associations:  app.contacts.Config().Associations,
		},
		{
			Name:          app.organizations.Config().Name,
			SearchColumns: app.organizations.Config().SearchColumns,
			Associations:  app.organizations.Config().Associations,
		},
	})

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoint (public)
		r.Post("/auth/token", authHandler.Token)

		// Protected resource routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			app.contacts.Mount(r)
			app.organizations.Mount(r)
		})
	})

	docsHandlers.RegisterRoutes(r)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
