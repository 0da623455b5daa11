package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	accountHandler "github.com/dkrasnov/kopilka/internal/http/account"
	"github.com/dkrasnov/kopilka/internal/http/auth"
	goalHandler "github.com/dkrasnov/kopilka/internal/http/goal"
	"github.com/dkrasnov/kopilka/internal/http/importcsv"
	txHandler "github.com/dkrasnov/kopilka/internal/http/transaction"
)

func New(
	issuer *auth.Issuer,
	accountsV1 *accountHandler.Handler,
	transactionsV1 *txHandler.Handler,
	goalsV1 *goalHandler.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			accountsV1.PublicRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(issuer.Middleware)

			r.Route("/account", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				accountsV1.Routes(r)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				transactionsV1.Routes(r)
			})

			r.Route("/goals", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				goalsV1.Routes(r)
			})

			r.Route("/import", importV1.Routes)

			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				accountsV1.AdminRoutes(r)
			})
		})
	})

	return router
}
