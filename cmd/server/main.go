package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/estimator/internal/config"
	"github.com/Simplici0/estimator/internal/db"
	"github.com/Simplici0/estimator/internal/estimate"
	"github.com/Simplici0/estimator/internal/migrations"
	"github.com/Simplici0/estimator/internal/seed"
	"github.com/Simplici0/estimator/internal/store"
)

type server struct {
	cfg       config.Config
	auth      *authService
	store     *store.Store
	estimates *estimate.Service
}

func newServer(cfg config.Config, st *store.Store) *server {
	return &server{
		cfg:       cfg,
		auth:      newAuthService(st, cfg.SessionSecret),
		store:     st,
		estimates: estimate.New(st),
	}
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
	}

	stats, err := seed.Run(context.Background(), database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		CatalogPath:   cfg.CatalogPath,
	})
	if err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}
	log.Printf("seed complete: %d inserts, %d updates", stats.Inserts, stats.Updates)

	srv := newServer(cfg, store.New(database))

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Use(editorsOnlyForWrites)

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", s.handleClientsList)
			r.Post("/", s.handleClientCreate)
			r.Get("/{id}", s.handleClientGet)
			r.Patch("/{id}", s.handleClientUpdate)
		})

		r.Route("/estimates", func(r chi.Router) {
			r.Get("/", s.handleEstimatesList)
			r.Post("/", s.handleEstimateCreate)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleEstimateGet)
				r.Patch("/", s.handleEstimateUpdate)

				r.Post("/areas", s.handleAreaCreate)
				r.Patch("/areas/{areaID}", s.handleAreaUpdate)
				r.Delete("/areas/{areaID}", s.handleAreaDelete)

				r.Get("/exterior", s.handleExteriorGet)
				r.Put("/exterior", s.handleExteriorPut)

				r.Post("/elevations", s.handleElevationCreate)
				r.Delete("/elevations/{elevationID}", s.handleElevationDelete)

				r.Post("/cabinet-groups", s.handleCabinetGroupCreate)
				r.Delete("/cabinet-groups/{groupID}", s.handleCabinetGroupDelete)

				r.Post("/lines", s.handleLineCreate)
				r.Patch("/lines/{lineID}", s.handleLineUpdate)
				r.Delete("/lines/{lineID}", s.handleLineDelete)

				r.Get("/summary", s.handleSummary)
				r.Get("/proposal.txt", s.handleProposalText)
				r.Get("/proposal.xlsx", s.handleProposalXLSX)
				r.Get("/proposal.pdf", s.handleProposalPDF)
				r.Get("/notes.html", s.handleNotesHTML)
			})
		})

		r.Get("/price-items", s.handlePriceItemsList)
		r.Get("/modifiers", s.handleModifiersList)
		r.Post("/quantity/preview", s.handleQuantityPreview)

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireRole(store.RoleAdmin))
			r.Get("/price-items", s.handleAdminPriceItemsList)
			r.Post("/price-items", s.handleAdminPriceItemCreate)
			r.Patch("/price-items/{id}", s.handleAdminPriceItemUpdate)
			r.Get("/modifiers", s.handleAdminModifiersList)
			r.Post("/modifiers", s.handleAdminModifierCreate)
			r.Patch("/modifiers/{id}", s.handleAdminModifierUpdate)
			r.Post("/users", s.handleAdminUserCreate)
		})
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DB().PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	valid, err := s.auth.validateCredentials(r.Context(), email, password)
	if err != nil {
		s.fail(w, err)
		return
	}
	if !valid {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.auth.setSessionCookie(w, email)
	writeJSON(w, http.StatusOK, map[string]string{"email": email})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestError is a validation failure raised below the handler.
type requestError string

func (e requestError) Error() string { return string(e) }

func badRequest(msg string) error { return requestError(msg) }

// fail maps domain errors onto status codes; anything unrecognised is logged
// and reported as a 500 without details.
func (s *server) fail(w http.ResponseWriter, err error) {
	var reqErr requestError
	switch {
	case errors.As(err, &reqErr):
		writeError(w, http.StatusBadRequest, reqErr.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalidStatus),
		errors.Is(err, store.ErrInvalidRole),
		errors.Is(err, store.ErrInvalidSection),
		errors.Is(err, estimate.ErrScopeNotFound),
		errors.Is(err, estimate.ErrPriceItemDisabled),
		errors.Is(err, estimate.ErrUnknownModifier):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
