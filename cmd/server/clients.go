package main

import (
	"net/http"
	"strings"

	"github.com/Simplici0/estimator/internal/store"
)

func (s *server) handleClientsList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	clients, err := s.store.ListClients(r.Context(), query)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (s *server) handleClientCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	c := store.Client{
		FirstName: strings.TrimSpace(r.FormValue("first_name")),
		LastName:  strings.TrimSpace(r.FormValue("last_name")),
		Phone:     strings.TrimSpace(r.FormValue("phone")),
		Email:     strings.TrimSpace(r.FormValue("email")),
		Address1:  strings.TrimSpace(r.FormValue("address1")),
		Address2:  strings.TrimSpace(r.FormValue("address2")),
		City:      strings.TrimSpace(r.FormValue("city")),
		State:     strings.TrimSpace(r.FormValue("state")),
		Postal:    strings.TrimSpace(r.FormValue("postal")),
	}
	if c.FirstName == "" {
		writeError(w, http.StatusBadRequest, "first_name is required")
		return
	}

	id, err := s.store.CreateClient(r.Context(), c)
	if err != nil {
		s.fail(w, err)
		return
	}
	created, err := s.store.GetClient(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *server) handleClientGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := s.store.GetClient(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *server) handleClientUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	p := store.ClientPatch{
		FirstName: optionalString(r.PostForm, "first_name"),
		LastName:  optionalString(r.PostForm, "last_name"),
		Phone:     optionalString(r.PostForm, "phone"),
		Email:     optionalString(r.PostForm, "email"),
		Address1:  optionalString(r.PostForm, "address1"),
		Address2:  optionalString(r.PostForm, "address2"),
		City:      optionalString(r.PostForm, "city"),
		State:     optionalString(r.PostForm, "state"),
		Postal:    optionalString(r.PostForm, "postal"),
	}
	if p.FirstName != nil && *p.FirstName == "" {
		writeError(w, http.StatusBadRequest, "first_name is required")
		return
	}

	if err := s.store.UpdateClient(r.Context(), id, p); err != nil {
		s.fail(w, err)
		return
	}
	s.handleClientGet(w, r)
}
