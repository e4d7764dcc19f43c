package main

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Simplici0/estimator/internal/store"
)

func (s *server) handleAreaCreate(w http.ResponseWriter, r *http.Request) {
	est, ok := s.estimateFromURL(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	a := store.Area{EstimateID: est.ID, Name: strings.TrimSpace(r.FormValue("name"))}
	if a.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	var err error
	if a.Length, err = floatOrZero(r.PostForm, "length"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if a.Width, err = floatOrZero(r.PostForm, "width"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if a.Height, err = floatOrZero(r.PostForm, "height"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.store.CreateArea(r.Context(), a)
	if err != nil {
		s.fail(w, err)
		return
	}
	created, err := s.store.GetArea(r.Context(), est.ID, id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *server) handleAreaUpdate(w http.ResponseWriter, r *http.Request) {
	est, ok := s.estimateFromURL(w, r)
	if !ok {
		return
	}
	areaID, err := urlID(r, "areaID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	p := store.AreaPatch{Name: optionalString(r.PostForm, "name")}
	if p.Name != nil && *p.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if p.Length, err = optionalFloat(r.PostForm, "length", parseNonNegativeFloat); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.Width, err = optionalFloat(r.PostForm, "width", parseNonNegativeFloat); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.Height, err = optionalFloat(r.PostForm, "height", parseNonNegativeFloat); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.UpdateArea(r.Context(), est.ID, areaID, p); err != nil {
		s.fail(w, err)
		return
	}
	a, err := s.store.GetArea(r.Context(), est.ID, areaID)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *server) handleAreaDelete(w http.ResponseWriter, r *http.Request) {
	s.deleteScope(w, r, "areaID", s.store.DeleteArea)
}

func (s *server) handleElevationDelete(w http.ResponseWriter, r *http.Request) {
	s.deleteScope(w, r, "elevationID", s.store.DeleteElevation)
}

func (s *server) handleCabinetGroupDelete(w http.ResponseWriter, r *http.Request) {
	s.deleteScope(w, r, "groupID", s.store.DeleteCabinetGroup)
}

func (s *server) deleteScope(w http.ResponseWriter, r *http.Request, param string, del func(ctx context.Context, estimateID, id int64) error) {
	est, ok := s.estimateFromURL(w, r)
	if !ok {
		return
	}
	id, err := urlID(r, param)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := del(r.Context(), est.ID, id); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleExteriorGet(w http.ResponseWriter, r *http.Request) {
	est, ok := s.estimateFromURL(w, r)
	if !ok {
		return
	}
	m, err := s.store.GetExteriorMeasure(r.Context(), est.ID)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// handleExteriorPut replaces the perimeter measurement. Omitted fields are
// stored as 0, except eaves depth which defaults to 2 ft.
func (s *server) handleExteriorPut(w http.ResponseWriter, r *http.Request) {
	est, ok := s.estimateFromURL(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	m := store.ExteriorMeasure{EstimateID: est.ID}
	for field, dst := range map[string]*float64{
		"perimeter":    &m.Perimeter,
		"wall_height":  &m.WallHeight,
		"eaves_length": &m.EavesLength,
		"eaves_depth":  &m.EavesDepth,
	} {
		v, err := floatOrZero(r.PostForm, field)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		*dst = v
	}

	saved, err := s.store.UpsertExteriorMeasure(r.Context(), m)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *server) handleElevationCreate(w http.ResponseWriter, r *http.Request) {
	est, ok := s.estimateFromURL(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	e := store.Elevation{EstimateID: est.ID, Name: strings.TrimSpace(r.FormValue("name"))}
	if e.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	for field, dst := range map[string]*float64{
		"length":        &e.Length,
		"height":        &e.Height,
		"eaves_length":  &e.EavesLength,
		"fascia_length": &e.FasciaLength,
	} {
		v, err := floatOrZero(r.PostForm, field)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		*dst = v
	}

	id, err := s.store.CreateElevation(r.Context(), e)
	if err != nil {
		s.fail(w, err)
		return
	}
	created, err := s.store.GetElevation(r.Context(), est.ID, id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *server) handleCabinetGroupCreate(w http.ResponseWriter, r *http.Request) {
	est, ok := s.estimateFromURL(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	g := store.CabinetGroup{EstimateID: est.ID, Name: strings.TrimSpace(r.FormValue("name"))}
	if g.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	id, err := s.store.CreateCabinetGroup(r.Context(), g)
	if err != nil {
		s.fail(w, err)
		return
	}
	created, err := s.store.GetCabinetGroup(r.Context(), est.ID, id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
