package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Simplici0/estimator/internal/store"
)

type estimateDetail struct {
	Estimate      store.Estimate         `json:"estimate"`
	Client        store.Client           `json:"client"`
	Areas         []store.Area           `json:"areas"`
	Exterior      *store.ExteriorMeasure `json:"exterior"`
	Elevations    []store.Elevation      `json:"elevations"`
	CabinetGroups []store.CabinetGroup   `json:"cabinet_groups"`
	Lines         []store.LineRecord     `json:"lines"`
}

func (s *server) handleEstimatesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	items, err := s.store.ListEstimates(r.Context(), query)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) handleEstimateCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	clientID, err := parseID(r.FormValue("client_id"), "client_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := s.store.GetClient(r.Context(), clientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "unknown client_id")
			return
		}
		s.fail(w, err)
		return
	}

	in := store.NewEstimate{
		ClientID:        clientID,
		ScheduledDate:   strings.TrimSpace(r.FormValue("scheduled_date")),
		Notes:           r.FormValue("notes"),
		OverheadPercent: s.cfg.DefaultOverheadPercent,
		ProfitPercent:   s.cfg.DefaultProfitPercent,
		TaxPercent:      s.cfg.DefaultTaxPercent,
	}
	for field, dst := range map[string]*float64{
		"overhead_percent": &in.OverheadPercent,
		"profit_percent":   &in.ProfitPercent,
		"tax_percent":      &in.TaxPercent,
	} {
		v, err := optionalFloat(r.PostForm, field, parsePercent)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if v != nil {
			*dst = *v
		}
	}
	if user, ok := currentUser(r); ok {
		in.CreatedBy = user.ID
	}

	est, err := s.store.CreateEstimate(r.Context(), in)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, est)
}

func (s *server) handleEstimateGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx := r.Context()

	var d estimateDetail
	if d.Estimate, err = s.store.GetEstimate(ctx, id); err != nil {
		s.fail(w, err)
		return
	}
	if d.Client, err = s.store.GetClient(ctx, d.Estimate.ClientID); err != nil {
		s.fail(w, err)
		return
	}
	if d.Areas, err = s.store.ListAreas(ctx, id); err != nil {
		s.fail(w, err)
		return
	}
	ext, err := s.store.GetExteriorMeasure(ctx, id)
	switch {
	case err == nil:
		d.Exterior = &ext
	case !errors.Is(err, store.ErrNotFound):
		s.fail(w, err)
		return
	}
	if d.Elevations, err = s.store.ListElevations(ctx, id); err != nil {
		s.fail(w, err)
		return
	}
	if d.CabinetGroups, err = s.store.ListCabinetGroups(ctx, id); err != nil {
		s.fail(w, err)
		return
	}
	if d.Lines, err = s.store.ListLines(ctx, id); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *server) handleEstimateUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	p := store.EstimatePatch{
		ScheduledDate: optionalString(r.PostForm, "scheduled_date"),
		Notes:         optionalString(r.PostForm, "notes"),
	}
	if raw := optionalString(r.PostForm, "status"); raw != nil {
		status, err := store.ParseStatus(*raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		p.Status = &status
	}
	if p.OverheadPercent, err = optionalFloat(r.PostForm, "overhead_percent", parsePercent); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.ProfitPercent, err = optionalFloat(r.PostForm, "profit_percent", parsePercent); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.TaxPercent, err = optionalFloat(r.PostForm, "tax_percent", parsePercent); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.UpdateEstimate(r.Context(), id, p); err != nil {
		s.fail(w, err)
		return
	}
	est, err := s.store.GetEstimate(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

// estimateFromURL loads the estimate named in the path so nested resources
// answer 404 for a missing parent.
func (s *server) estimateFromURL(w http.ResponseWriter, r *http.Request) (store.Estimate, bool) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return store.Estimate{}, false
	}
	est, err := s.store.GetEstimate(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return store.Estimate{}, false
	}
	return est, true
}
