package main

import (
	"fmt"
	"net/http"

	"github.com/Simplici0/estimator/internal/estimate"
	"github.com/Simplici0/estimator/internal/pricing"
	"github.com/Simplici0/estimator/internal/proposal"
)

func (s *server) handleLineCreate(w http.ResponseWriter, r *http.Request) {
	est, ok := s.estimateFromURL(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	itemID, err := parseID(r.FormValue("price_item_id"), "price_item_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	kind, ok := pricing.ParseScopeKind(r.FormValue("scope_kind"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid scope_kind")
		return
	}
	scope := pricing.Scope{Kind: kind}
	if kind != pricing.ScopePerimeter {
		if scope.ID, err = parseID(r.FormValue("scope_id"), "scope_id"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	in := estimate.AddLineInput{PriceItemID: itemID, Scope: scope}
	if in.Quantity, err = optionalFloat(r.PostForm, "quantity", parseNonNegativeFloat); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.ModifierIDs, err = parseIDList(r.PostForm["modifier_id"], "modifier_id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	line, err := s.estimates.AddLine(r.Context(), est.ID, in)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, line)
}

// handleLineUpdate sets the quantity and, when any modifier_id field is
// submitted, replaces the modifier selection. A single blank modifier_id
// clears it.
func (s *server) handleLineUpdate(w http.ResponseWriter, r *http.Request) {
	est, ok := s.estimateFromURL(w, r)
	if !ok {
		return
	}
	lineID, err := urlID(r, "lineID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	var u estimate.LineUpdate
	if u.Quantity, err = optionalFloat(r.PostForm, "quantity", parseNonNegativeFloat); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if raw, ok := r.PostForm["modifier_id"]; ok {
		ids, err := parseIDList(raw, "modifier_id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		u.ModifierIDs = &ids
	}

	line, err := s.estimates.UpdateLine(r.Context(), est.ID, lineID, u)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, line)
}

func (s *server) handleLineDelete(w http.ResponseWriter, r *http.Request) {
	s.deleteScope(w, r, "lineID", s.store.DeleteLine)
}

func (s *server) handleSummary(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	summary, err := s.estimates.Summary(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *server) loadProposal(w http.ResponseWriter, r *http.Request) (proposal.Document, bool) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return proposal.Document{}, false
	}
	doc, err := proposal.Load(r.Context(), s.store, s.estimates, s.cfg.CompanyName, id)
	if err != nil {
		s.fail(w, err)
		return proposal.Document{}, false
	}
	return doc, true
}

func (s *server) handleProposalText(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadProposal(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(proposal.Text(doc)))
}

func (s *server) handleProposalXLSX(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadProposal(w, r)
	if !ok {
		return
	}
	data, err := proposal.XLSX(doc)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeAttachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", doc.Reference()+".xlsx", data)
}

func (s *server) handleProposalPDF(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadProposal(w, r)
	if !ok {
		return
	}
	data, err := proposal.PDF(doc)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeAttachment(w, "application/pdf", doc.Reference()+".pdf", data)
}

func (s *server) handleNotesHTML(w http.ResponseWriter, r *http.Request) {
	est, ok := s.estimateFromURL(w, r)
	if !ok {
		return
	}
	html, err := proposal.NotesHTML(est.Notes)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}
