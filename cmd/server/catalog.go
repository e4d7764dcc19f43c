package main

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/Simplici0/estimator/internal/estimate"
	"github.com/Simplici0/estimator/internal/pricing"
	"github.com/Simplici0/estimator/internal/store"
)

func (s *server) handlePriceItemsList(w http.ResponseWriter, r *http.Request) {
	s.listPriceItems(w, r, true)
}

func (s *server) handleAdminPriceItemsList(w http.ResponseWriter, r *http.Request) {
	s.listPriceItems(w, r, false)
}

func (s *server) listPriceItems(w http.ResponseWriter, r *http.Request, onlyEnabled bool) {
	items, err := s.store.ListPriceItems(r.Context(), onlyEnabled)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) handleModifiersList(w http.ResponseWriter, r *http.Request) {
	mods, err := s.store.ListModifiers(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mods)
}

func (s *server) handleAdminPriceItemCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	p := store.PriceItem{
		Name:           strings.TrimSpace(r.FormValue("name")),
		Substrate:      strings.TrimSpace(r.FormValue("substrate")),
		PrepFinishText: strings.TrimSpace(r.FormValue("prep_finish_text")),
		Enabled:        true,
	}
	if p.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	var err error
	if p.Category, err = store.ParseCategory(strings.TrimSpace(r.FormValue("category"))); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	unit, ok := pricing.ParseUnit(r.FormValue("uom"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid uom")
		return
	}
	p.Unit = unit
	formula, ok := pricing.ParseFormulaKey(r.FormValue("formula_key"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid formula_key")
		return
	}
	p.Formula = formula
	if p.Rate, err = parseNonNegativeFloat(r.FormValue("rate"), "rate"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.UnitCost, err = floatOrZero(r.PostForm, "unit_cost"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if enabled := optionalBool(r.PostForm, "enabled"); enabled != nil {
		p.Enabled = *enabled
	}

	id, err := s.store.CreatePriceItem(r.Context(), p)
	if err != nil {
		s.fail(w, err)
		return
	}
	created, err := s.store.GetPriceItem(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *server) handleAdminPriceItemUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	p := store.PriceItemPatch{
		Name:           optionalString(r.PostForm, "name"),
		Substrate:      optionalString(r.PostForm, "substrate"),
		PrepFinishText: optionalString(r.PostForm, "prep_finish_text"),
		Enabled:        optionalBool(r.PostForm, "enabled"),
	}
	if p.Name != nil && *p.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if raw := optionalString(r.PostForm, "category"); raw != nil {
		category, err := store.ParseCategory(*raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		p.Category = &category
	}
	if raw := optionalString(r.PostForm, "uom"); raw != nil {
		unit, ok := pricing.ParseUnit(*raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid uom")
			return
		}
		p.Unit = &unit
	}
	if raw := optionalString(r.PostForm, "formula_key"); raw != nil {
		formula, ok := pricing.ParseFormulaKey(*raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid formula_key")
			return
		}
		p.Formula = &formula
	}
	if p.Rate, err = optionalFloat(r.PostForm, "rate", parseNonNegativeFloat); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.UnitCost, err = optionalFloat(r.PostForm, "unit_cost", parseNonNegativeFloat); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.UpdatePriceItem(r.Context(), id, p); err != nil {
		s.fail(w, err)
		return
	}
	item, err := s.store.GetPriceItem(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// adminModifier adds the whole percents the catalog screens edit.
type adminModifier struct {
	store.Modifier
	PricePercent float64 `json:"price_percent"`
	CostPercent  float64 `json:"cost_percent"`
}

func newAdminModifier(m store.Modifier) adminModifier {
	return adminModifier{
		Modifier:     m,
		PricePercent: pricing.FractionToPercent(m.Pct),
		CostPercent:  pricing.FractionToPercent(m.CostPct),
	}
}

func (s *server) handleAdminModifiersList(w http.ResponseWriter, r *http.Request) {
	mods, err := s.store.ListModifiers(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	out := make([]adminModifier, 0, len(mods))
	for _, m := range mods {
		out = append(out, newAdminModifier(m))
	}
	writeJSON(w, http.StatusOK, out)
}

// modifierCategory accepts a blank category, meaning the modifier applies to
// every section.
func modifierCategory(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	section, err := store.ParseCategory(raw)
	return string(section), err
}

// Modifier forms take whole percents; the store keeps fractions.
func (s *server) handleAdminModifierCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	m := store.Modifier{Label: strings.TrimSpace(r.FormValue("label"))}
	if m.Label == "" {
		writeError(w, http.StatusBadRequest, "label is required")
		return
	}
	var err error
	if m.Category, err = modifierCategory(strings.TrimSpace(r.FormValue("category"))); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pct, err := parseSignedPercent(r.FormValue("pct"), "pct")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	costPct, err := signedPercentOrZero(r.PostForm, "cost_pct")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	adj := pricing.AdjustmentFromPercent(costPct, pct)
	m.Pct, m.CostPct = adj.Price, adj.Cost

	id, err := s.store.CreateModifier(r.Context(), m)
	if err != nil {
		s.fail(w, err)
		return
	}
	m.ID = id
	writeJSON(w, http.StatusCreated, newAdminModifier(m))
}

func (s *server) handleAdminModifierUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	p := store.ModifierPatch{Label: optionalString(r.PostForm, "label")}
	if p.Label != nil && *p.Label == "" {
		writeError(w, http.StatusBadRequest, "label is required")
		return
	}
	if raw := optionalString(r.PostForm, "category"); raw != nil {
		category, err := modifierCategory(*raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		p.Category = &category
	}
	if p.Pct, err = optionalFraction(r.PostForm, "pct"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.CostPct, err = optionalFraction(r.PostForm, "cost_pct"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.UpdateModifier(r.Context(), id, p); err != nil {
		s.fail(w, err)
		return
	}
	s.handleAdminModifiersList(w, r)
}

func signedPercentOrZero(form url.Values, field string) (float64, error) {
	v, err := optionalFloat(form, field, parseSignedPercent)
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}

func optionalFraction(form url.Values, field string) (*float64, error) {
	v, err := optionalFloat(form, field, parseSignedPercent)
	if err != nil || v == nil {
		return nil, err
	}
	frac := pricing.PercentToFraction(*v)
	return &frac, nil
}

func (s *server) handleAdminUserCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	role, err := store.ParseRole(strings.TrimSpace(r.FormValue("role")))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	exists, err := s.store.UserExists(r.Context(), email)
	if err != nil {
		s.fail(w, err)
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "user already exists")
		return
	}

	hash, err := hashPassword(password)
	if err != nil {
		s.fail(w, err)
		return
	}
	id, err := s.store.CreateUser(r.Context(), email, hash, role)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, store.User{ID: id, Email: email, Role: role})
}

type quantityPreview struct {
	Quantity        float64 `json:"quantity"`
	Resolved        bool    `json:"resolved"`
	NameQuantity    float64 `json:"name_quantity"`
	FormulaQuantity float64 `json:"formula_quantity"`
}

// handleQuantityPreview evaluates a price item against ad-hoc measurements.
// The item is either a catalog entry (price_item_id) or described inline by
// name, uom and formula_key.
func (s *server) handleQuantityPreview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	item, err := s.previewItem(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	measure, err := previewContext(r.PostForm)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q, ok := estimate.Preview(item, measure)
	writeJSON(w, http.StatusOK, quantityPreview{
		Quantity:        q,
		Resolved:        ok,
		NameQuantity:    pricing.ResolveQuantity(item.Descriptor(), measure),
		FormulaQuantity: pricing.QuantityForFormula(item.Formula, measure),
	})
}

func (s *server) previewItem(r *http.Request) (store.PriceItem, error) {
	if raw := strings.TrimSpace(r.FormValue("price_item_id")); raw != "" {
		id, err := parseID(raw, "price_item_id")
		if err != nil {
			return store.PriceItem{}, badRequest(err.Error())
		}
		return s.store.GetPriceItem(r.Context(), id)
	}

	item := store.PriceItem{Name: strings.TrimSpace(r.FormValue("name"))}
	if item.Name == "" {
		return store.PriceItem{}, badRequest("name or price_item_id is required")
	}
	unit, ok := pricing.ParseUnit(r.FormValue("uom"))
	if !ok {
		return store.PriceItem{}, badRequest("invalid uom")
	}
	item.Unit = unit
	formula, ok := pricing.ParseFormulaKey(r.FormValue("formula_key"))
	if !ok {
		return store.PriceItem{}, badRequest("invalid formula_key")
	}
	item.Formula = formula
	return item, nil
}

func previewContext(form url.Values) (pricing.Context, error) {
	read := func(fields ...string) ([]float64, error) {
		out := make([]float64, len(fields))
		for i, f := range fields {
			v, err := floatOrZero(form, f)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	switch shape := form.Get("shape"); shape {
	case "room":
		v, err := read("length", "width", "height")
		if err != nil {
			return pricing.Context{}, err
		}
		return pricing.Context{Room: &pricing.Dimensions{Length: v[0], Width: v[1], Height: v[2]}}, nil
	case "perimeter":
		v, err := read("perimeter", "wall_height", "eaves_length", "eaves_depth")
		if err != nil {
			return pricing.Context{}, err
		}
		return pricing.Context{Perimeter: &pricing.ExteriorMeasure{
			Perimeter: v[0], WallHeight: v[1], EavesLength: v[2], EavesDepth: v[3],
		}}, nil
	case "elevation":
		v, err := read("length", "height", "eaves_length", "fascia_length")
		if err != nil {
			return pricing.Context{}, err
		}
		return pricing.Context{Elevation: &pricing.ElevationDimensions{
			Length: v[0], Height: v[1], EavesLength: v[2], FasciaLength: v[3],
		}}, nil
	case "":
		return pricing.Context{}, nil
	default:
		return pricing.Context{}, badRequest("invalid shape")
	}
}
