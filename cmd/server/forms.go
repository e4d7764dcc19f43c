package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func parseNonNegativeFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be greater than or equal to 0", field)
	}
	return value, nil
}

func parsePercent(raw, field string) (float64, error) {
	value, err := parseNonNegativeFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value > 100 {
		return 0, fmt.Errorf("%s must be between 0 and 100", field)
	}
	return value, nil
}

func parsePositiveFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", field)
	}
	return value, nil
}

// parseSignedPercent accepts discounts as negative percents down to -100.
func parseSignedPercent(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	if value < -100 {
		return 0, fmt.Errorf("%s must be greater than or equal to -100", field)
	}
	return value, nil
}

func parseID(raw, field string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", field)
	}
	return id, nil
}

func urlID(r *http.Request, param string) (int64, error) {
	return parseID(chi.URLParam(r, param), param)
}

// parseIDList reads every value of a repeated form field; blank values are
// skipped so an empty submission clears the list.
func parseIDList(values []string, field string) ([]int64, error) {
	ids := make([]int64, 0, len(values))
	for _, raw := range values {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		id, err := parseID(raw, field)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// optionalString returns nil when the field was not submitted at all.
func optionalString(form url.Values, field string) *string {
	if _, ok := form[field]; !ok {
		return nil
	}
	v := strings.TrimSpace(form.Get(field))
	return &v
}

func optionalFloat(form url.Values, field string, parse func(raw, field string) (float64, error)) (*float64, error) {
	if _, ok := form[field]; !ok {
		return nil, nil
	}
	v, err := parse(form.Get(field), field)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalBool(form url.Values, field string) *bool {
	if _, ok := form[field]; !ok {
		return nil
	}
	v := form.Get(field) == "1" || form.Get(field) == "true" || form.Get(field) == "on"
	return &v
}

// floatOrZero reads an optional numeric field, treating absence as 0.
func floatOrZero(form url.Values, field string) (float64, error) {
	v, err := optionalFloat(form, field, parseNonNegativeFloat)
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}
