package main

import (
	"net/url"
	"testing"
)

func TestParsePercentBounds(t *testing.T) {
	if v, err := parsePercent("12.5", "tax_percent"); err != nil || v != 12.5 {
		t.Fatalf("expected 12.5, got %v (%v)", v, err)
	}
	for _, raw := range []string{"-1", "101", "abc", ""} {
		if _, err := parsePercent(raw, "tax_percent"); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseSignedPercentAllowsDiscounts(t *testing.T) {
	if v, err := parseSignedPercent("-15", "pct"); err != nil || v != -15 {
		t.Fatalf("expected -15, got %v (%v)", v, err)
	}
	if _, err := parseSignedPercent("-101", "pct"); err == nil {
		t.Fatalf("expected error below -100")
	}
}

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList([]string{"3", " ", "7"}, "modifier_id")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 7 {
		t.Fatalf("unexpected ids: %v", ids)
	}

	if ids, err := parseIDList([]string{""}, "modifier_id"); err != nil || len(ids) != 0 {
		t.Fatalf("expected an empty list, got %v (%v)", ids, err)
	}
	if _, err := parseIDList([]string{"0"}, "modifier_id"); err == nil {
		t.Fatalf("expected error for id 0")
	}
}

func TestOptionalFields(t *testing.T) {
	form := url.Values{}
	form.Set("notes", "  gate code  ")
	form.Set("rate", "2.5")
	form.Set("enabled", "on")

	if v := optionalString(form, "notes"); v == nil || *v != "gate code" {
		t.Fatalf("unexpected notes: %v", v)
	}
	if v := optionalString(form, "missing"); v != nil {
		t.Fatalf("expected nil for an absent field, got %q", *v)
	}

	rate, err := optionalFloat(form, "rate", parseNonNegativeFloat)
	if err != nil || rate == nil || *rate != 2.5 {
		t.Fatalf("unexpected rate: %v (%v)", rate, err)
	}
	if v, err := optionalFloat(form, "unit_cost", parseNonNegativeFloat); err != nil || v != nil {
		t.Fatalf("expected nil unit_cost, got %v (%v)", v, err)
	}

	if v := optionalBool(form, "enabled"); v == nil || !*v {
		t.Fatalf("expected enabled true")
	}

	zero, err := floatOrZero(form, "width")
	if err != nil || zero != 0 {
		t.Fatalf("expected 0 for a missing width, got %v (%v)", zero, err)
	}
	form.Set("width", "-3")
	if _, err := floatOrZero(form, "width"); err == nil {
		t.Fatalf("expected error for a negative width")
	}
}

func TestPreviewContextShapes(t *testing.T) {
	form := url.Values{"shape": {"elevation"}, "length": {"40"}, "height": {"10"}}
	ctx, err := previewContext(form)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ctx.Elevation == nil || ctx.Elevation.Length != 40 || ctx.Room != nil {
		t.Fatalf("unexpected context: %+v", ctx)
	}

	if ctx, err := previewContext(url.Values{}); err != nil || ctx.Room != nil || ctx.Perimeter != nil || ctx.Elevation != nil {
		t.Fatalf("expected an empty context, got %+v (%v)", ctx, err)
	}
	if _, err := previewContext(url.Values{"shape": {"dome"}}); err == nil {
		t.Fatalf("expected error for an unknown shape")
	}
}
