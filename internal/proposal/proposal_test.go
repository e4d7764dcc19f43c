package proposal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/estimator/internal/estimate"
	"github.com/Simplici0/estimator/internal/pricing"
	"github.com/Simplici0/estimator/internal/store"
)

func sampleDocument() Document {
	return Document{
		CompanyName: "Brush & Roller Co",
		Date:        time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Client: store.Client{
			FirstName: "Ana",
			LastName:  "Lima",
			Address1:  "12 Elm St",
			City:      "Austin",
			State:     "TX",
			Postal:    "78701",
		},
		PrepTexts: []string{"Scrape, sand and prime bare wood", "Two coats satin finish"},
		Summary: estimate.Summary{
			Estimate: store.Estimate{Reference: "b6f1c2"},
			Items: []estimate.ItemSummary{
				{Name: "Doors", Substrate: "solid_wood", Category: pricing.SectionCabinets, Unit: pricing.UnitEach, Quantity: 6, Total: 270},
				{Name: "Ceiling", Substrate: "drywall", Category: pricing.SectionInterior, Unit: pricing.UnitSqFt, Quantity: 120, Total: 132},
				{Name: "=HYPERLINK(\"x\")", Category: pricing.SectionInterior, Unit: pricing.UnitEach, Quantity: 1, Total: 10},
			},
			Totals: pricing.EstimateTotals(412, 10, 15, 8),
		},
	}
}

func TestScopeOfWorkListsPropertyAndPrepTexts(t *testing.T) {
	d := sampleDocument()
	sow := ScopeOfWork(d.Client, d.PrepTexts)

	for _, want := range []string{
		"Client: Ana Lima",
		"Property: 12 Elm St\nAustin, TX 78701",
		"WORK TO BE PERFORMED:",
		"• Two coats satin finish",
		"EXCLUSIONS:",
		"• Moving of furniture or belongings",
	} {
		if !strings.Contains(sow, want) {
			t.Fatalf("scope of work missing %q:\n%s", want, sow)
		}
	}

	bare := ScopeOfWork(store.Client{FirstName: "Lee"}, nil)
	if strings.Contains(bare, "Property:") || strings.Contains(bare, "WORK TO BE PERFORMED") {
		t.Fatalf("unexpected sections in bare scope of work:\n%s", bare)
	}
}

func TestTextIncludesTotalsAndTerms(t *testing.T) {
	text := Text(sampleDocument())

	for _, want := range []string{
		"Brush & Roller Co",
		"PROPOSAL b6f1c2",
		"Date: 2026-03-14",
		"SUMMARY BY CATEGORY",
		"Doors (solid wood)",
		"$556.20",
		"50% deposit required to begin work",
		"Estimate valid for 30 days",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("proposal text missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Exterior") {
		t.Fatalf("empty category should be skipped:\n%s", text)
	}
}

func TestCategoriesRollUpItemSummaries(t *testing.T) {
	cats := sampleDocument().Categories()
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %+v", cats)
	}
	if cats[0].Category != pricing.SectionInterior || cats[0].Total != 142 || cats[0].ItemTypes != 2 {
		t.Fatalf("unexpected interior roll-up: %+v", cats[0])
	}
	if cats[1].Category != pricing.SectionCabinets || cats[1].Total != 270 {
		t.Fatalf("unexpected cabinets roll-up: %+v", cats[1])
	}
}

func TestQuantityTrimsTrailingZeros(t *testing.T) {
	cases := map[float64]string{352: "352", 1.5: "1.5", 0: "0", 12.25: "12.25", 100: "100"}
	for in, want := range cases {
		if got := quantity(in); got != want {
			t.Fatalf("quantity(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestNotesHTMLRendersMarkdownAndDropsRawHTML(t *testing.T) {
	html, err := NotesHTML("Use **low VOC** paint\n\n<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("NotesHTML() error = %v", err)
	}
	if !strings.Contains(html, "<strong>low VOC</strong>") {
		t.Fatalf("expected bold text, got %q", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("raw html should be omitted, got %q", html)
	}
}

func TestXLSXWritesItemsAndSanitizesCells(t *testing.T) {
	out, err := XLSX(sampleDocument())
	if err != nil {
		t.Fatalf("XLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Proposal" {
		t.Fatalf("expected sheet Proposal, got %v", sheets)
	}
	title, _ := f.GetCellValue(sheetName, "A1")
	if title != "Brush & Roller Co - Proposal" {
		t.Fatalf("unexpected title %q", title)
	}
	name, _ := f.GetCellValue(sheetName, "B7")
	if name != "Doors" {
		t.Fatalf("first item = %q, want Doors", name)
	}
	injected, _ := f.GetCellValue(sheetName, "B9")
	if !strings.HasPrefix(injected, "'=") {
		t.Fatalf("formula not sanitized: %q", injected)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	cases := map[string]string{"": "", "=1+1": "'=1+1", "@cmd": "'@cmd", "Walls": "Walls", "-5": "'-5"}
	for in, want := range cases {
		if got := sanitizeExcelCell(in); got != want {
			t.Fatalf("sanitizeExcelCell(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPDFProducesDocument(t *testing.T) {
	out, err := PDF(sampleDocument())
	if err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a pdf, starts with %q", out[:min(8, len(out))])
	}
}
