package proposal

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var grey = &props.Color{Red: 100, Green: 100, Blue: 100}

// PDF renders the printable proposal.
func PDF(d Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, d)
	addScopeOfWork(m, d)
	addCategories(m, d)
	addItems(m, d)
	addTotals(m, d)
	addTerms(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate proposal pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, d Document) {
	m.AddRows(
		row.New(10).Add(
			col.New(7).Add(text.New(d.CompanyName, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Left})),
			col.New(5).Add(text.New("PROPOSAL", props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right})),
		),
		row.New(6).Add(
			col.New(7).Add(text.New("Prepared for "+d.Client.FullName(), props.Text{Size: 9, Align: align.Left, Color: grey})),
			col.New(5).Add(text.New("Ref: "+d.Reference(), props.Text{Size: 8, Align: align.Right})),
		),
		row.New(6).Add(
			col.New(12).Add(text.New("Date: "+d.Date.Format("2006-01-02"), props.Text{Size: 8, Align: align.Right})),
		),
	)
	m.AddRows(row.New(4))
}

func addScopeOfWork(m core.Maroto, d Document) {
	m.AddRows(row.New(7).Add(col.New(12).Add(text.New("SCOPE OF WORK", props.Text{Size: 10, Style: fontstyle.Bold}))))
	for _, t := range d.PrepTexts {
		m.AddRows(row.New(5).Add(col.New(12).Add(text.New("• "+t, props.Text{Size: 8, Left: 3}))))
	}
	m.AddRows(
		row.New(10).Add(col.New(12).Add(text.New(
			"All work will be performed in a professional manner using quality materials and proven techniques. Work area will be protected and cleaned upon completion.",
			props.Text{Size: 8, Top: 2, Color: grey},
		))),
		row.New(4),
	)
}

func addCategories(m core.Maroto, d Document) {
	cats := d.Categories()
	if len(cats) == 0 {
		return
	}
	cols := make([]core.Col, 0, len(cats))
	size := 12 / len(cats)
	for _, c := range cats {
		cols = append(cols, col.New(size).Add(
			text.New(titleCase(string(c.Category)), props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center}),
			text.New(money(c.Total), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Center, Top: 4}),
			text.New(fmt.Sprintf("%d item types", c.ItemTypes), props.Text{Size: 7, Align: align.Center, Top: 10, Color: grey}),
		))
	}
	m.AddRows(row.New(16).Add(cols...), row.New(4))
}

func addItems(m core.Maroto, d Document) {
	header := props.Text{Size: 8, Style: fontstyle.Bold}
	m.AddRows(row.New(7).Add(
		col.New(6).Add(text.New("Item", header)),
		col.New(2).Add(text.New("Qty", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right})),
		col.New(1).Add(text.New("UOM", header)),
		col.New(3).Add(text.New("Total", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right})),
	))
	for _, it := range d.Summary.Items {
		m.AddRows(row.New(6).Add(
			col.New(6).Add(text.New(itemLabel(it), props.Text{Size: 8})),
			col.New(2).Add(text.New(quantity(it.Quantity), props.Text{Size: 8, Align: align.Right})),
			col.New(1).Add(text.New(string(it.Unit), props.Text{Size: 8})),
			col.New(3).Add(text.New(money(it.Total), props.Text{Size: 8, Align: align.Right})),
		))
	}
	m.AddRows(row.New(4))
}

func addTotals(m core.Maroto, d Document) {
	t := d.Summary.Totals
	label := props.Text{Size: 9, Align: align.Right}
	value := props.Text{Size: 9, Align: align.Right}
	for _, line := range []struct {
		name  string
		value float64
	}{
		{"Subtotal", t.Subtotal},
		{"Overhead", t.Overhead},
		{"Profit", t.Profit},
		{"Tax", t.Tax},
	} {
		m.AddRows(row.New(6).Add(
			col.New(9).Add(text.New(line.name, label)),
			col.New(3).Add(text.New(money(line.value), value)),
		))
	}
	m.AddRows(row.New(9).Add(
		col.New(9).Add(text.New("TOTAL", props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right})),
		col.New(3).Add(text.New(money(t.GrandTotal), props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right})),
	))
	m.AddRows(row.New(6))
}

func addTerms(m core.Maroto) {
	m.AddRows(row.New(7).Add(col.New(12).Add(text.New("TERMS & CONDITIONS", props.Text{Size: 9, Style: fontstyle.Bold}))))
	for _, term := range Terms {
		m.AddRows(row.New(5).Add(col.New(12).Add(text.New("• "+term, props.Text{Size: 8, Color: grey}))))
	}
}
