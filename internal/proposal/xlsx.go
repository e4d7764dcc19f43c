package proposal

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Proposal"

// XLSX writes the item summary and totals to a one-sheet workbook.
func XLSX(d Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	widths := []float64{14, 36, 18, 10, 8, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}
	lastCol := columns[len(columns)-1]

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	itemStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
		NumFmt: 4, // #,##0.00
	})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		NumFmt: 4,
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	title := "Proposal"
	if d.CompanyName != "" {
		title = d.CompanyName + " - Proposal"
	}
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)
	f.SetCellValue(sheetName, "A2", "Ref: "+d.Reference())
	f.SetCellValue(sheetName, "A3", sanitizeExcelCell("Client: "+d.Client.FullName()))
	f.SetCellValue(sheetName, "A4", "Date: "+d.Date.Format("2006-01-02"))

	headers := []string{"Category", "Item", "Substrate", "Qty", "UOM", "Total"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s6", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A6", lastCol+"6", headerStyle)

	row := 7
	for _, it := range d.Summary.Items {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+r, titleCase(string(it.Category)))
		f.SetCellValue(sheetName, "B"+r, sanitizeExcelCell(it.Name))
		f.SetCellValue(sheetName, "C"+r, sanitizeExcelCell(it.Substrate))
		f.SetCellValue(sheetName, "D"+r, it.Quantity)
		f.SetCellValue(sheetName, "E"+r, string(it.Unit))
		f.SetCellValue(sheetName, "F"+r, it.Total)
		f.SetCellStyle(sheetName, "A"+r, "E"+r, itemStyle)
		f.SetCellStyle(sheetName, "F"+r, "F"+r, moneyStyle)
		row++
	}

	row++
	t := d.Summary.Totals
	for _, line := range []struct {
		label string
		value float64
	}{
		{"Subtotal", t.Subtotal},
		{"Overhead", t.Overhead},
		{"Profit", t.Profit},
		{"Tax", t.Tax},
		{"Total", t.GrandTotal},
	} {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "E"+r, line.label+":")
		f.SetCellStyle(sheetName, "E"+r, "E"+r, labelStyle)
		f.SetCellValue(sheetName, "F"+r, line.value)
		f.SetCellStyle(sheetName, "F"+r, "F"+r, totalStyle)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prefixes values Excel would treat as a formula with a
// single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
