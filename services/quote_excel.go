package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateQuoteExcel creates the internal Excel workbook for a quotation.
// Unlike the customer PDF it includes purchase cost and profit figures.
func GenerateQuoteExcel(data QuoteExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := data.QuoteNumber
	if sheetName == "" {
		sheetName = "Quotation"
	}
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E"}
	lastCol := columns[len(columns)-1]
	widths := []float64{48, 10, 10, 16, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}
	groupStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DEE2E6"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create group style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
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
	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}
	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// Header rows.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	title := "Quotation"
	if data.CustomerName != "" {
		title = "Quotation - " + data.CustomerName
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if data.QuoteNumber != "" {
		if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge quote number: %w", err)
		}
		f.SetCellValue(sheetName, "A2", "Quote #: "+data.QuoteNumber)
		f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)
	}
	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A3", fmt.Sprintf("Date: %s | %s", data.CreatedDate, systemLabel(data.SystemType, data.ChannelCount)))
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// Grouped item rows.
	row := 5
	for _, group := range data.Groups {
		rowStr := fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr); err != nil {
			return nil, fmt.Errorf("merge group row: %w", err)
		}
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(group.Title))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, groupStyle)
		row++

		rowStr = fmt.Sprintf("%d", row)
		headers := []string{"Item", "Qty", "Unit", "Unit Price", "Amount"}
		for i, h := range headers {
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", columns[i], row), h)
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, headerStyle)
		row++

		for _, r := range group.Rows {
			rowStr = fmt.Sprintf("%d", row)
			name := r.Name
			if r.Free {
				name += " (FREE)"
			}
			f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(name))
			f.SetCellValue(sheetName, "B"+rowStr, r.Qty)
			f.SetCellValue(sheetName, "C"+rowStr, string(r.UnitType))
			f.SetCellValue(sheetName, "D"+rowStr, FormatINR(r.UnitPrice))
			f.SetCellValue(sheetName, "E"+rowStr, FormatINR(r.Amount))
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, itemStyle)
			row++
		}
		row++ // blank row between groups
	}

	// Summary rows, internal figures included.
	summaries := []struct {
		label string
		value string
	}{
		{"Item Subtotal:", FormatINR(data.Subtotal)},
		{"Selling Price:", FormatINR(data.SellingPrice)},
		{"Total Cost:", FormatINR(data.TotalCost)},
		{fmt.Sprintf("Profit (%s):", FormatPercent(data.ProfitPercent)), FormatINR(data.ProfitAmount)},
	}
	for _, s := range summaries {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "D"+rowStr, s.label)
		f.SetCellStyle(sheetName, "D"+rowStr, "D"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "E"+rowStr, s.value)
		f.SetCellStyle(sheetName, "E"+rowStr, "E"+rowStr, summaryValueStyle)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas.
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

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
