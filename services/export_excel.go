package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates an Excel workbook from the given ExportData and
// returns the file contents as a byte slice.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are capped at 31 chars.
	sheetName := "Cost Sheet " + data.Style
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C"}
	lastCol := columns[len(columns)-1]

	widths := []float64{36, 22, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

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

	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create section style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	subtotalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create subtotal style: %w", err)
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

	// ── Header rows ─────────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", "Cost Sheet - "+sanitizeExcelCell(data.Style))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	headerLines := []string{
		fmt.Sprintf("Item: %s   Group: %s   Size: %s", data.Item, data.Group, data.Size),
		fmt.Sprintf("Fabric: %s   GSM: %s   Color: %s   Qty: %.0f pcs", data.FabricType, data.GSM, data.Color, data.Quantity),
		"Date: " + data.CreatedDate,
	}
	row := 2
	for _, line := range headerLines {
		ref := fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheetName, "A"+ref, lastCol+ref); err != nil {
			return nil, fmt.Errorf("merge header row %d: %w", row, err)
		}
		f.SetCellValue(sheetName, "A"+ref, sanitizeExcelCell(line))
		f.SetCellStyle(sheetName, "A"+ref, lastCol+ref, subtitleStyle)
		row++
	}
	row++

	// ── Cost tables ─────────────────────────────────────────────────────

	for _, sec := range data.Sections {
		ref := fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheetName, "A"+ref, lastCol+ref); err != nil {
			return nil, fmt.Errorf("merge section %q: %w", sec.Title, err)
		}
		f.SetCellValue(sheetName, "A"+ref, sanitizeExcelCell(sec.Title))
		f.SetCellStyle(sheetName, "A"+ref, lastCol+ref, sectionStyle)
		row++

		for _, r := range sec.Rows {
			ref = fmt.Sprintf("%d", row)
			f.SetCellValue(sheetName, "A"+ref, sanitizeExcelCell(r.Label))
			f.SetCellValue(sheetName, "B"+ref, sanitizeExcelCell(r.Detail))
			f.SetCellValue(sheetName, "C"+ref, Round2(r.Value))
			f.SetCellStyle(sheetName, "A"+ref, lastCol+ref, rowStyle)
			row++
		}

		ref = fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+ref, sec.SubtotalLabel)
		f.SetCellValue(sheetName, "C"+ref, Round2(sec.Subtotal))
		f.SetCellStyle(sheetName, "A"+ref, lastCol+ref, subtotalStyle)
		row++

		for _, r := range sec.Extra {
			ref = fmt.Sprintf("%d", row)
			f.SetCellValue(sheetName, "A"+ref, sanitizeExcelCell(r.Label))
			f.SetCellValue(sheetName, "C"+ref, Round2(r.Value))
			f.SetCellStyle(sheetName, "A"+ref, lastCol+ref, subtotalStyle)
			row++
		}

		row++
	}

	// ── Summary chain ───────────────────────────────────────────────────

	summary := []struct {
		label string
		value string
	}{
		{"Total Fabric Cost:", FormatUSD(data.Chain.FabricCost)},
		{"Total Accessories Cost:", FormatUSD(data.Chain.AccessoriesCost)},
		{"Factory CM/Dzn:", FormatUSD(data.Chain.FactoryCM)},
		{"Others:", FormatUSD(data.Chain.OthersTotal)},
		{"Total Cost:", FormatUSD(data.Chain.TotalCost)},
		{fmt.Sprintf("Commercial Cost (%.0f%%):", data.Chain.CommercialPercent), FormatUSD(data.Chain.CommercialCost)},
		{"Total Cost incl. Commercial:", FormatUSD(data.Chain.TotalCostWithCommercial)},
		{fmt.Sprintf("Profit (%.0f%%):", data.Chain.ProfitPercent), FormatUSD(data.Chain.ProfitCost)},
		{"FOB Price/Dzn:", FormatUSD(data.Chain.FOBPrice)},
		{"Price/Pc:", fmt.Sprintf("$%.3f", Round3(data.Chain.PricePerPiece))},
	}
	for _, s := range summary {
		ref := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "B"+ref, s.label)
		f.SetCellStyle(sheetName, "B"+ref, "B"+ref, summaryLabelStyle)
		f.SetCellValue(sheetName, "C"+ref, s.value)
		f.SetCellStyle(sheetName, "C"+ref, "C"+ref, summaryValueStyle)
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
// @, \t or \r as formulas, which can be abused for code execution or data theft.
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

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
