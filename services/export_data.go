package services

import "fmt"

// ExportRow is one printed cost line: a label, the inputs it was
// computed from, and the resulting value.
type ExportRow struct {
	Label  string
	Detail string
	Value  float64
}

// ExportSection is one cost table in the printed sheet.
type ExportSection struct {
	Title         string
	Rows          []ExportRow
	SubtotalLabel string
	Subtotal      float64
	Extra         []ExportRow // adjustment lines (trims)
}

// ExportData holds everything the Excel and PDF generators need.
type ExportData struct {
	StyleInfo
	CreatedBy   string
	CreatedDate string
	Sections    []ExportSection
	Chain       SummaryChain
}

// BuildExportData flattens a payload into printable sections. Totals
// are recomputed through the same chain as the API read path.
func BuildExportData(p CostSheetPayload, createdDate string) ExportData {
	p = p.Recompute()

	data := ExportData{
		StyleInfo:   p.StyleInfo,
		CreatedBy:   p.CreatedBy,
		CreatedDate: createdDate,
		Chain:       p.Chain(),
	}

	data.Sections = append(data.Sections,
		tableSection("CAD Consumption", TableCAD, p.CadConsumption, "Total Weight/Dzn"))

	for _, sub := range []struct {
		title string
		kind  TableKind
		env   TableEnvelope
	}{
		{"Fabric Cost - Yarn", TableYarn, p.FabricCost.Yarn},
		{"Fabric Cost - Knitting", TableKnitting, p.FabricCost.Knitting},
		{"Fabric Cost - Dyeing", TableDyeing, p.FabricCost.Dyeing},
		{"Fabric Cost - Print & Emb", TablePrintEmb, p.FabricCost.PrintEmb},
	} {
		data.Sections = append(data.Sections,
			tableSection(sub.title, sub.kind, sub.env, "Subtotal"))
	}

	trims := tableSection("Trims & Accessories", TableTrims, p.TrimsAccessories, "Subtotal")
	trims.Extra = []ExportRow{
		{
			Label: fmt.Sprintf("Adjustment (%.0f%%)", p.TrimsAccessories.AdjustmentPercent),
			Value: p.TrimsAccessories.Adjustment,
		},
		{Label: "Total Accessories Cost", Value: p.TrimsAccessories.Total},
	}
	data.Sections = append(data.Sections, trims)

	data.Sections = append(data.Sections,
		tableSection("Others", TableOthers, p.Others, "Total"))

	return data
}

func tableSection(title string, kind TableKind, env TableEnvelope, subtotalLabel string) ExportSection {
	sec := ExportSection{
		Title:         title,
		SubtotalLabel: subtotalLabel,
		Subtotal:      env.Subtotal,
	}
	for _, r := range env.Rows {
		sec.Rows = append(sec.Rows, ExportRow{
			Label:  r.FieldName,
			Detail: rowDetail(kind, r),
			Value:  r.Value,
		})
	}
	return sec
}

func rowDetail(kind TableKind, r Row) string {
	switch kind {
	case TableCAD:
		return fmt.Sprintf("%s kg + %s%%", zeroIfEmpty(r.Weight), zeroIfEmpty(r.Percent))
	case TableYarn, TableKnitting, TableDyeing, TablePrintEmb:
		return fmt.Sprintf("%s x %s", zeroIfEmpty(r.Unit), zeroIfEmpty(r.Rate))
	default:
		return ""
	}
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
