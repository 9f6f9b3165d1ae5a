package services

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

// GeneratePDF creates a printable cost sheet using maroto/v2. It
// returns the raw PDF bytes or an error.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)
	for _, sec := range data.Sections {
		addSection(m, sec)
	}
	addSummary(m, data)
	addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addHeader adds the style header block to the PDF.
func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Cost Sheet - "+data.Style, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	gray := &props.Color{Red: 80, Green: 80, Blue: 80}
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Item: %s   Group: %s   Size: %s", data.Item, data.Group, data.Size), props.Text{
					Size:  9,
					Align: align.Left,
					Color: gray,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: gray,
				}),
			),
		),
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Fabric: %s   GSM: %s   Color: %s   Order Qty: %.0f pcs",
					data.FabricType, data.GSM, data.Color, data.Quantity), props.Text{
					Size:  9,
					Align: align.Left,
					Color: gray,
				}),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addSection adds one cost table: section bar, rows, subtotal and any
// adjustment lines.
func addSection(m core.Maroto, sec ExportSection) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerCell := props.Cell{BackgroundColor: headerBg}
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(sec.Title, props.Text{
					Size:  8,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &props.Color{Red: 255, Green: 255, Blue: 255},
				}),
			).WithStyle(&headerCell),
		),
	)

	baseText := props.Text{Size: 7, Align: align.Left}
	rightText := props.Text{Size: 7, Align: align.Right}

	stripe := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	for i, r := range sec.Rows {
		colLabel := col.New(6).Add(text.New(r.Label, baseText))
		colDetail := col.New(3).Add(text.New(r.Detail, baseText))
		colValue := col.New(3).Add(text.New(fmt.Sprintf("%.2f", r.Value), rightText))
		if i%2 == 1 {
			colLabel = colLabel.WithStyle(stripe)
			colDetail = colDetail.WithStyle(stripe)
			colValue = colValue.WithStyle(stripe)
		}
		m.AddRows(row.New(7).Add(colLabel, colDetail, colValue))
	}

	boldLeft := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}
	boldRight := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	m.AddRows(
		row.New(7).Add(
			col.New(9).Add(text.New(sec.SubtotalLabel, boldLeft)),
			col.New(3).Add(text.New(fmt.Sprintf("%.2f", sec.Subtotal), boldRight)),
		),
	)
	for _, r := range sec.Extra {
		m.AddRows(
			row.New(7).Add(
				col.New(9).Add(text.New(r.Label, boldLeft)),
				col.New(3).Add(text.New(fmt.Sprintf("%.2f", r.Value), boldRight)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addSummary adds the derived cost chain at the bottom of the PDF.
func addSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	lines := []struct {
		label string
		value string
	}{
		{"Total Fabric Cost", FormatUSD(data.Chain.FabricCost)},
		{"Total Accessories Cost", FormatUSD(data.Chain.AccessoriesCost)},
		{"Factory CM/Dzn", FormatUSD(data.Chain.FactoryCM)},
		{"Others", FormatUSD(data.Chain.OthersTotal)},
		{"Total Cost", FormatUSD(data.Chain.TotalCost)},
		{fmt.Sprintf("Commercial Cost (%.0f%%)", data.Chain.CommercialPercent), FormatUSD(data.Chain.CommercialCost)},
		{"Total Cost incl. Commercial", FormatUSD(data.Chain.TotalCostWithCommercial)},
		{fmt.Sprintf("Profit (%.0f%%)", data.Chain.ProfitPercent), FormatUSD(data.Chain.ProfitCost)},
		{"FOB Price/Dzn", FormatUSD(data.Chain.FOBPrice)},
		{"Price/Pc", fmt.Sprintf("$%.3f", Round3(data.Chain.PricePerPiece))},
	}
	for _, l := range lines {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(
					text.New(l.label, labelStyle),
				).WithStyle(summaryCell),
				col.New(4).Add(
					text.New(l.value, valueStyle),
				).WithStyle(summaryCell),
			),
		)
	}
}

// addFooter adds the generated-date line at the bottom.
func addFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s by %s", data.CreatedDate, data.CreatedBy),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
