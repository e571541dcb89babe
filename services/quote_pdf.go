package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
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

// addressWrapWidth is the character width used when wrapping the
// installation address and notes blocks.
const addressWrapWidth = 60

// GenerateQuotePDF renders a quotation as a paginated A4 PDF: header,
// customer/installation blocks, one line-item table per category, totals,
// optional notes, footer. Returns the raw PDF bytes.
func GenerateQuotePDF(data QuoteExportData) ([]byte, error) {
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

	addQuoteHeader(m, data)
	addCustomerBlocks(m, data)
	for _, group := range data.Groups {
		addGroupTable(m, group)
	}
	addQuoteTotals(m, data)
	addQuoteNotes(m, data)
	addQuoteFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quotation PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addQuoteHeader adds the company name, QUOTATION title, quote number and date.
func addQuoteHeader(m core.Maroto, data QuoteExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(7).Add(
				text.New(data.CompanyName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(5).Add(
				text.New("QUOTATION", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)

	contact := data.CompanyAddress
	if data.CompanyEmail != "" {
		if contact != "" {
			contact += " | "
		}
		contact += data.CompanyEmail
	}
	if data.CompanyPhone != "" {
		if contact != "" {
			contact += " | "
		}
		contact += data.CompanyPhone
	}

	m.AddRows(
		row.New(8).Add(
			col.New(7).Add(
				text.New(contact, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(5).Add(
				text.New(fmt.Sprintf("Quote #: %s    Date: %s", data.QuoteNumber, data.CreatedDate), props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(row.New(3).Add(col.New(12).Add(line.New())))
	m.AddRows(row.New(2))
}

// addCustomerBlocks adds the customer and installation sections side by
// side. The address shows at most the first two wrapped lines.
func addCustomerBlocks(m core.Maroto, data QuoteExportData) {
	label := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	value := props.Text{
		Size:  9,
		Align: align.Left,
	}

	m.AddRows(
		row.New(5).Add(
			col.New(6).Add(text.New("CUSTOMER", label)),
			col.New(6).Add(text.New("INSTALLATION", label)),
		),
	)

	contact := data.CustomerName
	if data.Phone != "" {
		contact += " | " + data.Phone
	}
	m.AddRows(
		row.New(12).Add(
			col.New(6).Add(
				text.New(contact, value),
				text.New(data.Email, props.Text{Size: 8, Top: 5, Align: align.Left, Color: &props.Color{Red: 100, Green: 100, Blue: 100}}),
			),
			col.New(6).Add(
				text.New(wrapBlock(data.Address, addressWrapWidth), value),
				text.New(systemLabel(data.SystemType, data.ChannelCount), props.Text{Size: 8, Top: 9, Align: align.Left, Color: &props.Color{Red: 100, Green: 100, Blue: 100}}),
			),
		),
	)
	m.AddRows(row.New(3))
}

// addGroupTable adds one category sub-table: a shaded title band, the
// column header, then the data rows with alternating shading by parity.
func addGroupTable(m core.Maroto, group ItemGroup) {
	titleBg := &props.Color{Red: 222, Green: 226, Blue: 230}
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New(group.Title, props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Left,
					Left:  1,
				}),
			).WithStyle(&props.Cell{BackgroundColor: titleBg}),
		),
	)

	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New("Item", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Unit Price", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Amount", headerText)).WithStyle(&headerCell),
		),
	)

	for i, r := range group.Rows {
		addGroupRow(m, r, i)
	}
	m.AddRows(row.New(3))
}

// addGroupRow adds one item row. Odd rows get a light background; names
// arrive already truncated to the column budget.
func addGroupRow(m core.Maroto, r QuoteRow, index int) {
	var cellStyle *props.Cell
	if index%2 == 1 {
		cellStyle = &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	}

	baseText := props.Text{Size: 8, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	qtyStr := FormatQty(r.Qty)
	if r.UnitType == UnitMeter {
		qtyStr += " m"
	}

	unitPrice := FormatINR(r.UnitPrice)
	amount := FormatINR(r.Amount)
	name := r.Name
	if r.Free {
		name += " (FREE)"
		unitPrice = "FREE"
		amount = FormatINR(0)
	}

	colName := col.New(6).Add(text.New(name, leftText))
	colQty := col.New(2).Add(text.New(qtyStr, rightText))
	colUnit := col.New(2).Add(text.New(unitPrice, rightText))
	colAmount := col.New(2).Add(text.New(amount, rightText))

	if cellStyle != nil {
		colName = colName.WithStyle(cellStyle)
		colQty = colQty.WithStyle(cellStyle)
		colUnit = colUnit.WithStyle(cellStyle)
		colAmount = colAmount.WithStyle(cellStyle)
	}

	m.AddRows(row.New(6).Add(colName, colQty, colUnit, colAmount))
}

// addQuoteTotals adds the customer-facing totals band. Internal cost and
// profit figures stay off the PDF; they appear only in the Excel workbook.
func addQuoteTotals(m core.Maroto, data QuoteExportData) {
	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(text.New("Item Subtotal", labelStyle)).WithStyle(summaryCell),
			col.New(4).Add(text.New(FormatINR(data.Subtotal), valueStyle)).WithStyle(summaryCell),
		),
	)
	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(text.New("Total (incl. installation)", labelStyle)).WithStyle(summaryCell),
			col.New(4).Add(text.New(FormatINR(data.SellingPrice), valueStyle)).WithStyle(summaryCell),
		),
	)
	if data.FreeCount > 0 {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("Includes %d free promotional item(s).", data.FreeCount), props.Text{
						Size:  8,
						Align: align.Right,
						Color: &props.Color{Red: 100, Green: 100, Blue: 100},
					}),
				),
			),
		)
	}
}

// addQuoteNotes adds the optional notes block, limited to two wrapped lines.
func addQuoteNotes(m core.Maroto, data QuoteExportData) {
	if data.Notes == "" {
		return
	}
	m.AddRows(row.New(3))
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New("Notes: "+wrapBlock(data.Notes, addressWrapWidth), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)
}

// addQuoteFooter adds the generated-date line.
func addQuoteFooter(m core.Maroto, data QuoteExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.CreatedDate),
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
