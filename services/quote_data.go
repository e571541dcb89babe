package services

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// maxNameChars bounds product names in document tables; longer names are
// truncated with a trailing ellipsis so they never overflow the column.
const maxNameChars = 45

// maxBlockLines bounds free-text blocks (installation address, notes) in
// rendered documents.
const maxBlockLines = 2

// QuoteRow is one rendered line-item row.
type QuoteRow struct {
	Name      string
	Qty       float64
	UnitType  UnitType
	UnitPrice float64
	Amount    float64
	Free      bool
}

// ItemGroup is one per-category sub-table of the document.
type ItemGroup struct {
	Category Category
	Title    string
	Rows     []QuoteRow
}

// QuoteExportData holds everything the PDF and Excel renderers need,
// precomputed so rendering stays a single linear pass.
type QuoteExportData struct {
	QuoteNumber  string
	CustomerName string
	Phone        string
	Email        string
	Address      string
	Notes        string
	CreatedDate  string
	SystemType   SystemType
	ChannelCount int

	Groups []ItemGroup

	Subtotal  float64
	FreeCount int

	// Internal figures, shown only on the Excel workbook.
	TotalCost     float64
	SellingPrice  float64
	ProfitAmount  float64
	ProfitPercent float64

	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string
}

// BuildQuoteExportData assembles export data from a draft-shaped record.
// Items are grouped per category in catalog order; categories without items
// produce no group.
func BuildQuoteExportData(d *Draft, quoteNumber string, createdAt time.Time, site SiteSettings) QuoteExportData {
	data := QuoteExportData{
		QuoteNumber:    quoteNumber,
		CustomerName:   d.Name,
		Phone:          d.Phone,
		Email:          d.Email,
		Address:        d.Address,
		Notes:          d.Notes,
		CreatedDate:    createdAt.Format("2006-01-02"),
		SystemType:     d.SystemType,
		ChannelCount:   d.ChannelCount,
		SellingPrice:   d.SellingPrice,
		CompanyName:    site.CompanyName,
		CompanyAddress: site.CompanyAddress,
		CompanyEmail:   site.CompanyEmail,
		CompanyPhone:   site.CompanyPhone,
	}

	items := d.Items.Items()
	for _, cat := range AllCategories() {
		var rows []QuoteRow
		for _, it := range items {
			if it.ProductType != cat {
				continue
			}
			unitPrice := it.EffectiveSellingPrice()
			rows = append(rows, QuoteRow{
				Name:      TruncateName(it.Name, maxNameChars),
				Qty:       it.Qty,
				UnitType:  it.UnitType,
				UnitPrice: unitPrice,
				Amount:    RoundPaise(unitPrice * it.Qty),
				Free:      it.Free,
			})
			if it.Free {
				data.FreeCount++
			}
		}
		if len(rows) > 0 {
			data.Groups = append(data.Groups, ItemGroup{
				Category: cat,
				Title:    cat.Label(),
				Rows:     rows,
			})
		}
	}

	data.Subtotal = RoundPaise(d.Items.SellingSubtotal())
	data.TotalCost = RoundPaise(d.Items.TotalCost())
	profit := ComputeProfit(data.TotalCost, d.SellingPrice)
	data.ProfitAmount = RoundPaise(profit.Amount)
	data.ProfitPercent = profit.Percent
	return data
}

// QuoteFileName derives a deterministic document file name: the quote
// number when one exists, otherwise the sanitized customer name plus the
// creation date.
func QuoteFileName(data QuoteExportData, ext string) string {
	base := data.QuoteNumber
	if base == "" {
		base = sanitizeFileName(data.CustomerName) + "-" + data.CreatedDate
	}
	return base + "." + ext
}

func sanitizeFileName(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "quotation"
	}
	return b.String()
}

// TruncateName shortens s to at most max characters, replacing the tail
// with "..." when it does not fit.
func TruncateName(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// WrapLines word-wraps s into lines of at most width characters and returns
// at most maxLines of them. Overlong single words are split hard.
func WrapLines(s string, width, maxLines int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var cur string
	flush := func() {
		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}
	}
	for _, w := range words {
		for len([]rune(w)) > width {
			flush()
			r := []rune(w)
			lines = append(lines, string(r[:width]))
			w = string(r[width:])
		}
		switch {
		case cur == "":
			cur = w
		case len([]rune(cur))+1+len([]rune(w)) <= width:
			cur += " " + w
		default:
			flush()
			cur = w
		}
	}
	flush()

	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// wrapBlock joins the first maxBlockLines wrapped lines for single-cell
// rendering.
func wrapBlock(s string, width int) string {
	return strings.Join(WrapLines(s, width, maxBlockLines), "\n")
}

// systemLabel renders the system type and channel count for headers.
func systemLabel(st SystemType, channels int) string {
	var name string
	switch st {
	case SystemAnalog:
		name = "Analog HD"
	case SystemIP:
		name = "IP"
	case SystemWifi:
		name = "Wi-Fi"
	default:
		name = string(st)
	}
	if channels > 0 {
		return fmt.Sprintf("%s, %d channel", name, channels)
	}
	return name
}
