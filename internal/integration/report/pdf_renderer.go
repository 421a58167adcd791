package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
)

const pdfContentType = "application/pdf"

// pageBreakAt is the Y position (mm) past which a new page is started before
// drawing the next table row.
const pageBreakAt = 270.0

// PDFRenderer renders reports as PDF documents.
type PDFRenderer struct{}

// NewPDFRenderer creates a new PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the PDF bytes: a summary block always, the transaction
// table when rows are present and the budget table when budget lines are.
func (r *PDFRenderer) Render(ctx context.Context, data *adapter.ReportData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate UTF-8 input so accented names survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	writeSummaryBlock(pdf, tr, data)

	if len(data.Rows) > 0 {
		writeTransactionTable(pdf, tr, data.Rows)
	}
	if len(data.Budgets) > 0 {
		writeBudgetTable(pdf, tr, data.Budgets)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentType returns the PDF MIME type.
func (r *PDFRenderer) ContentType() string {
	return pdfContentType
}

// FileExtension returns "pdf".
func (r *PDFRenderer) FileExtension() string {
	return "pdf"
}

func writeSummaryBlock(pdf *fpdf.Fpdf, tr func(string) string, data *adapter.ReportData) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 9, tr(data.Title))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, tr(data.SubjectName))
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(105, 105, 105)
	pdf.Cell(0, 5, fmt.Sprintf("%s to %s", data.Window.Start.Format(dateLayout), data.Window.End.Format(dateLayout)))
	pdf.Ln(5)
	pdf.Cell(0, 5, "Generated at "+data.GeneratedAt.Format("2006-01-02 15:04 MST"))
	pdf.Ln(9)
	pdf.SetTextColor(0, 0, 0)

	net := data.Income.Sub(data.Expense)
	writeSummaryLine(pdf, "Income", data.Income)
	writeSummaryLine(pdf, "Expenses", data.Expense)
	writeSummaryLine(pdf, "Net", net)
	writeSummaryLine(pdf, "Exceptional expenses", data.Exceptional)
	if data.FundBalance != nil {
		writeSummaryLine(pdf, "Fund balance", *data.FundBalance)
	}
	pdf.Ln(4)
}

func writeSummaryLine(pdf *fpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(60, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(40, 6, amount.StringFixed(2), "", 1, "R", false, 0, "")
}

// Transaction table column widths; they sum to the 190mm usable width of a
// portrait A4 page with 10mm margins.
var txColumnWidths = []float64{34, 14, 26, 26, 44, 23, 23}

var txColumnHeaders = []string{"Date", "Type", "Category", "Supplier", "Notes", "Amount", "Window share"}

func writeTransactionTable(pdf *fpdf.Fpdf, tr func(string) string, rows []adapter.ReportRow) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Transactions")
	pdf.Ln(8)

	writeTableHeader(pdf, txColumnWidths, txColumnHeaders)

	hasExceptional := false
	pdf.SetFont("Helvetica", "", 7.5)
	for _, row := range rows {
		if pdf.GetY() > pageBreakAt {
			pdf.AddPage()
			writeTableHeader(pdf, txColumnWidths, txColumnHeaders)
			pdf.SetFont("Helvetica", "", 7.5)
		}

		date := row.Date.Format(dateLayout)
		if row.PeriodStart != nil && row.PeriodEnd != nil {
			date = row.PeriodStart.Format(dateLayout) + ".." + row.PeriodEnd.Format(dateLayout)
		}
		amount := row.Amount.StringFixed(2)
		if row.IsExceptional {
			amount += " *"
			hasExceptional = true
		}

		pdf.CellFormat(txColumnWidths[0], 5.5, date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(txColumnWidths[1], 5.5, string(row.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(txColumnWidths[2], 5.5, fitText(pdf, tr(row.Category), txColumnWidths[2]-2), "1", 0, "L", false, 0, "")
		pdf.CellFormat(txColumnWidths[3], 5.5, fitText(pdf, tr(row.Supplier), txColumnWidths[3]-2), "1", 0, "L", false, 0, "")
		pdf.CellFormat(txColumnWidths[4], 5.5, fitText(pdf, tr(row.Notes), txColumnWidths[4]-2), "1", 0, "L", false, 0, "")
		pdf.CellFormat(txColumnWidths[5], 5.5, amount, "1", 0, "R", false, 0, "")
		pdf.CellFormat(txColumnWidths[6], 5.5, row.Contribution.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	if hasExceptional {
		pdf.SetFont("Helvetica", "I", 7.5)
		pdf.Cell(0, 5, "* exceptional expense")
		pdf.Ln(5)
	}
	pdf.Ln(4)
}

// Budget table column widths; same 190mm total as the transaction table.
var budgetColumnWidths = []float64{56, 24, 30, 30, 30, 20}

var budgetColumnHeaders = []string{"Category", "Period", "Budget", "Spent", "Remaining", "Over"}

func writeBudgetTable(pdf *fpdf.Fpdf, tr func(string) string, rows []adapter.ReportBudgetRow) {
	if pdf.GetY() > pageBreakAt-20 {
		pdf.AddPage()
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Budgets")
	pdf.Ln(8)

	writeTableHeader(pdf, budgetColumnWidths, budgetColumnHeaders)

	pdf.SetFont("Helvetica", "", 7.5)
	for _, row := range rows {
		if pdf.GetY() > pageBreakAt {
			pdf.AddPage()
			writeTableHeader(pdf, budgetColumnWidths, budgetColumnHeaders)
			pdf.SetFont("Helvetica", "", 7.5)
		}

		over := ""
		if row.OverBudget {
			over = "yes"
		}
		pdf.CellFormat(budgetColumnWidths[0], 5.5, fitText(pdf, tr(row.Category), budgetColumnWidths[0]-2), "1", 0, "L", false, 0, "")
		pdf.CellFormat(budgetColumnWidths[1], 5.5, string(row.PeriodType), "1", 0, "L", false, 0, "")
		pdf.CellFormat(budgetColumnWidths[2], 5.5, row.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(budgetColumnWidths[3], 5.5, row.Spent.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(budgetColumnWidths[4], 5.5, row.Remaining.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(budgetColumnWidths[5], 5.5, over, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(4)
}

func writeTableHeader(pdf *fpdf.Fpdf, widths []float64, headers []string) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(235, 235, 235)
	for i, header := range headers {
		ln := 0
		if i == len(headers)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 6, header, "1", ln, "L", true, 0, "")
	}
}

// fitText trims the text with an ellipsis until it fits the given width.
func fitText(pdf *fpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// Ensure PDFRenderer implements adapter.ReportRenderer.
var _ adapter.ReportRenderer = (*PDFRenderer)(nil)
