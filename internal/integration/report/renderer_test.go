package report

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/property-ledger/backend/internal/application/adapter"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

func sampleData() *adapter.ReportData {
	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	periodStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	fundBalance := decimal.RequireFromString("350.00")

	return &adapter.ReportData{
		Title:       "Project Report",
		SubjectName: "Riverside flat",
		Window:      valueobject.NewWindow(valueobject.WindowModeDateRange, start, end),
		GeneratedAt: time.Date(2024, time.March, 2, 9, 30, 0, 0, time.UTC),
		Income:      decimal.RequireFromString("1200.50"),
		Expense:     decimal.RequireFromString("900.00"),
		Exceptional: decimal.RequireFromString("150.00"),
		FundBalance: &fundBalance,
		Rows: []adapter.ReportRow{
			{
				Date:         time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
				Type:         "income",
				Category:     "Rent",
				Supplier:     "",
				Notes:        "February rent",
				Amount:       decimal.RequireFromString("1200.50"),
				Contribution: decimal.RequireFromString("1200.50"),
			},
			{
				Date:          periodStart,
				PeriodStart:   &periodStart,
				PeriodEnd:     &periodEnd,
				Type:          "expense",
				Category:      "Maintenance",
				Supplier:      "Apex Plumbing",
				Notes:         "Quarterly service contract",
				Amount:        decimal.RequireFromString("900.00"),
				Contribution:  decimal.RequireFromString("286.81"),
				IsExceptional: true,
			},
		},
		Budgets: []adapter.ReportBudgetRow{
			{
				Category:   "Maintenance",
				PeriodType: "monthly",
				Amount:     decimal.RequireFromString("300.00"),
				Spent:      decimal.RequireFromString("286.81"),
				Remaining:  decimal.RequireFromString("13.19"),
				OverBudget: false,
			},
		},
	}
}

func TestExcelRenderer(t *testing.T) {
	renderer := NewExcelRenderer()

	t.Run("renders summary, transactions and budgets sheets", func(t *testing.T) {
		content, err := renderer.Render(context.Background(), sampleData())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		f, err := excelize.OpenReader(bytes.NewReader(content))
		if err != nil {
			t.Fatalf("expected a readable workbook, got %v", err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		for _, want := range []string{summarySheet, transactionsSheet, budgetsSheet} {
			found := false
			for _, sheet := range sheets {
				if sheet == want {
					found = true
				}
			}
			if !found {
				t.Errorf("expected sheet %q, got %v", want, sheets)
			}
		}

		subject, err := f.GetCellValue(summarySheet, "B1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if subject != "Riverside flat" {
			t.Errorf("expected subject 'Riverside flat', got %q", subject)
		}

		income, err := f.GetCellValue(summarySheet, "B5")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if income != "1200.5" {
			t.Errorf("expected income cell '1200.5', got %q", income)
		}

		supplier, err := f.GetCellValue(transactionsSheet, "F3")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if supplier != "Apex Plumbing" {
			t.Errorf("expected supplier 'Apex Plumbing', got %q", supplier)
		}
	})

	t.Run("leaves optional sheets out when their sections are empty", func(t *testing.T) {
		data := sampleData()
		data.Rows = nil
		data.Budgets = nil

		content, err := renderer.Render(context.Background(), data)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		f, err := excelize.OpenReader(bytes.NewReader(content))
		if err != nil {
			t.Fatalf("expected a readable workbook, got %v", err)
		}
		defer f.Close()

		if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != summarySheet {
			t.Errorf("expected only the summary sheet, got %v", sheets)
		}
	})

	t.Run("declares xlsx metadata", func(t *testing.T) {
		if got := renderer.ContentType(); got != excelContentType {
			t.Errorf("expected xlsx content type, got %q", got)
		}
		if got := renderer.FileExtension(); got != "xlsx" {
			t.Errorf("expected extension 'xlsx', got %q", got)
		}
	})
}

func TestPDFRenderer(t *testing.T) {
	renderer := NewPDFRenderer()

	t.Run("renders a PDF document", func(t *testing.T) {
		content, err := renderer.Render(context.Background(), sampleData())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !bytes.HasPrefix(content, []byte("%PDF-")) {
			t.Errorf("expected a PDF header, got %q", content[:min(8, len(content))])
		}
	})

	t.Run("survives many rows across page breaks", func(t *testing.T) {
		data := sampleData()
		row := data.Rows[0]
		for i := 0; i < 200; i++ {
			data.Rows = append(data.Rows, row)
		}

		content, err := renderer.Render(context.Background(), data)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(content) == 0 {
			t.Error("expected rendered bytes")
		}
	})

	t.Run("declares pdf metadata", func(t *testing.T) {
		if got := renderer.ContentType(); got != pdfContentType {
			t.Errorf("expected pdf content type, got %q", got)
		}
		if got := renderer.FileExtension(); got != "pdf" {
			t.Errorf("expected extension 'pdf', got %q", got)
		}
	})
}

// memoryStorage is an in-memory object store for renderer tests.
type memoryStorage struct {
	objects map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (s *memoryStorage) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	content, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[key] = content
	return nil
}

func (s *memoryStorage) Get(ctx context.Context, key string) (io.ReadCloser, *adapter.ObjectInfo, error) {
	content, ok := s.objects[key]
	if !ok {
		return nil, nil, domainerror.ErrObjectNotFound
	}
	info := &adapter.ObjectInfo{Key: key, SizeBytes: int64(len(content))}
	return io.NopCloser(bytes.NewReader(content)), info, nil
}

func (s *memoryStorage) Stat(ctx context.Context, key string) (*adapter.ObjectInfo, error) {
	content, ok := s.objects[key]
	if !ok {
		return nil, domainerror.ErrObjectNotFound
	}
	return &adapter.ObjectInfo{Key: key, SizeBytes: int64(len(content))}, nil
}

func (s *memoryStorage) Copy(ctx context.Context, srcKey, dstKey string) error {
	content, ok := s.objects[srcKey]
	if !ok {
		return domainerror.ErrObjectNotFound
	}
	s.objects[dstKey] = content
	return nil
}

func (s *memoryStorage) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *memoryStorage) PublicURL(key string) string {
	return "http://storage.local/" + key
}

func TestZIPRenderer(t *testing.T) {
	newRenderer := func(storage adapter.ObjectStorage) *ZIPRenderer {
		return NewZIPRenderer(NewExcelRenderer(), NewPDFRenderer(), storage)
	}

	readArchive := func(t *testing.T, content []byte) map[string][]byte {
		t.Helper()
		zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
		if err != nil {
			t.Fatalf("expected a readable archive, got %v", err)
		}
		entries := make(map[string][]byte, len(zr.File))
		for _, file := range zr.File {
			rc, err := file.Open()
			if err != nil {
				t.Fatalf("expected to open %s, got %v", file.Name, err)
			}
			entryContent, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				t.Fatalf("expected to read %s, got %v", file.Name, err)
			}
			entries[file.Name] = entryContent
		}
		return entries
	}

	t.Run("bundles both renditions and the attached documents", func(t *testing.T) {
		storage := newMemoryStorage()
		storage.objects["transactions/doc-1"] = []byte("receipt one")
		storage.objects["transactions/doc-2"] = []byte("receipt two")

		data := sampleData()
		data.Attachments = []adapter.ReportAttachment{
			{FileName: "receipt.pdf", StorageKey: "transactions/doc-1"},
			{FileName: "receipt.pdf", StorageKey: "transactions/doc-2"},
		}

		content, err := newRenderer(storage).Render(context.Background(), data)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		entries := readArchive(t, content)
		if _, ok := entries["report.xlsx"]; !ok {
			t.Error("expected report.xlsx in the archive")
		}
		if pdfEntry, ok := entries["report.pdf"]; !ok || !bytes.HasPrefix(pdfEntry, []byte("%PDF-")) {
			t.Error("expected a PDF report.pdf in the archive")
		}
		if got := string(entries["documents/receipt.pdf"]); got != "receipt one" {
			t.Errorf("expected first receipt content, got %q", got)
		}
		if got := string(entries["documents/receipt-2.pdf"]); got != "receipt two" {
			t.Errorf("expected disambiguated second receipt, got %q", got)
		}
	})

	t.Run("skips attachments that are gone from storage", func(t *testing.T) {
		storage := newMemoryStorage()

		data := sampleData()
		data.Attachments = []adapter.ReportAttachment{
			{FileName: "missing.pdf", StorageKey: "transactions/gone"},
		}

		content, err := newRenderer(storage).Render(context.Background(), data)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		entries := readArchive(t, content)
		for name := range entries {
			if strings.HasPrefix(name, "documents/") {
				t.Errorf("expected no document entries, got %s", name)
			}
		}
	})

	t.Run("declares zip metadata", func(t *testing.T) {
		renderer := newRenderer(newMemoryStorage())
		if got := renderer.ContentType(); got != zipContentType {
			t.Errorf("expected zip content type, got %q", got)
		}
		if got := renderer.FileExtension(); got != "zip" {
			t.Errorf("expected extension 'zip', got %q", got)
		}
	})
}
