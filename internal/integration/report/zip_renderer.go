package report

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/property-ledger/backend/internal/application/adapter"
)

const zipContentType = "application/zip"

// ZIPRenderer bundles the Excel and PDF renditions of a report together with
// the attached documents fetched from object storage.
type ZIPRenderer struct {
	excel   *ExcelRenderer
	pdf     *PDFRenderer
	storage adapter.ObjectStorage
}

// NewZIPRenderer creates a new ZIPRenderer.
func NewZIPRenderer(excel *ExcelRenderer, pdf *PDFRenderer, storage adapter.ObjectStorage) *ZIPRenderer {
	return &ZIPRenderer{
		excel:   excel,
		pdf:     pdf,
		storage: storage,
	}
}

// Render produces the archive bytes. A document that can no longer be fetched
// from storage is skipped with a warning instead of failing the whole report.
func (r *ZIPRenderer) Render(ctx context.Context, data *adapter.ReportData) ([]byte, error) {
	excelBytes, err := r.excel.Render(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render excel part: %w", err)
	}
	pdfBytes, err := r.pdf.Render(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render pdf part: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if err := addZipFile(zw, "report.xlsx", excelBytes); err != nil {
		return nil, err
	}
	if err := addZipFile(zw, "report.pdf", pdfBytes); err != nil {
		return nil, err
	}

	if err := r.addAttachments(ctx, zw, data.Attachments); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentType returns the ZIP MIME type.
func (r *ZIPRenderer) ContentType() string {
	return zipContentType
}

// FileExtension returns "zip".
func (r *ZIPRenderer) FileExtension() string {
	return "zip"
}

func addZipFile(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s to archive: %w", name, err)
	}
	return nil
}

func (r *ZIPRenderer) addAttachments(ctx context.Context, zw *zip.Writer, attachments []adapter.ReportAttachment) error {
	used := make(map[string]int, len(attachments))
	for _, attachment := range attachments {
		name := archiveName(attachment.FileName, used)

		reader, _, err := r.storage.Get(ctx, attachment.StorageKey)
		if err != nil {
			slog.Warn("Skipping unreachable report attachment",
				"storage_key", attachment.StorageKey,
				"file_name", attachment.FileName,
				"error", err,
			)
			continue
		}

		w, err := zw.Create("documents/" + name)
		if err != nil {
			reader.Close()
			return fmt.Errorf("failed to add attachment %s: %w", name, err)
		}
		if _, err := io.Copy(w, reader); err != nil {
			reader.Close()
			return fmt.Errorf("failed to copy attachment %s: %w", name, err)
		}
		reader.Close()
	}
	return nil
}

// archiveName strips any path component from the stored file name and
// disambiguates collisions with a numeric suffix.
func archiveName(fileName string, used map[string]int) string {
	name := path.Base(fileName)
	if name == "." || name == "/" || name == "" {
		name = "document"
	}

	used[name]++
	if used[name] == 1 {
		return name
	}

	ext := path.Ext(name)
	base := name[:len(name)-len(ext)]
	return fmt.Sprintf("%s-%d%s", base, used[name], ext)
}

// Ensure ZIPRenderer implements adapter.ReportRenderer.
var _ adapter.ReportRenderer = (*ZIPRenderer)(nil)
