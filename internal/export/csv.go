package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"invoicelens/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the line item header row shared by CSV and XLSX output.
var columns = []string{
	"Document ID",
	"Page",
	"Description",
	"Amount",
	"Item Page",
	"Confidence",
	"BBox",
	"Sub Totals",
	"Final Total",
	"Page Error",
}

// Writer wraps csv.Writer for exporting extraction results as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteResult writes one row per line item of result. Pages without line
// items still produce one row so that totals and page errors are kept.
func (w *Writer) WriteResult(result *domain.DocumentResult) error {
	for _, e := range entries(result) {
		if err := w.csv.Write(entryRow(result.DocumentID, e)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV renders result as a complete CSV document, BOM and header included.
func WriteCSV(out io.Writer, result *domain.DocumentResult) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteResult(result); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// entry is one output row: a line item, or a page that has none.
type entry struct {
	page *domain.PageResult
	item *domain.LineItem
}

func entries(result *domain.DocumentResult) []entry {
	var out []entry
	for i := range result.Pages {
		page := &result.Pages[i]
		if len(page.LineItems) == 0 {
			out = append(out, entry{page: page})
			continue
		}
		for j := range page.LineItems {
			out = append(out, entry{page: page, item: &page.LineItems[j]})
		}
	}
	return out
}

// entryRow converts an entry to a row. Item columns are left empty for a
// page without items.
func entryRow(documentID string, e entry) []string {
	row := make([]string, len(columns))
	page, item := e.page, e.item

	row[0] = documentID
	row[1] = strconv.Itoa(page.PageNum)
	row[7] = formatSubTotals(page.SubTotals)
	row[8] = formatOptional(page.FinalTotal)
	row[9] = page.Error

	if item == nil {
		return row
	}

	row[2] = item.Description
	row[3] = formatMoney(item.Amount)
	row[4] = strconv.Itoa(item.Page)
	row[5] = formatOptional(item.Confidence)
	row[6] = formatBBox(item.BBox)

	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatSubTotals(v []float64) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = formatMoney(f)
	}
	return strings.Join(parts, "; ")
}

func formatBBox(b *domain.BBox) string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("%d,%d,%d,%d", b.X, b.Y, b.W, b.H)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a document id for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "export"
	}
	return s
}

// BuildFilename returns a sanitized attachment filename.
// Format: {sanitized_document_id}_{YYYY-MM-DD}.{ext}
func BuildFilename(documentID, ext string) string {
	sanitized := SanitizeFilename(documentID)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
