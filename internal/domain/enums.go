package domain

import "fmt"

// ExportFormat selects how a DocumentResult is rendered to the client.
type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ExportContentTypes maps non-JSON export formats to their MIME type.
var ExportContentTypes = map[ExportFormat]string{
	ExportFormatCSV:  "text/csv; charset=utf-8",
	ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ParseExportFormat resolves a query value to an ExportFormat. An empty value
// means JSON.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case "", ExportFormatJSON:
		return ExportFormatJSON, nil
	case ExportFormatCSV, ExportFormatXLSX:
		return ExportFormat(s), nil
	default:
		return "", fmt.Errorf("%w %q; allowed: json, csv, xlsx", ErrUnsupportedFormat, s)
	}
}
