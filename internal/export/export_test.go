package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"invoicelens/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func sampleResult() *domain.DocumentResult {
	return &domain.DocumentResult{
		DocumentID: "scan 01.tiff",
		Pages: []domain.PageResult{
			{
				PageNum: 1,
				LineItems: []domain.LineItem{
					{Description: "Widget", Amount: 10, Page: 1, BBox: &domain.BBox{X: 1, Y: 2, W: 30, H: 4}, Confidence: ptr(0.9)},
					{Description: "Gadget", Amount: 5.5, Page: 1},
				},
				SubTotals:  []float64{15.5},
				FinalTotal: ptr(15.5),
			},
			domain.FailedPage(2, assert.AnError),
		},
		OverallConfidence: 0.9,
	}
}

func readCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	rows := readCSV(t, &buf)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 10)
	assert.Equal(t, "Document ID", rows[0][0])
	assert.Equal(t, "Page Error", rows[0][9])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))

	require.True(t, bytes.HasPrefix(buf.Bytes(), BOM))
	buf.Next(len(BOM))

	rows := readCSV(t, &buf)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"scan 01.tiff", "1", "Widget", "10.00", "1", "0.9", "1,2,30,4", "15.50", "15.5", ""}, rows[1])
	assert.Equal(t, []string{"scan 01.tiff", "1", "Gadget", "5.50", "1", "", "", "15.50", "15.5", ""}, rows[2])

	failed := rows[3]
	assert.Equal(t, "2", failed[1])
	assert.Empty(t, failed[2])
	assert.Empty(t, failed[3])
	assert.Empty(t, failed[8])
	assert.Equal(t, assert.AnError.Error(), failed[9])
}

func TestWriteCSV_MultipleSubTotals(t *testing.T) {
	result := &domain.DocumentResult{
		DocumentID: "doc",
		Pages:      []domain.PageResult{{PageNum: 1, LineItems: []domain.LineItem{}, SubTotals: []float64{1, 2.5}}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result))
	buf.Next(len(BOM))

	rows := readCSV(t, &buf)
	require.Len(t, rows, 2)
	assert.Equal(t, "1.00; 2.50", rows[1][7])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleResult()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{LineItemsSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(LineItemsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Document ID", rows[0][0])
	assert.Equal(t, "Widget", rows[1][2])
	assert.Equal(t, "10", rows[1][3])
	assert.Equal(t, "1,2,30,4", rows[1][6])
	assert.Equal(t, assert.AnError.Error(), rows[3][9])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 5)
	assert.Equal(t, []string{"Document ID", "scan 01.tiff"}, summary[0])
	assert.Equal(t, []string{"Pages", "2"}, summary[1])
	assert.Equal(t, []string{"Line Items", "2"}, summary[2])
	assert.Equal(t, []string{"Failed Pages", "1"}, summary[3])
	assert.Equal(t, []string{"Overall Confidence", "0.9"}, summary[4])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"invoice.png", "invoice_png"},
		{"My Scan (1).tiff", "My_Scan_1_tiff"},
		{"__weird__", "weird"},
		{"", "export"},
		{"///", "export"},
		{strings.Repeat("a", 150), strings.Repeat("a", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("invoice.png", "xlsx")

	date := time.Now().Format("2006-01-02")
	assert.Equal(t, "invoice_png_"+date+".xlsx", name)
}
