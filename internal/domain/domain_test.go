package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicelens/internal/domain"
)

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.ExportFormat
		wantErr bool
	}{
		{"", domain.ExportFormatJSON, false},
		{"json", domain.ExportFormatJSON, false},
		{"csv", domain.ExportFormatCSV, false},
		{"xlsx", domain.ExportFormatXLSX, false},
		{"pdf", "", true},
		{"CSV", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseExportFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFailedPage_JSON(t *testing.T) {
	page := domain.FailedPage(3, errors.New("openai request failed: timeout"))

	data, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"page_num": 3,
		"line_items": [],
		"sub_totals": [],
		"final_total": null,
		"error": "openai request failed: timeout"
	}`, string(data))
}

func TestPageResult_ErrorOmittedOnSuccess(t *testing.T) {
	total := 12.5
	data, err := json.Marshal(domain.PageResult{
		PageNum:    1,
		LineItems:  []domain.LineItem{{Description: "Widget", Amount: 12.5, Page: 1}},
		SubTotals:  []float64{12.5},
		FinalTotal: &total,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"page_num": 1,
		"line_items": [{"description": "Widget", "amount": 12.5, "page": 1, "bbox": null, "confidence": null}],
		"sub_totals": [12.5],
		"final_total": 12.5
	}`, string(data))
}

func TestDocumentResult_LineItemCount(t *testing.T) {
	doc := domain.DocumentResult{
		Pages: []domain.PageResult{
			{LineItems: []domain.LineItem{{}, {}}},
			domain.FailedPage(2, errors.New("x")),
			{LineItems: []domain.LineItem{{}}},
		},
	}

	assert.Equal(t, 3, doc.LineItemCount())
}

func TestNewPageSchema(t *testing.T) {
	schema := domain.NewPageSchema("invoice.png", 2)

	assert.Equal(t, "invoice.png", schema.DocumentID)
	require.Len(t, schema.Pages, 1)
	assert.Equal(t, 2, schema.Pages[0].PageNum)
	require.Len(t, schema.Pages[0].LineItems, 1)
	assert.Equal(t, 2, schema.Pages[0].LineItems[0].Page)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sub_totals":[]`)
	assert.Contains(t, string(data), `"bbox":null`)
}
