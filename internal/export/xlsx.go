package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"invoicelens/internal/domain"
)

// Sheet names of the XLSX workbook.
const (
	LineItemsSheet = "Line Items"
	SummarySheet   = "Summary"
)

// WriteXLSX renders result as a workbook with a line item sheet and a summary sheet.
func WriteXLSX(out io.Writer, result *domain.DocumentResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LineItemsSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if err := setRow(f, LineItemsSheet, 1, toCells(columns)); err != nil {
		return err
	}
	for i, e := range entries(result) {
		if err := setRow(f, LineItemsSheet, i+2, entryCells(result.DocumentID, e)); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Document ID", result.DocumentID},
		{"Pages", len(result.Pages)},
		{"Line Items", result.LineItemCount()},
		{"Failed Pages", failedPages(result)},
		{"Overall Confidence", result.OverallConfidence},
	}
	for i, row := range summary {
		if err := setRow(f, SummarySheet, i+1, row); err != nil {
			return err
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}

// entryCells keeps numeric columns numeric so spreadsheet formulas work.
func entryCells(documentID string, e entry) []interface{} {
	cells := toCells(entryRow(documentID, e))
	cells[1] = e.page.PageNum
	if e.page.FinalTotal != nil {
		cells[8] = *e.page.FinalTotal
	}
	if e.item == nil {
		return cells
	}
	cells[3] = e.item.Amount
	cells[4] = e.item.Page
	if e.item.Confidence != nil {
		cells[5] = *e.item.Confidence
	}
	return cells
}

func failedPages(result *domain.DocumentResult) int {
	n := 0
	for i := range result.Pages {
		if result.Pages[i].Error != "" {
			n++
		}
	}
	return n
}
