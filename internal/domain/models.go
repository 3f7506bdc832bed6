package domain

// DocumentResult is the aggregated extraction result for one uploaded document.
type DocumentResult struct {
	DocumentID        string       `json:"document_id"`
	Pages             []PageResult `json:"pages"`
	OverallConfidence float64      `json:"overall_confidence"`
}

// PageResult holds what was extracted from a single page. Error is set when
// extraction for the page failed; the other fields are then empty.
type PageResult struct {
	PageNum    int        `json:"page_num"`
	LineItems  []LineItem `json:"line_items"`
	SubTotals  []float64  `json:"sub_totals"`
	FinalTotal *float64   `json:"final_total"`
	Error      string     `json:"error,omitempty"`
}

// LineItem is one extracted invoice row.
type LineItem struct {
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Page        int      `json:"page"`
	BBox        *BBox    `json:"bbox"`
	Confidence  *float64 `json:"confidence"`
}

// BBox is a pixel bounding box on the page image.
type BBox struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// FailedPage returns the placeholder entry recorded for a page whose
// extraction did not succeed.
func FailedPage(pageNum int, err error) PageResult {
	return PageResult{
		PageNum:   pageNum,
		LineItems: []LineItem{},
		SubTotals: []float64{},
		Error:     err.Error(),
	}
}

// LineItemCount returns the number of line items across all pages.
func (d *DocumentResult) LineItemCount() int {
	n := 0
	for i := range d.Pages {
		n += len(d.Pages[i].LineItems)
	}
	return n
}

// PageImage is one page of an upload, normalized to JPEG. Encoded holds the
// base64 text of JPEG.
type PageImage struct {
	Number  int
	JPEG    []byte
	Encoded string
}
