package domain

// SchemaDescriptor is the output shape template sent to the model. It mirrors
// DocumentResult with placeholder values and is never checked against the
// model's reply.
type SchemaDescriptor struct {
	DocumentID        string       `json:"document_id"`
	Pages             []SchemaPage `json:"pages"`
	OverallConfidence float64      `json:"overall_confidence"`
}

// SchemaPage is the page template inside a SchemaDescriptor.
type SchemaPage struct {
	PageNum    int              `json:"page_num"`
	LineItems  []SchemaLineItem `json:"line_items"`
	SubTotals  []float64        `json:"sub_totals"`
	FinalTotal float64          `json:"final_total"`
}

// SchemaLineItem is the line item template inside a SchemaPage.
type SchemaLineItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Page        int     `json:"page"`
	BBox        *BBox   `json:"bbox"`
	Confidence  float64 `json:"confidence"`
}

// NewPageSchema builds the descriptor for a single-page request.
func NewPageSchema(documentID string, pageNum int) SchemaDescriptor {
	return SchemaDescriptor{
		DocumentID: documentID,
		Pages: []SchemaPage{
			{
				PageNum: pageNum,
				LineItems: []SchemaLineItem{
					{Description: "string", Page: pageNum},
				},
				SubTotals: []float64{},
			},
		},
	}
}
