package port

import (
	"context"

	"invoicelens/internal/domain"
)

// ExtractInput carries one page to the extraction model.
type ExtractInput struct {
	EncodedImage string
	JPEG         []byte
	Schema       domain.SchemaDescriptor
	Filename     string
	PageNum      int
}

// PageExtractor abstracts model-backed structured extraction of a page. The
// returned object is the model's reply decoded as a JSON object; its shape is
// not guaranteed to match the schema.
type PageExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (map[string]interface{}, error)
}
