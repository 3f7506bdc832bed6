package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"invoicelens/internal/domain"
)

// SystemPrompt constrains the model to a bare JSON reply.
const SystemPrompt = `You are a precise invoice parsing assistant. ` +
	`Reply with exactly one valid JSON object that matches the schema you are given. ` +
	`Do not add commentary, explanations or markdown code fences.`

const (
	imageBegin = "BEGIN IMAGE BASE64"
	imageEnd   = "END IMAGE BASE64"
)

// BuildUserPrompt returns the per-page instruction. When encodedImage is empty
// the image is expected to travel as a separate message part.
func BuildUserPrompt(schema domain.SchemaDescriptor, filename, encodedImage string) (string, error) {
	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling schema: %w", err)
	}

	var b strings.Builder
	b.WriteString("Schema (JSON):\n")
	b.Write(schemaJSON)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Image filename: %s\n\n", filename)

	if encodedImage != "" {
		b.WriteString("Below is a base64-encoded JPEG of one page of an invoice. ")
	} else {
		b.WriteString("The attached image is one page of an invoice. ")
	}
	b.WriteString("Extract the line items (description, amount), the sub totals and the final total. ")
	b.WriteString("For any field that is missing, use null or an empty array as appropriate.\n\n")

	if encodedImage != "" {
		b.WriteString(imageBegin + "\n")
		b.WriteString(encodedImage)
		b.WriteString("\n" + imageEnd + "\n\n")
	}

	b.WriteString("IMPORTANT:\n")
	b.WriteString("- The output must be a single JSON object that a JSON parser accepts.\n")
	b.WriteString(`- Bounding boxes are either null or an object {"x":int,"y":int,"w":int,"h":int}.` + "\n")
	b.WriteString("- Give every line item a \"confidence\" between 0 and 1.\n\n")
	b.WriteString("Return the JSON now.")

	return b.String(), nil
}
