package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errNoObject = errors.New("reply contains no JSON object")

// DecodeReply decodes a model reply into a JSON object in two steps: the
// whole text, then the span from the first '{' to the last '}'. Nothing else
// is attempted. The returned error is never wrapped in an *Error; callers
// attach the provider.
func DecodeReply(text string) (map[string]interface{}, error) {
	var obj map[string]interface{}
	directErr := json.Unmarshal([]byte(text), &obj)
	if directErr == nil && obj != nil {
		return obj, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, errNoObject
	}

	obj = nil
	if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("malformed JSON object: %w", err)
	}
	if obj == nil {
		return nil, errNoObject
	}
	return obj, nil
}
