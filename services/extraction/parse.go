// File: services/extraction/parse.go
package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"flavortable/models"
)

// ParseExtraction decodes the model's free-text answer into an
// ExtractionResult. Models wrap JSON in markdown fences or surround it with
// prose; both are tolerated. Anything that still fails to decode is an
// ErrUnavailable, never a panic.
func ParseExtraction(raw string) (*models.ExtractionResult, error) {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	// Fall back to the outermost braces when prose surrounds the object.
	if !strings.HasPrefix(clean, "{") {
		start := strings.Index(clean, "{")
		end := strings.LastIndex(clean, "}")
		if start == -1 || end <= start {
			return nil, fmt.Errorf("%w: no JSON object in response", ErrUnavailable)
		}
		clean = clean[start : end+1]
	}

	var result models.ExtractionResult
	if err := json.Unmarshal([]byte(clean), &result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return &result, nil
}
