package identification

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kdimtricp/plotshazam/internal/models"
)

// ExtractJSONBlock strips markdown fences and surrounding prose from
// model output, leaving the outermost JSON object. Models frequently wrap
// their answer in ```json fences or add a sentence before the object.
func ExtractJSONBlock(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.IndexRune(trimmed, '\n'); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		if strings.HasSuffix(trimmed, "```") {
			trimmed = trimmed[:len(trimmed)-3]
		}
	}
	trimmed = strings.TrimSpace(trimmed)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end >= start {
		return strings.TrimSpace(trimmed[start : end+1])
	}
	return trimmed
}

// ParseResult turns raw model output into a validated Result. Missing
// required fields are an error so that callers can route through the
// same fallback path as a transport failure. Confidence is clamped to
// [0,1] rather than rejected.
func ParseResult(raw string) (models.Result, error) {
	content := ExtractJSONBlock(raw)
	if content == "" {
		return models.Result{}, fmt.Errorf("empty model output")
	}

	var result models.Result
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return models.Result{}, fmt.Errorf("failed to parse model output as JSON: %w", err)
	}

	if strings.TrimSpace(result.MovieName) == "" {
		return models.Result{}, fmt.Errorf("model output missing movie_name")
	}
	if strings.TrimSpace(result.ReleaseDate) == "" {
		return models.Result{}, fmt.Errorf("model output missing release_date")
	}

	result.ClampConfidence()

	return result, nil
}
