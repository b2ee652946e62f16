package gemini

import (
	"encoding/json"
	"strings"

	"github.com/samber/oops"
)

// DecodeJSON extracts the first JSON object from a model answer and
// unmarshals it. Models wrap answers in markdown fences or prose, so the
// content between the first '{' and the last '}' is what gets decoded.
func DecodeJSON(content string, out any) error {
	result := strings.Trim(content, "`")
	result = strings.TrimSpace(result)
	result = strings.TrimPrefix(result, "json")
	result = strings.TrimSpace(result)

	start := strings.Index(result, "{")
	end := strings.LastIndex(result, "}")
	if start < 0 || end <= start {
		return oops.With("raw_response", content).Errorf("could not extract JSON from response")
	}

	if err := json.Unmarshal([]byte(result[start:end+1]), out); err != nil {
		return oops.With("raw_response", content).Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
