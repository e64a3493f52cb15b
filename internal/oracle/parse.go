package oracle

import (
	"encoding/json"
	"fmt"
	"strings"
)

// scorePayload is the JSON shape the judge model must return.
type scorePayload struct {
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// ParseScoreResult extracts a {"score", "explanation"} payload from raw
// judge output. Judge models occasionally wrap the JSON in prose or code
// fences, so parsing locates the outermost JSON object. A score outside
// [0, 1] is rejected, never clamped: a malformed score must not be rounded
// into a verdict.
func ParseScoreResult(content string) (float64, string, error) {
	open := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if open < 0 || end < open {
		return 0, "", fmt.Errorf("no JSON object in judge output: %q", truncate(content, 120))
	}

	var payload scorePayload
	if err := json.Unmarshal([]byte(content[open:end+1]), &payload); err != nil {
		return 0, "", fmt.Errorf("decode judge output: %w", err)
	}
	if payload.Score < 0 || payload.Score > 1 {
		return 0, "", fmt.Errorf("judge score %v outside [0, 1]", payload.Score)
	}
	return payload.Score, payload.Explanation, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
