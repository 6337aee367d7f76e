package brand

import (
	"fmt"
	"strings"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
)

// extractJSON pulls a JSON object out of a model response that may wrap it in
// prose. Precedence: a fenced block tagged json first, then the outermost
// brace-delimited substring.
func extractJSON(text string) ([]byte, error) {
	if block, ok := fencedJSONBlock(text); ok {
		return []byte(block), nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in model response", domain.ErrGenerationFormat)
	}
	return []byte(text[start : end+1]), nil
}

func fencedJSONBlock(text string) (string, bool) {
	const fence = "```json"
	start := strings.Index(text, fence)
	if start == -1 {
		return "", false
	}
	rest := text[start+len(fence):]
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	block := strings.TrimSpace(rest[:end])
	if block == "" {
		return "", false
	}
	return block, true
}
