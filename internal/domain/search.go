package domain

// SearchHit is one ranked search result with its raw source document.
// Score is the engine's relevance score, reported verbatim (no re-ranking).
type SearchHit struct {
	Score  float64
	Source map[string]any
}

// Str returns a string field of the source document, or "" when absent.
func (h SearchHit) Str(field string) string {
	if v, ok := h.Source[field].(string); ok {
		return v
	}
	return ""
}

// Strs returns a string-array field of the source document.
func (h SearchHit) Strs(field string) []string {
	raw, ok := h.Source[field].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// HybridQuery is a combined lexical match + approximate nearest-neighbor query.
type HybridQuery struct {
	Index         string
	TextField     string
	Query         string
	Vector        []float32
	K             int
	NumCandidates int
}

// KNNQuery is a pure nearest-neighbor query, optionally pre-filtered by tags.
type KNNQuery struct {
	Index         string
	Vector        []float32
	K             int
	NumCandidates int
	FilterTags    []string
}
