// Package domain holds the shared types and contracts of the UMKM agent pipeline.
// All entities here are built fresh per request and discarded after the response
// is serialized; persistence lives entirely in the external search index.
package domain

// Query is a single user question routed to an agent.
type Query struct {
	Text   string `json:"query"`
	UserID string `json:"user_id,omitempty"`
}

// SourceChunk is a retrieved fragment of a legal document.
// Score is the search engine's relevance score, reported verbatim.
type SourceChunk struct {
	ChunkID      string  `json:"chunk_id"`
	ChapterTitle string  `json:"chapter_title"`
	Text         string  `json:"text"`
	Score        float64 `json:"score"`
}

// SourceArticle is a retrieved marketing knowledge-base article.
type SourceArticle struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Score float64 `json:"score"`
}

// Intent is the closed label set produced by the intent classifier.
type Intent string

const (
	IntentLegal     Intent = "LEGAL"
	IntentMarketing Intent = "MARKETING"
	IntentUnknown   Intent = "UNKNOWN"
)

// ImageAnalysis is the model's visual read of an uploaded product image.
type ImageAnalysis struct {
	Labels         []string `json:"labels"`
	DominantColors []string `json:"dominant_colors"`
}

// LogoConcept pairs a generated logo description with a placeholder image URL.
type LogoConcept struct {
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

// VisualInspiration is a nearest-neighbor hit from the visual knowledge base.
type VisualInspiration struct {
	Category string   `json:"category"`
	FilePath string   `json:"file_path"`
	Tags     []string `json:"tags"`
}

// BrandKit is the aggregate output of the brand agent.
type BrandKit struct {
	SuggestedNames     []string            `json:"suggested_names"`
	SuggestedTaglines  []string            `json:"suggested_taglines"`
	LogoConcepts       []LogoConcept       `json:"logo_concepts"`
	InstagramBio       string              `json:"instagram_bio"`
	ImageAnalysis      ImageAnalysis       `json:"image_analysis"`
	VisualInspirations []VisualInspiration `json:"visual_inspirations"`
}

// ProductByQuantity names the best-selling product of a sales dataset.
type ProductByQuantity struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// ProductByRevenue names the highest-revenue product of a sales dataset.
type ProductByRevenue struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// SalesStatistics are the deterministic aggregates of an uploaded sales dataset.
type SalesStatistics struct {
	TotalRevenue          float64           `json:"total_revenue"`
	TotalItemsSold        int64             `json:"total_items_sold"`
	BestSellingByQuantity ProductByQuantity `json:"best_selling_by_quantity"`
	HighestRevenueProduct ProductByRevenue  `json:"highest_revenue_product"`
}

// Opportunity is a feed item matched by the proactive keyword scan.
type Opportunity struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}
