// Package brand implements the brand kit agent: tag the product image, look up
// visual inspiration by image similarity, then generate a structured brand kit.
// The tagging and inspiration steps soft-fail; only kit generation is critical.
package brand

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
	"github.com/umkm-go/umkm-ai-backend/internal/usecase/prompt"
)

const (
	fallbackTag    = "product"
	maxImageTags   = 5
	placeholderURL = "https://via.placeholder.com/150"
)

// Service handles brand kit generation.
type Service struct {
	gen      Generator
	imgEmbed domain.ImageEmbedder
	search   VisualSearcher
	params   Params
	log      *zap.Logger
}

// New creates a brand agent service. imgEmbed may be nil when no image
// embedding provider was initialized; the visual lookup is then skipped.
func New(gen Generator, imgEmbed domain.ImageEmbedder, search VisualSearcher, params Params, log *zap.Logger) *Service {
	return &Service{gen: gen, imgEmbed: imgEmbed, search: search, params: params, log: log}
}

// kitPayload is the JSON schema the generation prompt demands.
type kitPayload struct {
	ImageAnalysis struct {
		Labels         []string `json:"labels"`
		DominantColors []string `json:"dominant_colors"`
	} `json:"image_analysis"`
	BrandIdentity struct {
		SuggestedNames    []string `json:"suggested_names"`
		SuggestedTaglines []string `json:"suggested_taglines"`
		LogoConceptsDesc  []string `json:"logo_concepts_desc"`
		InstagramBio      string   `json:"instagram_bio"`
	} `json:"brand_identity"`
}

// GenerateKit runs the full brand flow for an uploaded product image.
func (s *Service) GenerateKit(ctx context.Context, businessName string, image []byte, mimeType string) (Response, error) {
	if strings.TrimSpace(businessName) == "" {
		return Response{}, fmt.Errorf("%w: business_name must not be empty", domain.ErrValidation)
	}
	if len(image) == 0 {
		return Response{}, fmt.Errorf("%w: image must not be empty", domain.ErrValidation)
	}
	if s.gen == nil {
		return Response{}, domain.ErrGenerationUnavailable
	}

	var degraded []string
	img := &domain.ImagePart{MIMEType: mimeType, Data: image}

	tags, ok := s.imageTags(ctx, img)
	if !ok {
		degraded = append(degraded, DegradedImageTagging)
	}

	inspirations, ok := s.visualInspirations(ctx, image, mimeType, tags)
	if !ok {
		degraded = append(degraded, DegradedVisualSearch)
	}

	raw, err := s.gen.Generate(ctx, domain.GenerationRequest{
		Prompt: prompt.BrandKit(businessName, inspirationContext(inspirations)),
		Image:  img,
		JSON:   true,
	})
	if err != nil {
		return Response{}, fmt.Errorf("generate brand kit: %w", err)
	}

	data, err := extractJSON(raw)
	if err != nil {
		return Response{}, err
	}
	var payload kitPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return Response{}, fmt.Errorf("%w: decode brand kit: %v", domain.ErrGenerationFormat, err)
	}

	concepts := make([]domain.LogoConcept, 0, len(payload.BrandIdentity.LogoConceptsDesc))
	for _, desc := range payload.BrandIdentity.LogoConceptsDesc {
		concepts = append(concepts, domain.LogoConcept{Description: desc, ImageURL: placeholderURL})
	}

	kit := domain.BrandKit{
		SuggestedNames:     payload.BrandIdentity.SuggestedNames,
		SuggestedTaglines:  payload.BrandIdentity.SuggestedTaglines,
		LogoConcepts:       concepts,
		InstagramBio:       payload.BrandIdentity.InstagramBio,
		ImageAnalysis:      domain.ImageAnalysis(payload.ImageAnalysis),
		VisualInspirations: inspirations,
	}
	return Response{BrandKit: kit, Degraded: degraded}, nil
}

// imageTags asks the model for up to five single-word tags. On any failure it
// falls back to the generic "product" tag and reports the step as degraded.
func (s *Service) imageTags(ctx context.Context, img *domain.ImagePart) ([]string, bool) {
	raw, err := s.gen.Generate(ctx, domain.GenerationRequest{Prompt: prompt.ImageTags(), Image: img})
	if err != nil {
		s.log.Warn("image tagging failed, using fallback tag", zap.Error(err))
		return []string{fallbackTag}, false
	}

	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || strings.ContainsAny(tag, " \n\t") {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == maxImageTags {
			break
		}
	}
	if len(tags) == 0 {
		s.log.Warn("image tagging returned no usable tags, using fallback tag", zap.String("raw", raw))
		return []string{fallbackTag}, false
	}
	return tags, true
}

// visualInspirations embeds the image and looks up similar references in the
// visual knowledge base, filtered to the given tags. The lookup is best
// effort: a missing embedder or a failed call yields an empty, never nil,
// list, so the kit always serializes visual_inspirations as a JSON array.
func (s *Service) visualInspirations(ctx context.Context, image []byte, mimeType string, tags []string) ([]domain.VisualInspiration, bool) {
	none := []domain.VisualInspiration{}
	if s.imgEmbed == nil {
		return none, true // not configured, not degraded
	}

	vector, err := s.imgEmbed.EmbedImage(ctx, image, mimeType)
	if err != nil {
		s.log.Warn("image embedding failed, skipping visual lookup", zap.Error(err))
		return none, false
	}

	hits, err := s.search.KNN(ctx, domain.KNNQuery{
		Index:         s.params.VisualIndex,
		Vector:        vector,
		K:             s.params.K,
		NumCandidates: s.params.NumCandidates,
		FilterTags:    tags,
	})
	if err != nil {
		s.log.Warn("visual lookup failed, continuing without inspirations", zap.Error(err))
		return none, false
	}

	inspirations := make([]domain.VisualInspiration, 0, len(hits))
	for _, hit := range hits {
		inspirations = append(inspirations, domain.VisualInspiration{
			Category: hit.Str("category"),
			FilePath: hit.Str("file_path"),
			Tags:     hit.Strs("tags"),
		})
	}
	return inspirations, true
}

func inspirationContext(inspirations []domain.VisualInspiration) string {
	if len(inspirations) == 0 {
		return ""
	}
	var b strings.Builder
	for _, insp := range inspirations {
		fmt.Fprintf(&b, "- [%s] %s (tags: %s)\n", insp.Category, insp.FilePath, strings.Join(insp.Tags, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}
