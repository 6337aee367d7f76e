// Package prompt renders the per-domain instruction templates. Every function
// here is pure: same inputs, same prompt.
package prompt

import (
	"fmt"
	"strings"
)

// Language selects the output-language directive for a prompt.
type Language string

const (
	Indonesian Language = "id"
	English    Language = "en"
)

const legalTemplate = `You are a helpful and professional legal assistant for Indonesian SMEs (UMKM). Your task is to answer the user's question based *only* on the provided context from Indonesian law documents. Do not use any external knowledge. If the answer is not available in the context, say so. Provide the answer in clear, easy-to-understand Indonesian.

CONTEXT FROM LAW DOCUMENTS:
%s

USER'S QUESTION:
%s

ANSWER:`

// Legal renders the closed-world legal prompt. The model may only use the
// retrieved context and must say so when the answer is absent.
func Legal(query, context string) string {
	return fmt.Sprintf(legalTemplate, context, query)
}

const marketingTemplate = `You are a creative and helpful marketing consultant for Indonesian SMEs (UMKM).
Your task is to answer the user's question and provide actionable, creative marketing ideas.
Base your answer primarily on the provided context of marketing articles, but give general
actionable advice even when the context is thin.
%s Use a friendly and encouraging tone.

CONTEXT FROM MARKETING ARTICLES:
%s

USER'S QUESTION:
%s

MARKETING ADVICE:`

// Marketing renders the marketing prompt. Unlike the legal prompt it is not
// closed-world; the output language is a deployment policy, not a constant.
func Marketing(query, context string, lang Language) string {
	directive := "Respond ONLY in Indonesian."
	if lang == English {
		directive = "Respond ONLY in English."
	}
	return fmt.Sprintf(marketingTemplate, directive, context, query)
}

const operationalTemplate = `You are a friendly and insightful business analyst for an Indonesian SME (UMKM).
Based on the following summary of sales data, provide 2-3 key insights and one actionable recommendation.
Use a simple, encouraging, and easy-to-understand Indonesian language.

SALES DATA SUMMARY:
%s

INSIGHTS AND RECOMMENDATION:`

// Operational renders the sales narration prompt from a statistics JSON blob.
func Operational(statsJSON string) string {
	return fmt.Sprintf(operationalTemplate, statsJSON)
}

const imageTagsTemplate = `Look at the attached product image and respond with up to 5 single-word,
lowercase English tags describing the product and its visual style.
Respond with the tags only, comma-separated, no other text.`

// ImageTags renders the preliminary tagging prompt of the brand flow.
func ImageTags() string {
	return imageTagsTemplate
}

const brandKitTemplate = `Analyze the attached image of a product for a new UMKM business named "%s".
Based *only* on the visual information in the image%s, provide a full brand kit.

Your response MUST be in the following JSON format. Do not add any text outside the JSON block.
` + "```json" + `
{
  "image_analysis": {
    "labels": ["label1", "label2", "label3", "A descriptive label", "Another label"],
    "dominant_colors": ["main color 1", "complementary color 2", "accent color 3"]
  },
  "brand_identity": {
    "suggested_names": ["Brand Name 1", "Brand Name 2", "Brand Name 3"],
    "suggested_taglines": ["Tagline 1 that fits the product", "Tagline 2"],
    "logo_concepts_desc": [
      "A logo concept description based on the image's style and elements",
      "A second, different logo concept description"
    ],
    "instagram_bio": "A short, catchy Instagram bio for this product. Max 150 chars."
  }
}
` + "```"

// BrandKit renders the strict-JSON brand kit prompt. When inspiration context
// from the visual knowledge base is available it is appended as an extra
// reference block.
func BrandKit(businessName, inspirationContext string) string {
	extra := ""
	if inspirationContext != "" {
		extra = " and the visual inspiration references below"
	}
	p := fmt.Sprintf(brandKitTemplate, businessName, extra)
	if inspirationContext != "" {
		p += "\n\nVISUAL INSPIRATION REFERENCES:\n" + inspirationContext
	}
	return p
}

const classificationTemplate = `You are an intelligent routing agent. Your task is to classify the user's query into one of the following categories: 'LEGAL', 'MARKETING', or 'UNKNOWN'.
- 'LEGAL' is for questions about laws, regulations, permits, licenses, taxes, and legal business requirements.
- 'MARKETING' is for questions about promotion, social media, branding, content ideas, and sales strategies.
- 'UNKNOWN' is for anything else (e.g., casual conversation, operational questions about finance/HR, etc.).

Respond with only one word: LEGAL, MARKETING, or UNKNOWN.

User's query: "%s"
Classification:`

// Classification renders the router prompt enumerating the closed label set.
func Classification(query string) string {
	return fmt.Sprintf(classificationTemplate, strings.ReplaceAll(query, `"`, `'`))
}
