package prompt

import (
	"strings"
	"testing"
)

func TestLegal_ContainsContextAndQuestion(t *testing.T) {
	p := Legal("Apa syarat izin PIRT?", "--- Source: uu20-ch1-1 ---\nisi pasal")

	if !strings.Contains(p, "Apa syarat izin PIRT?") {
		t.Error("prompt must embed the user's question")
	}
	if !strings.Contains(p, "uu20-ch1-1") {
		t.Error("prompt must embed the retrieved context")
	}
	if !strings.Contains(p, "based *only* on the provided context") {
		t.Error("legal prompt must be closed-world")
	}
	if !strings.Contains(p, "Indonesian") {
		t.Error("legal prompt must direct Indonesian output")
	}
}

func TestMarketing_LanguageDirective(t *testing.T) {
	id := Marketing("ide konten", "ctx", Indonesian)
	if !strings.Contains(id, "Respond ONLY in Indonesian.") {
		t.Error("expected Indonesian directive")
	}

	en := Marketing("ide konten", "ctx", English)
	if !strings.Contains(en, "Respond ONLY in English.") {
		t.Error("expected English directive")
	}
}

func TestBrandKit_SchemaAndInspiration(t *testing.T) {
	plain := BrandKit("Kopi Senja", "")
	if !strings.Contains(plain, `"image_analysis"`) || !strings.Contains(plain, `"brand_identity"`) {
		t.Error("brand prompt must demand the fixed JSON schema")
	}
	if strings.Contains(plain, "VISUAL INSPIRATION REFERENCES") {
		t.Error("no inspiration block expected without context")
	}

	withCtx := BrandKit("Kopi Senja", "logos: mock/logo.png")
	if !strings.Contains(withCtx, "VISUAL INSPIRATION REFERENCES:\nlogos: mock/logo.png") {
		t.Error("inspiration context must be appended")
	}
}

func TestClassification_EscapesQuotes(t *testing.T) {
	p := Classification(`bagaimana cara "viral" di tiktok`)
	if strings.Contains(p, `"viral"`) {
		t.Error("double quotes in the query must be neutralized")
	}
	for _, label := range []string{"LEGAL", "MARKETING", "UNKNOWN"} {
		if !strings.Contains(p, label) {
			t.Errorf("prompt must enumerate label %s", label)
		}
	}
}
