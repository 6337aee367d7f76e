package brand

import (
	"errors"
	"testing"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
)

func TestExtractJSON(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"fenced block": {
			in:   "Here is the kit:\n```json\n{\"a\": 1}\n```\nEnjoy!",
			want: `{"a": 1}`,
		},
		"fenced block wins over stray braces": {
			in:   "{\"noise\": true}\n```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		"bare object": {
			in:   `{"a": 1}`,
			want: `{"a": 1}`,
		},
		"object inside prose": {
			in:   `The result is {"a": {"b": 2}} as requested.`,
			want: `{"a": {"b": 2}}`,
		},
		"unclosed fence falls back to braces": {
			in:   "```json\n{\"a\": 1}",
			want: `{"a": 1}`,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := extractJSON(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractJSON_NoObject(t *testing.T) {
	for name, in := range map[string]string{
		"plain prose":  "sorry, I cannot help with that",
		"empty":        "",
		"only closing": "} nothing here",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := extractJSON(in)
			if !errors.Is(err, domain.ErrGenerationFormat) {
				t.Fatalf("err = %v, want ErrGenerationFormat", err)
			}
		})
	}
}
