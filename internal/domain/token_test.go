package domain

import (
	"strings"
	"testing"
)

func TestGenerateIngestToken(t *testing.T) {
	token, err := GenerateIngestToken()
	if err != nil {
		t.Fatalf("GenerateIngestToken() unexpected error: %v", err)
	}

	if !strings.HasPrefix(token, ingestTokenPrefix) {
		t.Errorf("token prefix = %s, want prefix %s", token, ingestTokenPrefix)
	}

	if len(token) != len(ingestTokenPrefix)+ingestTokenLength {
		t.Errorf("token length = %d, want %d", len(token), len(ingestTokenPrefix)+ingestTokenLength)
	}

	for _, r := range strings.TrimPrefix(token, ingestTokenPrefix) {
		if !strings.ContainsRune(base62Chars, r) {
			t.Errorf("token contains non-base62 character %q: %s", r, token)
		}
	}
}

func TestGenerateIngestToken_Uniqueness(t *testing.T) {
	tokens := make(map[string]bool)
	iterations := 1000

	for i := 0; i < iterations; i++ {
		token, err := GenerateIngestToken()
		if err != nil {
			t.Fatalf("GenerateIngestToken() failed: %v", err)
		}

		if tokens[token] {
			t.Errorf("duplicate token generated: %s", token)
		}
		tokens[token] = true
	}
}

