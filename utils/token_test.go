package utils

import (
	"strings"
	"testing"
)

func TestGenerateManageToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		tok, err := GenerateManageToken()
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		// 32 bytes base64url-encoded without padding.
		if len(tok) != 43 {
			t.Fatalf("expected 43-char token, got %d (%q)", len(tok), tok)
		}
		if strings.ContainsAny(tok, "+/=") {
			t.Fatalf("expected URL-safe token, got %q", tok)
		}
		if seen[tok] {
			t.Fatalf("duplicate token %q", tok)
		}
		seen[tok] = true
	}
}

func TestGenerateOTPCode(t *testing.T) {
	for i := 0; i < 64; i++ {
		code, err := GenerateOTPCode()
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6-digit code, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("expected numeric code, got %q", code)
			}
		}
	}
}
