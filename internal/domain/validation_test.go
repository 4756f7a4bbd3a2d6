package domain

import (
	"bytes"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	if got := NormalizeEmail("  Ivan.Petrov@Example.COM "); got != "ivan.petrov@example.com" {
		t.Fatalf("NormalizeEmail = %q", got)
	}
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@b.co", "ivan.petrov@example.com", "x+tag@sub.domain.org"}
	for _, s := range valid {
		if !ValidEmail(s) {
			t.Errorf("ValidEmail(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "plain", "a@b", "a b@c.com", "@example.com"}
	for _, s := range invalid {
		if ValidEmail(s) {
			t.Errorf("ValidEmail(%q) = true, want false", s)
		}
	}
}

func TestValidPhone(t *testing.T) {
	t.Parallel()

	valid := []string{"+7 (900) 123-45-67", "+4930123456", "123456"}
	for _, s := range valid {
		if !ValidPhone(s) {
			t.Errorf("ValidPhone(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "abc", "12345", "+7900123456789012345678"}
	for _, s := range invalid {
		if ValidPhone(s) {
			t.Errorf("ValidPhone(%q) = true, want false", s)
		}
	}
}

func TestValidGender(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"male", "female", "other"} {
		if !ValidGender(s) {
			t.Errorf("ValidGender(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "Male", "unknown"} {
		if ValidGender(s) {
			t.Errorf("ValidGender(%q) = true, want false", s)
		}
	}
}

func TestDetectMIME(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body []byte
		want string
	}{
		{"pdf", []byte("%PDF-1.7 binary tail"), "application/pdf"},
		{"png", []byte("\x89PNG\r\n\x1a\n00000000"), "image/png"},
		{"jpeg", append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0}, 16)...), "image/jpeg"},
		// charset отрезается от text/plain
		{"text", []byte("hello world"), "text/plain"},
	}
	for _, tc := range cases {
		if got := DetectMIME(tc.body); got != tc.want {
			t.Errorf("%s: DetectMIME = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDetectMIME_UsesOnlyHead(t *testing.T) {
	t.Parallel()

	// большой файл: тип определяется по первым 512 байтам, хвост не читается
	big := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte{0xAB}, 1<<20)...)
	if got := DetectMIME(big); got != "application/pdf" {
		t.Fatalf("DetectMIME = %q, want application/pdf", got)
	}
}

func TestDocMIMETable(t *testing.T) {
	t.Parallel()

	for mime, wantExt := range map[string]string{
		"application/pdf": ".pdf",
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
	} {
		ext, ok := ExtForDocMIME(mime)
		if !ok || ext != wantExt {
			t.Errorf("ExtForDocMIME(%q) = %q,%v", mime, ext, ok)
		}
	}
	if _, ok := ExtForDocMIME("text/plain"); ok {
		t.Error("text/plain must not be an allowed document type")
	}
	if _, ok := ExtForImageMIME("application/pdf"); ok {
		t.Error("pdf must not be an allowed image type")
	}
}

func TestNormalizeCategory(t *testing.T) {
	t.Parallel()

	if got := NormalizeCategory("X-Ray"); got != CategoryXRay {
		t.Fatalf("NormalizeCategory = %q", got)
	}
	if got := NormalizeCategory("Selfie"); got != CategoryOther {
		t.Fatalf("unknown category must map to Other, got %q", got)
	}
	if got := NormalizeCategory(""); got != CategoryOther {
		t.Fatalf("empty category must map to Other, got %q", got)
	}
}
