package token

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/EgorLis/med-vault/internal/domain"
)

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	m := New("super-secret", "med-vault", time.Hour)
	userID := uuid.New()

	tok, issued, err := m.Issue(context.Background(), userID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if issued.JTI == "" {
		t.Fatal("issued claims without jti")
	}

	got, err := m.Parse(context.Background(), tok)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got.UserID != userID {
		t.Fatalf("userID mismatch: got %s want %s", got.UserID, userID)
	}
	if got.JTI != issued.JTI {
		t.Fatalf("jti mismatch: got %q want %q", got.JTI, issued.JTI)
	}
	if !got.ExpiresAt.After(time.Now()) {
		t.Fatalf("token already expired: %s", got.ExpiresAt)
	}
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	m := New("secret", "med-vault", -time.Minute)
	tok, _, err := m.Issue(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err = m.Parse(context.Background(), tok); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := New("right-secret", "med-vault", time.Hour).Issue(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err = New("wrong-secret", "med-vault", time.Hour).Parse(context.Background(), tok); err == nil {
		t.Fatal("expected error for wrong secret, got nil")
	}
}

func TestParse_Tampered(t *testing.T) {
	t.Parallel()

	m := New("secret", "med-vault", time.Hour)
	tok, _, err := m.Issue(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// портим полезную нагрузку, подпись остаётся от оригинала
	parts := strings.Split(string(tok), ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token format: %q", tok)
	}
	parts[1] = "eyJmYWtlIjoicGF5bG9hZCJ9"
	if _, err = m.Parse(context.Background(), domain.Token(strings.Join(parts, "."))); err == nil {
		t.Fatal("expected error for tampered payload, got nil")
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	m := New("secret", "med-vault", time.Hour)
	if _, err := m.Parse(context.Background(), "not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token, got nil")
	}
}

func TestParse_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	m := New("secret", "med-vault", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err = m.Parse(context.Background(), domain.Token(raw)); err == nil {
		t.Fatal("expected error for alg=none token, got nil")
	}
}
