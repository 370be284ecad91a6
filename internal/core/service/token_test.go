package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenIssuer_Claims(t *testing.T) {
	issuer := NewTokenIssuer("secret", 15*time.Minute)

	token, err := issuer.IssueToken(42, "alice@example.com")
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub != "42" {
		t.Fatalf("unexpected subject: %q (%v)", sub, err)
	}
	if claims["email"] != "alice@example.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("missing expiry: %v", err)
	}
	ttl := time.Until(exp.Time)
	if ttl < 14*time.Minute || ttl > 15*time.Minute {
		t.Fatalf("expected ~15m expiry, got %v", ttl)
	}
}

func TestTokenIssuer_DefaultTTL(t *testing.T) {
	issuer := NewTokenIssuer("secret", 0)
	if issuer.ttl != defaultTokenTTL {
		t.Fatalf("expected default ttl %v, got %v", defaultTokenTTL, issuer.ttl)
	}
}

func TestTokenIssuer_WrongSecretRejected(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)

	token, err := issuer.IssueToken(1, "a@test.com")
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	_, err = jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	if err == nil {
		t.Fatalf("expected verification failure with wrong secret")
	}
}
