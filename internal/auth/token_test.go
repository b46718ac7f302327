package auth

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, expiresIn, err := issuer.Issue(42, "customer")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if expiresIn != int(AccessTokenTTL.Seconds()) {
		t.Errorf("expiresIn = %d, want %d", expiresIn, int(AccessTokenTTL.Seconds()))
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != "customer" {
		t.Errorf("Role = %q, want %q", claims.Role, "customer")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	token, _, err := NewTokenIssuer("secret-a").Issue(1, "customer")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := NewTokenIssuer("secret-b").Verify(token); err == nil {
		t.Error("Verify() with wrong secret should fail")
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	issuer.now = func() time.Time { return time.Now().Add(-2 * AccessTokenTTL) }

	token, _, err := issuer.Issue(1, "customer")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	verifier := NewTokenIssuer("test-secret")
	if _, err := verifier.Verify(token); err == nil {
		t.Error("Verify() of expired token should fail")
	}
}

func TestVerify_Garbage(t *testing.T) {
	if _, err := NewTokenIssuer("test-secret").Verify("not.a.token"); err == nil {
		t.Error("Verify() of malformed token should fail")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret-password")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "secret-password" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := VerifyPassword("secret-password", hash); err != nil {
		t.Errorf("VerifyPassword() with right password error = %v", err)
	}
	if err := VerifyPassword("wrong-password", hash); err != ErrPasswordMismatch {
		t.Errorf("VerifyPassword() with wrong password = %v, want ErrPasswordMismatch", err)
	}
}

func TestPasswordTooShort(t *testing.T) {
	if _, err := HashPassword("short"); err != ErrPasswordTooShort {
		t.Errorf("HashPassword(short) = %v, want ErrPasswordTooShort", err)
	}
}
