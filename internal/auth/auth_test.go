package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("kickflip")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	if hash == "kickflip" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("HashPassword() returned %q, want a bcrypt hash", hash)
	}
	if err := CheckPassword(hash, "kickflip"); err != nil {
		t.Errorf("CheckPassword() with the right password: %v", err)
	}
	if err := CheckPassword(hash, "ollie"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("CheckPassword() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	if _, err := NewIssuer("", time.Hour); !errors.Is(err, ErrNoSecret) {
		t.Errorf("NewIssuer(\"\") error = %v, want ErrNoSecret", err)
	}
}

func TestIssueAndVerify(t *testing.T) {
	iss, err := NewIssuer("secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	token, err := iss.Issue(42, "skater@example.com")
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	claims, err := iss.Verify(token)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "skater@example.com" {
		t.Errorf("Verify() claims = %+v", claims)
	}
	if claims.ID == "" {
		t.Error("token should carry a jti")
	}

	other, _ := iss.Issue(42, "skater@example.com")
	if other == token {
		t.Error("two tokens for the same user should differ")
	}
}

func TestVerifyRejects(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour)
	token, _ := iss.Issue(1, "a@b.c")

	wrong, _ := NewIssuer("another", time.Hour)
	if _, err := wrong.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret: error = %v", err)
	}

	if _, err := iss.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage: error = %v", err)
	}

	later, _ := NewIssuer("secret", time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := later.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired: error = %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := iss.Verify(unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("alg none: error = %v", err)
	}
}

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := GenerateSecret()
	if len(a) != 64 || a == b {
		t.Errorf("GenerateSecret() = %q, %q", a, b)
	}
}
