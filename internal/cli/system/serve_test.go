package system

import (
	"testing"

	"github.com/julianstephens/skateday/internal/constants"
)

func TestServerOptions_ConfiguredSecret(t *testing.T) {
	ctx, _ := setupTestContext(t)
	ctx.Config.Server.Secret = "correct-horse-battery-staple"

	opts, ephemeral, err := serverOptions(ctx)
	if err != nil {
		t.Fatalf("serverOptions() unexpected error: %v", err)
	}
	if ephemeral {
		t.Error("a configured secret should not be ephemeral")
	}
	if !opts.SecretSet {
		t.Error("SecretSet should be true")
	}
	if opts.Kind != constants.StorageSQLite {
		t.Errorf("Kind = %q, want %q", opts.Kind, constants.StorageSQLite)
	}

	token, err := opts.Issuer.Issue(7, "skater@example.com")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := opts.Issuer.Verify(token)
	if err != nil || claims.UserID != 7 {
		t.Errorf("Verify() = %+v, %v", claims, err)
	}
}

func TestServerOptions_EphemeralSecret(t *testing.T) {
	ctx, _ := setupTestContext(t)
	ctx.Config.Server.Secret = ""

	opts, ephemeral, err := serverOptions(ctx)
	if err != nil {
		t.Fatalf("serverOptions() unexpected error: %v", err)
	}
	if !ephemeral || opts.SecretSet {
		t.Errorf("ephemeral = %v, SecretSet = %v; want true, false", ephemeral, opts.SecretSet)
	}
	if opts.Issuer == nil {
		t.Error("an issuer should still be created")
	}
}

func TestServerOptions_BadTTL(t *testing.T) {
	ctx, _ := setupTestContext(t)
	ctx.Config.Server.TokenTTL = "forever"

	if _, _, err := serverOptions(ctx); err == nil {
		t.Error("expected an error for an unparsable token ttl")
	}
}
