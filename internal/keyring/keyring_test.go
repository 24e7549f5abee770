package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestConnectionStringLifecycle(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://skater@localhost:5432/skateday?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete, GetConnectionString() error = %v, want ErrNotFound", err)
	}
}

func TestEmptyValuesRejected(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
	if err := SetToken(""); err == nil {
		t.Error("SetToken(\"\") should return an error")
	}
}

func TestTokenIsSeparateFromConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://localhost/skateday"); err != nil {
		t.Fatal(err)
	}
	if err := SetToken("abc.def.ghi"); err != nil {
		t.Fatal(err)
	}
	if err := DeleteToken(); err != nil {
		t.Fatal(err)
	}

	if _, err := GetToken(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetToken() error = %v, want ErrNotFound", err)
	}
	if got, err := GetConnectionString(); err != nil || got != "postgres://localhost/skateday" {
		t.Errorf("connection string lost: %q, %v", got, err)
	}
}

func TestDeleteMissing(t *testing.T) {
	gokeyring.MockInit()

	if err := DeleteToken(); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteToken() error = %v, want ErrNotFound", err)
	}
}

func TestIsAvailableWithMock(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("mock keyring should report available")
	}

	gokeyring.MockInitWithError(errors.New("no dbus"))
	if IsAvailable() {
		t.Error("failing keyring should report unavailable")
	}
	if _, err := GetToken(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("GetToken() error = %v, want ErrKeyringUnavailable", err)
	}
}
