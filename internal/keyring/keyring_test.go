package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

const testDSN = "postgres://poet@localhost:5432/poems?sslmode=disable"

func TestSaveAndLoadDSN(t *testing.T) {
	gokeyring.MockInit()

	if err := SaveDSN("  " + testDSN + "\n"); err != nil {
		t.Fatalf("SaveDSN() failed: %v", err)
	}

	got, err := LoadDSN()
	if err != nil {
		t.Fatalf("LoadDSN() failed: %v", err)
	}
	if got != testDSN {
		t.Errorf("LoadDSN() = %q, want %q", got, testDSN)
	}
}

func TestSaveDSNEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SaveDSN("   "); !errors.Is(err, ErrEmpty) {
		t.Errorf("SaveDSN(blank) error = %v, want %v", err, ErrEmpty)
	}
}

func TestForgetDSN(t *testing.T) {
	gokeyring.MockInit()

	if err := ForgetDSN(); !errors.Is(err, ErrNotFound) {
		t.Errorf("ForgetDSN() on empty keyring error = %v, want %v", err, ErrNotFound)
	}

	if err := SaveDSN(testDSN); err != nil {
		t.Fatalf("SaveDSN() failed: %v", err)
	}
	if err := ForgetDSN(); err != nil {
		t.Fatalf("ForgetDSN() failed: %v", err)
	}
	if _, err := LoadDSN(); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadDSN() after forget error = %v, want %v", err, ErrNotFound)
	}
}

func TestResolve(t *testing.T) {
	gokeyring.MockInit()

	t.Run("plain path passes through", func(t *testing.T) {
		got, fromKeyring, err := Resolve("/tmp/poems.db")
		if err != nil || fromKeyring || got != "/tmp/poems.db" {
			t.Errorf("Resolve() = %q, %v, %v", got, fromKeyring, err)
		}
	})

	t.Run("sentinel without stored dsn", func(t *testing.T) {
		_ = ForgetDSN()
		_, fromKeyring, err := Resolve("keyring")
		if !fromKeyring || !errors.Is(err, ErrNotFound) {
			t.Errorf("Resolve() = %v, %v, want keyring ErrNotFound", fromKeyring, err)
		}
	})

	t.Run("sentinel with stored dsn", func(t *testing.T) {
		if err := SaveDSN(testDSN); err != nil {
			t.Fatal(err)
		}
		got, fromKeyring, err := Resolve("KEYRING")
		if err != nil || !fromKeyring || got != testDSN {
			t.Errorf("Resolve() = %q, %v, %v", got, fromKeyring, err)
		}
	})
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("IsAvailable() = false with mock keyring")
	}
}
