package tokenstore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mawa3id/booking-client/internal/core/domain"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}

	if err := store.Store(domain.Credentials{Token: "abc", RefreshToken: "def"}); err != nil {
		t.Fatalf("Store returned error: %v", err)
	}

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if creds.Token != "abc" || creds.RefreshToken != "def" {
		t.Errorf("loaded %+v, want stored pair", creds)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat credentials file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("file mode = %o, want 0600", perm)
		}
	}
}

func TestFileStoreMissingFileIsAnonymous(t *testing.T) {
	store, err := NewFile(filepath.Join(t.TempDir(), "never-written.json"))
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !creds.IsAnonymous() {
		t.Errorf("missing file must read as anonymous, got %+v", creds)
	}
}

func TestFileStoreClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}
	if err := store.Store(domain.Credentials{Token: "abc"}); err != nil {
		t.Fatalf("Store returned error: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected credentials file removed")
	}

	// Clearing an already-cleared store is not an error.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear returned error: %v", err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	store, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}
	if _, err := store.Load(); err == nil {
		t.Error("expected error for corrupt credentials file")
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemory()

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !creds.IsAnonymous() {
		t.Errorf("fresh store must be anonymous, got %+v", creds)
	}

	if err := store.Store(domain.Credentials{Token: "abc", RefreshToken: "def"}); err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if creds, _ = store.Load(); creds.Token != "abc" {
		t.Errorf("loaded %+v, want stored pair", creds)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if creds, _ = store.Load(); !creds.IsAnonymous() {
		t.Errorf("cleared store must be anonymous, got %+v", creds)
	}
}
