package storeapi

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMemoryTokenStoreRoundTrip(t *testing.T) {
	store := NewMemoryTokenStore()
	if tok, _ := store.Load(); tok != "" {
		t.Fatalf("expected empty token, got %q", tok)
	}
	if err := store.Save("tok"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if tok, _ := store.Load(); tok != "tok" {
		t.Fatalf("expected tok, got %q", tok)
	}
}

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	store := NewFileTokenStore(path)

	if tok, err := store.Load(); err != nil || tok != "" {
		t.Fatalf("missing file should read as no session, got %q err %v", tok, err)
	}
	if err := store.Save("tok-1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if tok, err := store.Load(); err != nil || tok != "tok-1" {
		t.Fatalf("expected tok-1, got %q err %v", tok, err)
	}

	// Overwrite keeps only the newest token.
	if err := store.Save("tok-2"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if tok, _ := store.Load(); tok != "tok-2" {
		t.Fatalf("expected tok-2, got %q", tok)
	}
}

func TestFileTokenStoreExpiry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewFileTokenStore(path)

	stale, _ := json.Marshal(storedToken{Token: "old", SavedAt: time.Now().Add(-TokenTTL - time.Hour)})
	if err := os.WriteFile(path, stale, 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if tok, err := store.Load(); err != nil || tok != "" {
		t.Fatalf("expired token should read as absent, got %q err %v", tok, err)
	}
}

func TestFileTokenStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewFileTokenStore(path)

	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if tok, err := store.Load(); err != nil || tok != "" {
		t.Fatalf("corrupt file should read as no session, got %q err %v", tok, err)
	}
}
