package storeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestSessionTokenContinuity: once a response issues a new token,
// every subsequent request carries it.
func TestSessionTokenContinuity(t *testing.T) {
	var seenTokens []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTokens = append(seenTokens, r.Header.Get(TokenHeader))
		if len(seenTokens) == 1 {
			w.Header().Set(TokenHeader, "token-A")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second, nil)
	session := NewSession(client, NewMemoryTokenStore())

	if _, err := session.FetchCart(context.Background()); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := session.Mutate(context.Background(), "add-item", map[string]any{"id": 1, "quantity": 1}); err != nil {
		t.Fatalf("mutate: %v", err)
	}

	if len(seenTokens) != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", len(seenTokens))
	}
	if seenTokens[0] != "" {
		t.Fatalf("first request should carry no token, got %q", seenTokens[0])
	}
	if seenTokens[1] != "token-A" {
		t.Fatalf("second request should carry the issued token, got %q", seenTokens[1])
	}
}

// A token issued alongside a failure response is still kept; the
// failed request itself is never replayed.
func TestSessionKeepsTokenFromFailedResponse(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set(TokenHeader, "token-B")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"bad coupon"}`))
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second, nil)
	tokens := NewMemoryTokenStore()
	session := NewSession(client, tokens)

	if _, err := session.Mutate(context.Background(), "apply-coupon", map[string]any{"code": "BAD"}); err == nil {
		t.Fatalf("expected error from upstream rejection")
	}
	if calls != 1 {
		t.Fatalf("rejected request must not be retried, got %d calls", calls)
	}
	if tok, _ := tokens.Load(); tok != "token-B" {
		t.Fatalf("expected token-B persisted, got %q", tok)
	}
}
