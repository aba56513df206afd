// Package cartsync holds the shared cart state and mediates every
// mutation intent against the commerce API.
package cartsync

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"clinic-storefront/internal/domain"
	"clinic-storefront/internal/normalize"
	"clinic-storefront/internal/storeapi"
)

// Transport is the single path cart reads and mutations take out of
// the process. *storeapi.Session satisfies it.
type Transport interface {
	FetchCart(ctx context.Context) (*storeapi.Cart, error)
	Mutate(ctx context.Context, action string, payload any) (*storeapi.Cart, error)
}

// MutationError reports a cart mutation the transport rejected.
type MutationError struct {
	Action string
	Err    error
}

func (e *MutationError) Error() string { return fmt.Sprintf("cart %s: %v", e.Action, e.Err) }
func (e *MutationError) Unwrap() error { return e.Err }

// errPolicy decides whether a failed mutation is returned to the
// caller or only logged. Add-to-cart and coupon outcomes must be
// user-visible; quantity changes and removals fail quietly, leaving
// the last known state in place.
type errPolicy int

const (
	swallowError errPolicy = iota
	returnError
)

// Store is the single writable owner of the normalized cart. Every
// successful transport response replaces the snapshot wholesale and
// wakes subscribers; readers treat snapshots as immutable.
type Store struct {
	transport Transport
	logger    *log.Logger

	mu          sync.RWMutex
	cart        *domain.Cart
	loading     bool
	subscribers []chan struct{}
}

func New(transport Transport, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{transport: transport, logger: logger}
}

// Cart returns the current snapshot, nil until the first successful
// load.
func (s *Store) Cart() *domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart
}

// ItemCount reports the loaded cart's item count, 0 before first load.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return 0
	}
	return s.cart.ItemCount
}

// Loading reports whether a mutation is in flight. Advisory only:
// callers use it to disable affordances, the store does not serialize
// overlapping calls.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Subscribe returns a channel signalled after every state
// replacement. A slow subscriber misses intermediate signals rather
// than blocking the store.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()
	return ch
}

// Refresh loads the current cart, typically once on startup. A failed
// refresh is logged and the previous snapshot, loaded or not, stays
// untouched.
func (s *Store) Refresh(ctx context.Context) {
	raw, err := s.transport.FetchCart(ctx)
	if err != nil {
		s.logger.Printf("refresh cart: %v", err)
		return
	}
	s.replace(raw)
}

// AddItem puts quantity units of a product in the cart. The failure,
// if any, is returned so the caller can surface it.
func (s *Store) AddItem(ctx context.Context, productID, quantity int) error {
	return s.mutate(ctx, "add-item", map[string]any{"id": productID, "quantity": quantity}, returnError)
}

// UpdateItem changes a line's quantity. Callers floor-clamp the
// quantity to 1 before calling; a failure is logged and the cart
// keeps its last known state.
func (s *Store) UpdateItem(ctx context.Context, key string, quantity int) {
	s.mutate(ctx, "update-item", map[string]any{"key": key, "quantity": quantity}, swallowError)
}

// RemoveItem drops a line from the cart, with UpdateItem's error
// policy.
func (s *Store) RemoveItem(ctx context.Context, key string) {
	s.mutate(ctx, "remove-item", map[string]any{"key": key}, swallowError)
}

// ApplyCoupon applies a coupon code, returning the failure so a bad
// code is visible to the user.
func (s *Store) ApplyCoupon(ctx context.Context, code string) error {
	return s.mutate(ctx, "apply-coupon", map[string]any{"code": code}, returnError)
}

// RemoveCoupon lifts an applied coupon, with ApplyCoupon's error
// policy.
func (s *Store) RemoveCoupon(ctx context.Context, code string) error {
	return s.mutate(ctx, "remove-coupon", map[string]any{"code": code}, returnError)
}

func (s *Store) mutate(ctx context.Context, action string, payload map[string]any, policy errPolicy) error {
	s.setLoading(true)
	defer s.setLoading(false)

	raw, err := s.transport.Mutate(ctx, action, payload)
	if err != nil {
		if policy == returnError {
			return &MutationError{Action: action, Err: err}
		}
		s.logger.Printf("cart %s: %v", action, err)
		return nil
	}
	s.replace(raw)
	return nil
}

// replace swaps in a freshly normalized snapshot and wakes
// subscribers. The cart is never patched in place.
func (s *Store) replace(raw *storeapi.Cart) {
	cart := normalize.Cart(raw)
	s.mu.Lock()
	s.cart = cart
	subs := s.subscribers
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
