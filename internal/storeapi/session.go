package storeapi

import "context"

// Session binds a Client to a TokenStore so every outbound request
// carries the most recently observed session token and every token
// the upstream issues is kept. Centralizing this here means no call
// site can silently drop session continuity.
type Session struct {
	client *Client
	tokens TokenStore
}

func NewSession(client *Client, tokens TokenStore) *Session {
	return &Session{client: client, tokens: tokens}
}

// FetchCart loads the current cart under the stored session.
func (s *Session) FetchCart(ctx context.Context) (*Cart, error) {
	token, err := s.tokens.Load()
	if err != nil {
		return nil, err
	}
	cart, newToken, err := s.client.FetchCart(ctx, token)
	s.keep(newToken)
	return cart, err
}

// Mutate performs a cart mutation under the stored session. A failed
// mutation is never replayed with the token it was sent with.
func (s *Session) Mutate(ctx context.Context, action string, payload any) (*Cart, error) {
	token, err := s.tokens.Load()
	if err != nil {
		return nil, err
	}
	cart, newToken, err := s.client.Mutate(ctx, token, action, payload)
	s.keep(newToken)
	return cart, err
}

func (s *Session) keep(token string) {
	if token == "" {
		return
	}
	if err := s.tokens.Save(token); err != nil {
		s.client.logger.Printf("persist cart token: %v", err)
	}
}
