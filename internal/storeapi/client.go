package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"clinic-storefront/internal/domain"
)

// cartPath is the cart resource under the upstream API base URL.
const cartPath = "wc/store/v1/cart"

// TokenHeader carries the opaque session token in both directions.
const TokenHeader = "Cart-Token"

// ValidActions enumerates the mutation sub-resources the cart
// endpoint exposes. Anything else is rejected locally.
var ValidActions = []string{
	"add-item",
	"update-item",
	"remove-item",
	"apply-coupon",
	"remove-coupon",
}

func validAction(action string) bool {
	for _, a := range ValidActions {
		if a == action {
			return true
		}
	}
	return false
}

// Client is the sole path by which cart reads and mutations leave the
// process. It attaches the caller's session token to every request
// and reports back any new token the upstream issues.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

func New(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Result is one upstream exchange: the raw response body, the HTTP
// status, and the session token the upstream issued, if any.
type Result struct {
	Status int
	Body   []byte
	Token  string
}

// OK reports whether the upstream accepted the request.
func (r *Result) OK() bool { return r.Status >= 200 && r.Status < 300 }

// FetchCartRaw issues the read-only cart request. The error return
// covers only local and network failures; upstream rejections come
// back as a Result with a non-success status.
func (c *Client) FetchCartRaw(ctx context.Context, token string) (*Result, error) {
	return c.do(ctx, http.MethodGet, "", token, nil)
}

// MutateRaw issues a state-changing request against one of the action
// sub-resources. The payload is forwarded verbatim; only the action
// itself is gated here, before any network I/O.
func (c *Client) MutateRaw(ctx context.Context, token, action string, payload []byte) (*Result, error) {
	if !validAction(action) {
		return nil, &domain.InvalidActionError{Action: action, Valid: ValidActions}
	}
	return c.do(ctx, http.MethodPost, "/"+action, token, payload)
}

// FetchCart is the typed read: decodes the body and surfaces upstream
// rejections as TransportError. The second return is the new session
// token, present on success and failure alike.
func (c *Client) FetchCart(ctx context.Context, token string) (*Cart, string, error) {
	res, err := c.FetchCartRaw(ctx, token)
	if err != nil {
		return nil, "", err
	}
	cart, err := decodeCart(res)
	return cart, res.Token, err
}

// Mutate is the typed counterpart of MutateRaw.
func (c *Client) Mutate(ctx context.Context, token, action string, payload any) (*Cart, string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, "", err
	}
	res, err := c.MutateRaw(ctx, token, action, body)
	if err != nil {
		return nil, "", err
	}
	cart, err := decodeCart(res)
	return cart, res.Token, err
}

// Ping checks upstream reachability for readiness probes.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+cartPath, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint, token string, body []byte) (*Result, error) {
	url := c.baseURL + "/" + cartPath + endpoint

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Result{
		Status: resp.StatusCode,
		Body:   data,
		Token:  resp.Header.Get(TokenHeader),
	}, nil
}

func decodeCart(res *Result) (*Cart, error) {
	if !res.OK() {
		return nil, &domain.TransportError{StatusCode: res.Status, Message: upstreamMessage(res.Body)}
	}
	var cart Cart
	if err := json.Unmarshal(res.Body, &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &cart, nil
}

// upstreamMessage pulls the human-readable message out of an error
// body, tolerating bodies that are not the expected shape.
func upstreamMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "cart operation failed"
}
