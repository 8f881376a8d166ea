// Package orderbook reads matched-order state from the orderbook HTTP API.
package orderbook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/swap-status/internal/metrics"
	"github.com/chainsafe/swap-status/pkg/config"
)

const (
	createIDPlaceholder = "{create_id}"

	// Limit response reads so a misbehaving API can't exhaust memory.
	maxBodyBytes    = 1 << 20
	maxErrBodyBytes = 4096

	defaultHTTPTimeout = 10 * time.Second
)

// StatusOK is the status value the API uses for successful lookups.
const StatusOK = "Ok"

// Swap is one leg of a matched order.
type Swap struct {
	SwapID                string `json:"swap_id,omitzero"`
	Chain                 string `json:"chain,omitzero"`
	InitiateTxHash        string `json:"initiate_tx_hash,omitzero"`
	RedeemTxHash          string `json:"redeem_tx_hash,omitzero"`
	RefundTxHash          string `json:"refund_tx_hash,omitzero"`
	CurrentConfirmations  int    `json:"current_confirmations,omitzero"`
	RequiredConfirmations *int   `json:"required_confirmations,omitempty"`
}

// MatchedOrder is the result payload of a matched-order lookup.
type MatchedOrder struct {
	CreateOrder     json.RawMessage `json:"create_order,omitempty"`
	SourceSwap      *Swap           `json:"source_swap,omitempty"`
	DestinationSwap *Swap           `json:"destination_swap,omitempty"`
}

// IsEmpty reports whether the payload carries no swap legs.
func (m *MatchedOrder) IsEmpty() bool {
	return m == nil || (m.SourceSwap == nil && m.DestinationSwap == nil && len(m.CreateOrder) == 0)
}

// MatchedOrderResponse is the API envelope.
type MatchedOrderResponse struct {
	Status string        `json:"status"`
	Result *MatchedOrder `json:"result,omitempty"`
	Error  string        `json:"error,omitzero"`
	// Raw holds the response body as received, for passthrough to callers.
	Raw json.RawMessage `json:"-"`
}

// APIError wraps a failed matched-order lookup.
type APIError struct {
	CreateID   string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("matched order API request failed for create_id '%s': status %d: %v", e.CreateID, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("matched order API request failed for create_id '%s': %v", e.CreateID, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Client calls the matched-order endpoint.
type Client struct {
	urlTemplate string
	httpClient  *http.Client
	logger      *zap.Logger
}

// Option configures the client using the functional options pattern.
type Option func(*settings)

type settings struct {
	logger     *zap.Logger
	httpClient *http.Client
}

// WithLogger sets a custom logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) { s.httpClient = c }
}

// NewClient creates a matched-order client.
func NewClient(cfg *config.OrderbookConfig, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("orderbook config is nil")
	}
	if !strings.Contains(cfg.MatchedOrderURL, createIDPlaceholder) {
		return nil, fmt.Errorf("matched order url %q has no %s placeholder", cfg.MatchedOrderURL, createIDPlaceholder)
	}

	s := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		s.httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		urlTemplate: cfg.MatchedOrderURL,
		httpClient:  s.httpClient,
		logger:      s.logger,
	}, nil
}

// GetMatchedOrder fetches the matched-order state for an order. Responses are never cached.
func (c *Client) GetMatchedOrder(ctx context.Context, createID string) (*MatchedOrderResponse, error) {
	endpoint := strings.ReplaceAll(c.urlTemplate, createIDPlaceholder, url.PathEscape(createID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &APIError{CreateID: createID, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("checking matched order", zap.String("url", endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.MatchedOrderRequests.WithLabelValues("error").Inc()
		return nil, &APIError{CreateID: createID, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.MatchedOrderRequests.WithLabelValues("error").Inc()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBodyBytes))
		return nil, &APIError{
			CreateID:   createID,
			StatusCode: resp.StatusCode,
			Err:        errors.New(strings.TrimSpace(string(b))),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.MatchedOrderRequests.WithLabelValues("error").Inc()
		return nil, &APIError{CreateID: createID, Err: fmt.Errorf("read body: %w", err)}
	}

	var out MatchedOrderResponse
	if err := json.Unmarshal(body, &out); err != nil {
		metrics.MatchedOrderRequests.WithLabelValues("error").Inc()
		return nil, &APIError{CreateID: createID, Err: fmt.Errorf("decode body: %w", err)}
	}
	out.Raw = json.RawMessage(body)

	metrics.MatchedOrderRequests.WithLabelValues("ok").Inc()
	return &out, nil
}
