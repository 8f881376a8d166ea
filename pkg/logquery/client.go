// Package logquery reads log lines from a Loki-compatible query_range API.
package logquery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/chainsafe/swap-status/internal/metrics"
	"github.com/chainsafe/swap-status/pkg/config"
)

const (
	queryRangePath = "/loki/api/v1/query_range"

	// Limit error-body reads so we don't accidentally slurp huge responses.
	maxErrBodyBytes = 4096

	defaultHTTPTimeout = 30 * time.Second
	maxRetryInterval   = 5 * time.Second
)

// Entry is a single log line with its emission time.
type Entry struct {
	Timestamp time.Time
	Line      string
}

// RangeQuery describes one query_range page request.
// A nil End leaves the range open towards now.
type RangeQuery struct {
	Query string
	Start time.Time
	End   *time.Time
	Limit int
}

// Client talks to the log aggregation HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	maxRetries uint64
	logger     *zap.Logger
}

// NewClient creates a log query client from configuration.
func NewClient(cfg *config.LogQueryConfig, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("log query config is nil")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid log query base url %q", cfg.BaseURL)
	}

	s := applyOptions(opts)
	httpClient := s.httpClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: httpClient,
		maxRetries: cfg.MaxRetries,
		logger:     s.logger,
	}, nil
}

// QueryRange fetches one page of entries in forward direction, sorted by timestamp.
// Network errors, 429 and 5xx responses are retried with exponential backoff.
func (c *Client) QueryRange(ctx context.Context, q RangeQuery) ([]Entry, error) {
	var entries []Entry

	op := func() error {
		var err error
		entries, err = c.queryRangeOnce(ctx, q)
		if err == nil {
			return nil
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.Temporary() {
			return backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxInterval = maxRetryInterval
	bo := backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx)

	notify := func(err error, wait time.Duration) {
		metrics.LogQueryRetries.Inc()
		c.logger.Warn("log query failed, retrying",
			zap.String("query", q.Query),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(op, bo, notify); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) queryRangeOnce(ctx context.Context, q RangeQuery) ([]Entry, error) {
	params := url.Values{}
	params.Set("query", q.Query)
	params.Set("start", strconv.FormatInt(q.Start.UnixNano(), 10))
	if q.End != nil {
		params.Set("end", strconv.FormatInt(q.End.UnixNano(), 10))
	}
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("direction", "forward")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+queryRangePath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build log query request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("log query request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readHTTPError(resp)
	}

	return decodeQueryRange(resp.Body)
}

type queryRangeResponse struct {
	Status string `json:"status"`
	Data   struct {
		ResultType string `json:"resultType"`
		Result     []struct {
			Stream map[string]string   `json:"stream"`
			Values [][]json.RawMessage `json:"values"`
		} `json:"result"`
	} `json:"data"`
}

func decodeQueryRange(r io.Reader) ([]Entry, error) {
	var body queryRangeResponse
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode log query response: %w", err)
	}
	if body.Status != "" && body.Status != "success" {
		return nil, fmt.Errorf("log query status %q", body.Status)
	}

	var entries []Entry
	for _, stream := range body.Data.Result {
		for _, v := range stream.Values {
			if len(v) < 2 {
				return nil, fmt.Errorf("malformed log value with %d fields", len(v))
			}
			var tsRaw, line string
			if err := json.Unmarshal(v[0], &tsRaw); err != nil {
				return nil, fmt.Errorf("decode log timestamp: %w", err)
			}
			if err := json.Unmarshal(v[1], &line); err != nil {
				return nil, fmt.Errorf("decode log line: %w", err)
			}
			ns, err := strconv.ParseInt(tsRaw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse log timestamp %q: %w", tsRaw, err)
			}
			entries = append(entries, Entry{Timestamp: time.Unix(0, ns), Line: line})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries, nil
}

func readHTTPError(resp *http.Response) error {
	limited := io.LimitReader(resp.Body, maxErrBodyBytes)

	b, err := io.ReadAll(limited)
	if err != nil {
		return &StatusError{StatusCode: resp.StatusCode, Body: "body read failed: " + err.Error()}
	}
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}

// Selector builds the LogQL query matching lines of source that contain any of identifiers.
// Identifiers are matched literally through one regexp alternation.
func Selector(label, source string, identifiers ...string) string {
	quoted := make([]string, len(identifiers))
	for i, id := range identifiers {
		quoted[i] = regexp.QuoteMeta(id)
	}
	return fmt.Sprintf("{%s=%s} |~ %s", label, strconv.Quote(source), strconv.Quote(strings.Join(quoted, "|")))
}
