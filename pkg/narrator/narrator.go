// Package narrator turns filtered swap logs into a readable progress summary.
package narrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"go.uber.org/zap"

	"github.com/chainsafe/swap-status/internal/metrics"
	"github.com/chainsafe/swap-status/pkg/llm"
	"github.com/chainsafe/swap-status/pkg/logsource"
)

const (
	// NoLogsMessage is returned without calling the model when there is nothing to summarise.
	NoLogsMessage = "No relevant logs were found for this transaction in this log source."

	unavailablePrefix = "Automated log analysis unavailable: "

	cacheKeyPrefix = "narration:"
)

// Input is the context for summarising one source's logs.
type Input struct {
	Source            string
	Lines             []string
	OrderID           string
	SourceSwapID      string
	DestinationSwapID string
	SecretHash        string
	SourceChain       string
	DestinationChain  string
}

// Analysis is the summary for one source.
type Analysis struct {
	FilteredLogs []string
	Text         string
	// Degraded is set when the model could not be used and Text explains why.
	Degraded bool
}

// Cache stores generated summaries keyed by prompt digest.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Narrator summarises logs with a text generator.
type Narrator struct {
	gen      llm.Generator
	catalog  *logsource.Catalog
	cache    Cache
	maxLines int
	logger   *zap.Logger
}

// Option configures the narrator using the functional options pattern.
type Option func(*Narrator)

// WithLogger sets a custom logger.
func WithLogger(l *zap.Logger) Option {
	return func(n *Narrator) { n.logger = l }
}

// WithCache enables caching of generated summaries.
func WithCache(c Cache) Option {
	return func(n *Narrator) { n.cache = c }
}

// WithMaxLines caps how many of the most recent lines are sent to the model. Zero means no cap.
func WithMaxLines(limit int) Option {
	return func(n *Narrator) { n.maxLines = limit }
}

// New creates a narrator. A nil generator behaves like llm.Disabled.
func New(gen llm.Generator, catalog *logsource.Catalog, opts ...Option) *Narrator {
	if gen == nil {
		gen = llm.Disabled{}
	}
	n := &Narrator{
		gen:     gen,
		catalog: catalog,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// AnalyzeLogs summarises in.Lines. It never fails: model errors produce a degraded analysis
// that still carries the lines.
func (n *Narrator) AnalyzeLogs(ctx context.Context, in Input) Analysis {
	out := Analysis{FilteredLogs: in.Lines}
	if len(in.Lines) == 0 {
		metrics.Narrations.WithLabelValues("empty").Inc()
		out.Text = NoLogsMessage
		return out
	}

	lines, truncated := in.Lines, false
	if n.maxLines > 0 && len(lines) > n.maxLines {
		lines, truncated = lines[len(lines)-n.maxLines:], true
	}

	prompt, err := render(analysisTemplate, analysisData{
		Input:     in,
		Rules:     rules(n.catalog, in),
		Lines:     lines,
		Total:     len(in.Lines),
		Truncated: truncated,
	})
	if err != nil {
		return n.degraded(in.Source, out, err)
	}

	text, err := n.generate(ctx, prompt)
	if err != nil {
		return n.degraded(in.Source, out, err)
	}
	out.Text = text
	return out
}

func (n *Narrator) degraded(source string, out Analysis, err error) Analysis {
	metrics.Narrations.WithLabelValues("fallback").Inc()
	n.logger.Warn("log analysis unavailable, returning filtered logs",
		zap.String("source", source),
		zap.Error(err),
	)
	out.Text = unavailablePrefix + err.Error()
	out.Degraded = true
	return out
}

// CheckOrderCreated asks the model whether lines show the order being created.
// If the model is unavailable it falls back to a substring match on the order id.
func (n *Narrator) CheckOrderCreated(ctx context.Context, orderID string, lines []string) bool {
	fallback := func(err error) bool {
		metrics.Narrations.WithLabelValues("fallback").Inc()
		n.logger.Warn("order creation check falling back to substring match",
			zap.String("create_id", orderID),
			zap.Error(err),
		)
		return containsAny(lines, orderID)
	}

	if orderID == "" || len(lines) == 0 {
		return false
	}

	prompt, err := render(orderCreatedTemplate, struct {
		OrderID string
		Lines   []string
	}{OrderID: orderID, Lines: lines})
	if err != nil {
		return fallback(err)
	}

	answer, err := n.generate(ctx, prompt)
	if err != nil {
		return fallback(err)
	}
	return strings.EqualFold(strings.TrimRight(strings.TrimSpace(answer), "."), "yes")
}

func (n *Narrator) generate(ctx context.Context, prompt string) (string, error) {
	key := cacheKey(prompt)
	if n.cache != nil {
		text, ok, err := n.cache.Get(ctx, key)
		switch {
		case err != nil:
			n.logger.Warn("narration cache read failed", zap.Error(err))
		case ok:
			metrics.Narrations.WithLabelValues("cached").Inc()
			return text, nil
		}
	}

	text, err := n.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	metrics.Narrations.WithLabelValues("llm").Inc()

	if n.cache != nil {
		if err := n.cache.Set(ctx, key, text); err != nil {
			n.logger.Warn("narration cache write failed", zap.Error(err))
		}
	}
	return text, nil
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func containsAny(lines []string, needle string) bool {
	for _, l := range lines {
		if strings.Contains(l, needle) {
			return true
		}
	}
	return false
}
