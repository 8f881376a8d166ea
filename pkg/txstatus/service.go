// Package txstatus correlates the order store, log sources and the matched-order API into
// one status report for a cross-chain swap.
package txstatus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chainsafe/swap-status/internal/metrics"
	"github.com/chainsafe/swap-status/pkg/config"
	"github.com/chainsafe/swap-status/pkg/logfilter"
	"github.com/chainsafe/swap-status/pkg/logquery"
	"github.com/chainsafe/swap-status/pkg/logsource"
	"github.com/chainsafe/swap-status/pkg/narrator"
	"github.com/chainsafe/swap-status/pkg/orderbook"
	"github.com/chainsafe/swap-status/pkg/orderstore"
	"github.com/chainsafe/swap-status/pkg/swap"
	"github.com/chainsafe/swap-status/pkg/swapstate"
)

var (
	// ErrMissingIdentifier is returned when neither an order id nor an address is supplied.
	ErrMissingIdentifier = errors.New("create_id or initiator_source_address is required")
	// ErrStoreUnavailable is returned when the order lookup itself fails.
	ErrStoreUnavailable = errors.New("order store unavailable")
)

// Store is the narrow data-access interface for the status service.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	GetOrderByID(ctx context.Context, createID string) (*swap.Order, error)
	GetLatestOrderByInitiator(ctx context.Context, address string) (*swap.Order, error)
	GetMatchedSwapIDs(ctx context.Context, createID string) (*swap.MatchedSwapIDs, error)
}

// LogFetcher retrieves the lines of one log source.
type LogFetcher interface {
	Fetch(ctx context.Context, req logquery.Request) (*logquery.Result, error)
}

// MatchedOrderClient reads the live matched-order state.
type MatchedOrderClient interface {
	GetMatchedOrder(ctx context.Context, createID string) (*orderbook.MatchedOrderResponse, error)
}

// Analyzer summarises a source's lines.
type Analyzer interface {
	AnalyzeLogs(ctx context.Context, in narrator.Input) narrator.Analysis
	CheckOrderCreated(ctx context.Context, orderID string, lines []string) bool
}

// Service defines the interface for transaction status checks
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	GetTransactionStatus(ctx context.Context, id swap.Identifier) (*Result, error)
}

type statusService struct {
	store        Store
	fetcher      LogFetcher
	matched      MatchedOrderClient
	analyzer     Analyzer
	catalog      *logsource.Catalog
	sourceWindow time.Duration
	concurrency  int
	now          func() time.Time
	logger       *zap.Logger
}

// NewService creates a new transaction status service
func NewService(
	store Store,
	fetcher LogFetcher,
	matched MatchedOrderClient,
	analyzer Analyzer,
	catalog *logsource.Catalog,
	cfg *config.StatusConfig,
	logger *zap.Logger,
) Service {
	return &statusService{
		store:        store,
		fetcher:      fetcher,
		matched:      matched,
		analyzer:     analyzer,
		catalog:      catalog,
		sourceWindow: cfg.SourceWindow,
		concurrency:  max(cfg.Concurrency, 1),
		now:          time.Now,
		logger:       logger,
	}
}

// check carries the state of one status check through its stages.
type check struct {
	id     string
	order  *swap.Order
	ids    swap.MatchedSwapIDs
	idents []string

	mu     sync.Mutex
	result *Result
}

func (c *check) addError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result.Errors = append(c.result.Errors, msg)
}

func (c *check) setLogs(source string, logs *SourceLogs) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result.Logs[logsource.Key(source)] = logs
}

// GetTransactionStatus resolves the order for id and reports its progress.
// Only a missing identifier or an unreachable order store produce an error; every other
// failure is recorded in the result.
func (s *statusService) GetTransactionStatus(ctx context.Context, id swap.Identifier) (res *Result, err error) {
	if id.IsZero() {
		return nil, ErrMissingIdentifier
	}

	start := time.Now()
	c := &check{
		id: uuid.NewString(),
		result: &Result{
			Identifier: id.String(),
			Errors:     []string{},
		},
	}
	c.result.CheckID = c.id
	res = c.result
	outcome := "complete"

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("status check panicked", zap.String("check_id", c.id), zap.Any("panic", r))
			c.addError(fmt.Sprintf("Unexpected error: %v", r))
			outcome = "failed"
		}
		if outcome == "complete" && len(res.Errors) > 0 {
			outcome = "partial"
		}
		metrics.StatusChecks.WithLabelValues(outcome).Inc()
		metrics.StatusCheckDuration.Observe(time.Since(start).Seconds())
	}()

	// RESOLVE_ORDER
	order, lookupErr := s.resolveOrder(ctx, id)
	switch {
	case errors.Is(lookupErr, orderstore.ErrOrderNotFound):
		outcome = "not_found"
		c.addError(fmt.Sprintf("No data found for %s in create_orders.", id))
		return res, nil
	case lookupErr != nil:
		outcome = "failed"
		c.addError(fmt.Sprintf("Database query error: %v", lookupErr))
		return res, fmt.Errorf("%w: %w", ErrStoreUnavailable, lookupErr)
	}
	c.order = order
	res.Database = newOrderRecord(order)

	// RESOLVE_MATCHED_IDS
	s.resolveMatchedIDs(ctx, c)
	c.idents = logfilter.Identifiers(order.CreateID, c.ids.SourceSwapID, c.ids.DestinationSwapID, order.SecretHash)

	// SELECT_SOURCES, then per-source FETCH -> DEDUP/FILTER -> SUMMARIZE
	sources := s.catalog.Select(order.SourceChain, order.DestinationChain)
	res.Logs = make(map[string]*SourceLogs, len(sources))
	s.processSources(ctx, c, sources)

	// CLASSIFY_STATUS
	s.classify(ctx, c)

	return res, nil
}

func (s *statusService) resolveOrder(ctx context.Context, id swap.Identifier) (*swap.Order, error) {
	if id.ByOrderID() {
		return s.store.GetOrderByID(ctx, strings.TrimSpace(id.OrderID))
	}
	return s.store.GetLatestOrderByInitiator(ctx, swap.NormalizeAddress(id.InitiatorAddress))
}

func (s *statusService) resolveMatchedIDs(ctx context.Context, c *check) {
	mo := &MatchedOrders{}
	c.result.MatchedOrders = mo

	ids, err := s.store.GetMatchedSwapIDs(ctx, c.order.CreateID)
	switch {
	case errors.Is(err, orderstore.ErrMatchedOrderNotFound):
		mo.IDsError = fmt.Sprintf("No matched orders found for create_id '%s'", c.order.CreateID)
	case err != nil:
		msg := fmt.Sprintf("Matched orders query error: %v", err)
		mo.IDsError = msg
		c.addError(msg)
		s.logger.Warn("matched order ids lookup failed", zap.String("check_id", c.id), zap.Error(err))
	default:
		c.ids = *ids
		mo.IDs = &MatchedIDs{
			SourceSwapID:      orDefault(ids.SourceSwapID, notFoundPlaceholder),
			DestinationSwapID: orDefault(ids.DestinationSwapID, notFoundPlaceholder),
		}
	}
}

// processSources runs the chain-specific sources, bounded by s.concurrency, and then the generic source.
func (s *statusService) processSources(ctx context.Context, c *check, sources []string) {
	generic := s.catalog.Generic()
	var chainSources []string
	runGeneric := false
	for _, src := range sources {
		if src == generic {
			runGeneric = true
			continue
		}
		chainSources = append(chainSources, src)
	}

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, src := range chainSources {
		g.Go(func() error {
			c.setLogs(src, s.processSource(ctx, c, src, true))
			return nil
		})
	}
	_ = g.Wait()

	if runGeneric {
		c.setLogs(generic, s.processSource(ctx, c, generic, false))
	}
}

func (s *statusService) processSource(ctx context.Context, c *check, source string, bounded bool) (out *SourceLogs) {
	defer func() {
		if r := recover(); r != nil {
			metrics.SourceErrors.WithLabelValues(source).Inc()
			s.logger.Error("log source processing panicked",
				zap.String("check_id", c.id),
				zap.String("source", source),
				zap.Any("panic", r),
			)
			out = &SourceLogs{Error: fmt.Sprintf("Error processing logs: %v", r)}
		}
	}()

	order := c.order
	req := logquery.Request{
		Source:      source,
		Identifiers: c.idents,
		Start:       order.CreatedAt,
	}
	if bounded {
		end := order.CreatedAt.Add(s.sourceWindow)
		if now := s.now(); end.After(now) {
			end = now
		}
		req.End = &end
	}

	fetched, err := s.fetcher.Fetch(ctx, req)
	if err != nil {
		metrics.SourceErrors.WithLabelValues(source).Inc()
		s.logger.Warn("log fetch failed",
			zap.String("check_id", c.id),
			zap.String("source", source),
			zap.Bool("transport", logquery.IsFetchError(err)),
			zap.Error(err),
		)
		return &SourceLogs{Error: fmt.Sprintf("Error fetching logs: %v", err)}
	}
	s.logger.Debug("log source fetched",
		zap.String("check_id", c.id),
		zap.String("source", source),
		zap.Int("requests", fetched.Requests),
		zap.Int("lines", len(fetched.Lines)),
	)

	lines := fetched.Lines
	if s.catalog.Profile(source).Deduplicate {
		lines = logfilter.Deduplicate(lines)
	}

	startTime := fetched.Start
	out = &SourceLogs{
		RawLogs:   lines,
		StartTime: &startTime,
		EndTime:   fetched.End,
	}

	if s.catalog.IsOrderOrigin(source, order.SourceChain) {
		created := s.analyzer.CheckOrderCreated(ctx, order.CreateID, lines)
		out.CreateOrderSuccess = &created
	}

	analysis := s.analyzer.AnalyzeLogs(ctx, narrator.Input{
		Source:            source,
		Lines:             logfilter.FilterRelevant(lines, c.idents...),
		OrderID:           order.CreateID,
		SourceSwapID:      c.ids.SourceSwapID,
		DestinationSwapID: c.ids.DestinationSwapID,
		SecretHash:        order.SecretHash,
		SourceChain:       order.SourceChain,
		DestinationChain:  order.DestinationChain,
	})
	out.Analysis = analysis.Text
	out.FilteredLogs = analysis.FilteredLogs
	out.Degraded = analysis.Degraded
	return out
}

// classify runs once after the source loop, whatever the sources produced.
func (s *statusService) classify(ctx context.Context, c *check) {
	defer func() {
		if r := recover(); r != nil {
			c.addError(fmt.Sprintf("Status classification error: %v", r))
		}
	}()

	mo := c.result.MatchedOrders
	resp, err := s.matched.GetMatchedOrder(ctx, c.order.CreateID)
	if err != nil {
		msg := fmt.Sprintf("Error checking matched order: %v", err)
		mo.APIError = msg
		c.addError(msg)
		s.logger.Warn("matched order lookup failed", zap.String("check_id", c.id), zap.Error(err))
	} else {
		mo.APIResponse = resp.Raw
	}

	c.result.Status = newStatusSummary(c.order, c.ids, swapstate.Classify(resp))
}
