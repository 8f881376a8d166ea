package logquery

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/swap-status/internal/metrics"
	"github.com/chainsafe/swap-status/pkg/config"
	"github.com/chainsafe/swap-status/pkg/logfilter"
)

// Querier issues a single query_range page request.
type Querier interface {
	QueryRange(ctx context.Context, q RangeQuery) ([]Entry, error)
}

// Request describes the lines to fetch for one source.
// A nil End fetches forward from Start until the data runs out.
type Request struct {
	Source      string
	Identifiers []string
	Start       time.Time
	End         *time.Time
}

// Result holds the merged lines of a fetch, in first-seen order without duplicates.
type Result struct {
	Lines []string
	// Start is the effective start after clamping.
	Start time.Time
	// End is the effective end in bounded mode and nil in forward mode.
	End      *time.Time
	Requests int
}

// Fetcher pages through the log API for a set of identifiers.
type Fetcher struct {
	querier     Querier
	label       string
	pageLimit   int
	pageDelay   time.Duration
	window      time.Duration
	maxLookback time.Duration
	logger      *zap.Logger
}

// NewFetcher creates a fetcher using the paging settings from cfg.
func NewFetcher(q Querier, cfg *config.LogQueryConfig, opts ...Option) *Fetcher {
	s := applyOptions(opts)
	return &Fetcher{
		querier:     q,
		label:       cfg.Label,
		pageLimit:   cfg.PageLimit,
		pageDelay:   cfg.PageDelay,
		window:      cfg.Window,
		maxLookback: cfg.MaxLookback,
		logger:      s.logger,
	}
}

// MaxRequests caps the requests of one Fetch, whatever its mode or identifier count.
// It is max_lookback / window, rounded down, and at least one.
func (f *Fetcher) MaxRequests() int {
	if f.window <= 0 {
		return 1
	}
	return max(int(f.maxLookback/f.window), 1)
}

type fetchState struct {
	req      Request
	query    string
	seen     map[string]struct{}
	lines    []string
	requests int
	budget   int
}

func (st *fetchState) add(line string) {
	if _, ok := st.seen[line]; ok {
		return
	}
	st.seen[line] = struct{}{}
	st.lines = append(st.lines, line)
}

// Fetch returns every line of req.Source containing any of req.Identifiers.
//
// All identifiers share one query and one request budget of MaxRequests. Without an end time
// pages are requested forward from Start. With one, the range is ordered, clamped to the maximum
// lookback (keeping the newest end) and split into windows. Any request failure fails the whole
// fetch with a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, req Request) (*Result, error) {
	ids := logfilter.Identifiers(req.Identifiers...)
	st := &fetchState{
		req:    req,
		query:  Selector(f.label, req.Source, ids...),
		seen:   make(map[string]struct{}),
		budget: f.MaxRequests(),
	}

	start := req.Start
	var end *time.Time
	if req.End != nil {
		s, e := req.Start, *req.End
		if e.Before(s) {
			s, e = e, s
		}
		if e.Sub(s) > f.maxLookback {
			s = e.Add(-f.maxLookback)
		}
		start, end = s, &e
	}

	if len(ids) > 0 {
		var (
			truncated bool
			err       error
		)
		if end == nil {
			truncated, err = f.paginate(ctx, st, start, nil)
		} else {
			truncated, err = f.fetchWindows(ctx, st, start, *end)
		}
		if err != nil {
			return nil, &FetchError{Source: req.Source, Identifiers: ids, Err: err}
		}
		if truncated {
			metrics.FetchCapReached.WithLabelValues(req.Source).Inc()
			f.logger.Warn("log fetch request cap reached",
				zap.String("source", req.Source),
				zap.Strings("identifiers", ids),
				zap.Int("max_requests", f.MaxRequests()),
			)
		}
	}

	metrics.LinesFetched.WithLabelValues(req.Source).Add(float64(len(st.lines)))
	f.logger.Debug("log fetch completed",
		zap.String("source", req.Source),
		zap.Int("identifiers", len(ids)),
		zap.Int("requests", st.requests),
		zap.Int("lines", len(st.lines)),
		zap.Bool("bounded", end != nil),
	)

	return &Result{
		Lines:    st.lines,
		Start:    start,
		End:      end,
		Requests: st.requests,
	}, nil
}

// windowSize widens the configured window when span would need more windows than the budget allows,
// so every part of the range gets at least one request.
func (f *Fetcher) windowSize(span time.Duration) time.Duration {
	limit := time.Duration(f.MaxRequests())
	if f.window <= 0 || span > f.window*limit {
		return (span + limit - 1) / limit
	}
	return f.window
}

func (f *Fetcher) fetchWindows(ctx context.Context, st *fetchState, start, end time.Time) (bool, error) {
	window := f.windowSize(end.Sub(start))
	ws := start
	for {
		we := ws.Add(window)
		if window <= 0 || we.After(end) {
			we = end
		}

		windowEnd := we
		truncated, err := f.paginate(ctx, st, ws, &windowEnd)
		if err != nil || truncated {
			return truncated, err
		}

		if !we.Before(end) {
			return false, nil
		}
		if st.budget == 0 {
			return true, nil
		}
		ws = we
	}
}

// paginate requests pages from start until a short page or a page that does not move past the
// current start. It reports truncated when the budget ran out while more data was available.
func (f *Fetcher) paginate(ctx context.Context, st *fetchState, start time.Time, end *time.Time) (truncated bool, err error) {
	cur := start

	for {
		if st.budget <= 0 {
			return true, nil
		}
		if st.requests > 0 {
			if err := sleepCtx(ctx, f.pageDelay); err != nil {
				return false, err
			}
		}

		entries, err := f.querier.QueryRange(ctx, RangeQuery{
			Query: st.query,
			Start: cur,
			End:   end,
			Limit: f.pageLimit,
		})
		st.budget--
		st.requests++
		if err != nil {
			metrics.LogQueryRequests.WithLabelValues(st.req.Source, "error").Inc()
			return false, err
		}
		metrics.LogQueryRequests.WithLabelValues(st.req.Source, "ok").Inc()

		latest := cur
		for _, e := range entries {
			st.add(e.Line)
			if e.Timestamp.After(latest) {
				latest = e.Timestamp
			}
		}

		if len(entries) < f.pageLimit {
			return false, nil
		}
		if !latest.After(cur) {
			f.logger.Warn("log page did not advance, stopping pagination",
				zap.String("source", st.req.Source),
				zap.Time("start", cur),
			)
			return false, nil
		}
		cur = latest
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// IsFetchError reports whether err came from a failed log fetch.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
