package narrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chainsafe/swap-status/pkg/config"
	"github.com/chainsafe/swap-status/pkg/logsource"
)

type fakeGenerator struct {
	generateFunc func(ctx context.Context, prompt string) (string, error)
	prompts      []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.generateFunc == nil {
		return "summary", nil
	}
	return f.generateFunc(ctx, prompt)
}

type memoryCache struct {
	values map[string]string
}

func (m *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func testCatalog() *logsource.Catalog {
	cfg := config.LogSourcesConfig{
		Generic:     "/staging-cobi-v2",
		OrderOrigin: "/staging-evm-relay",
	}
	cfg.SetDefaults()
	return logsource.NewCatalog(cfg)
}

func sampleInput() Input {
	return Input{
		Source:            "/staging-evm-relay",
		Lines:             []string{`{"msg":"order created","create_id":"abc"}`, `{"msg":"order initiated","create_id":"abc"}`},
		OrderID:           "abc",
		SourceSwapID:      "s1",
		DestinationSwapID: "d1",
		SecretHash:        "0xhash",
		SourceChain:       "arbitrum_sepolia",
		DestinationChain:  "bitcoin_testnet",
	}
}

func TestAnalyzeLogs_EmptyLinesSkipsModel(t *testing.T) {
	gen := &fakeGenerator{}
	n := New(gen, testCatalog())

	got := n.AnalyzeLogs(context.Background(), Input{Source: "/staging-evm-relay"})
	if got.Text != NoLogsMessage {
		t.Fatalf("Text = %q, want %q", got.Text, NoLogsMessage)
	}
	if got.Degraded {
		t.Fatalf("empty analysis should not be degraded")
	}
	if len(gen.prompts) != 0 {
		t.Fatalf("generator called %d times, want 0", len(gen.prompts))
	}
}

func TestAnalyzeLogs_PromptCarriesContextAndRules(t *testing.T) {
	gen := &fakeGenerator{}
	n := New(gen, testCatalog())

	got := n.AnalyzeLogs(context.Background(), sampleInput())
	if got.Text != "summary" {
		t.Fatalf("Text = %q, want summary", got.Text)
	}
	if len(got.FilteredLogs) != 2 {
		t.Fatalf("FilteredLogs len = %d, want 2", len(got.FilteredLogs))
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("generator called %d times, want 1", len(gen.prompts))
	}

	prompt := gen.prompts[0]
	for _, want := range []string{
		"create_id 'abc'",
		"source_swap_id 's1'",
		"destination_swap_id 'd1'",
		"secret_hash '0xhash'",
		"'arbitrum_sepolia'",
		"'bitcoin_testnet'",
		"'/staging-evm-relay' log source",
		"'order initiated' indicates user initiation",
		"'order redeemed' indicates Cobi redeem",
		"record order creation",
		`{"msg":"order initiated","create_id":"abc"}`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestAnalyzeLogs_DestinationSideRolesSwap(t *testing.T) {
	gen := &fakeGenerator{}
	n := New(gen, testCatalog())

	in := sampleInput()
	in.Source = "/stage-bit-ponder"
	n.AnalyzeLogs(context.Background(), in)

	prompt := gen.prompts[0]
	for _, want := range []string{
		"'bitcoin_testnet' is the destination chain",
		"'HTLC initiated' indicates Cobi initiation",
		"'Redeemed' indicates user redeem",
		"not an order creation source",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestAnalyzeLogs_GenericSourceRule(t *testing.T) {
	gen := &fakeGenerator{}
	n := New(gen, testCatalog())

	in := sampleInput()
	in.Source = "/staging-cobi-v2"
	n.AnalyzeLogs(context.Background(), in)

	if !strings.Contains(gen.prompts[0], "not chain-specific") {
		t.Fatalf("generic rule missing from prompt:\n%s", gen.prompts[0])
	}
}

func TestAnalyzeLogs_TruncatesToMostRecentLines(t *testing.T) {
	gen := &fakeGenerator{}
	n := New(gen, testCatalog(), WithMaxLines(1))

	got := n.AnalyzeLogs(context.Background(), sampleInput())
	if len(got.FilteredLogs) != 2 {
		t.Fatalf("FilteredLogs should keep every line, got %d", len(got.FilteredLogs))
	}
	prompt := gen.prompts[0]
	if strings.Contains(prompt, `"msg":"order created"`) {
		t.Fatalf("oldest line should have been dropped from prompt")
	}
	if !strings.Contains(prompt, "Only the most recent 1 of 2 log lines") {
		t.Fatalf("truncation note missing from prompt")
	}
}

func TestAnalyzeLogs_ModelFailureDegrades(t *testing.T) {
	gen := &fakeGenerator{generateFunc: func(context.Context, string) (string, error) {
		return "", errors.New("quota exceeded")
	}}
	n := New(gen, testCatalog())

	got := n.AnalyzeLogs(context.Background(), sampleInput())
	if !got.Degraded {
		t.Fatalf("expected degraded analysis")
	}
	if !strings.Contains(got.Text, "quota exceeded") {
		t.Fatalf("Text = %q, want cause", got.Text)
	}
	if len(got.FilteredLogs) != 2 {
		t.Fatalf("FilteredLogs must survive model failure")
	}
}

func TestAnalyzeLogs_NilGeneratorDegrades(t *testing.T) {
	n := New(nil, testCatalog())

	got := n.AnalyzeLogs(context.Background(), sampleInput())
	if !got.Degraded {
		t.Fatalf("expected degraded analysis without a generator")
	}
}

func TestAnalyzeLogs_UsesCache(t *testing.T) {
	calls := 0
	gen := &fakeGenerator{generateFunc: func(context.Context, string) (string, error) {
		calls++
		return "fresh", nil
	}}
	n := New(gen, testCatalog(), WithCache(&memoryCache{values: map[string]string{}}))

	first := n.AnalyzeLogs(context.Background(), sampleInput())
	second := n.AnalyzeLogs(context.Background(), sampleInput())

	if first.Text != "fresh" || second.Text != "fresh" {
		t.Fatalf("texts = %q, %q", first.Text, second.Text)
	}
	if calls != 1 {
		t.Fatalf("generator called %d times, want 1", calls)
	}
}

func TestCheckOrderCreated(t *testing.T) {
	lines := []string{`{"msg":"order created","create_id":"abc"}`}

	tests := []struct {
		name   string
		answer string
		err    error
		id     string
		want   bool
	}{
		{name: "yes", answer: "Yes", id: "abc", want: true},
		{name: "yes with period", answer: "yes.", id: "abc", want: true},
		{name: "no", answer: "No", id: "abc", want: false},
		{name: "fallback finds id", err: errors.New("down"), id: "abc", want: true},
		{name: "fallback misses id", err: errors.New("down"), id: "zzz", want: false},
		{name: "empty id", answer: "Yes", id: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{generateFunc: func(context.Context, string) (string, error) {
				return tt.answer, tt.err
			}}
			n := New(gen, testCatalog())
			if got := n.CheckOrderCreated(context.Background(), tt.id, lines); got != tt.want {
				t.Fatalf("CheckOrderCreated() = %v, want %v", got, tt.want)
			}
		})
	}
}
