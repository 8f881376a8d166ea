// Package logsource describes which log streams report on which chains and
// how each stream phrases swap lifecycle events.
package logsource

import (
	"slices"
	"strings"

	"github.com/chainsafe/swap-status/pkg/config"
)

// Kind classifies what a log source reports.
type Kind string

const (
	KindRelay   Kind = "relay"
	KindWatcher Kind = "watcher"
	KindRelayer Kind = "relayer"
	KindGeneric Kind = "generic"
)

// Profile describes how a source phrases lifecycle events.
type Profile struct {
	Kind           Kind
	InitiateMarker string
	RedeemMarker   string
	RefundMarker   string
	Deduplicate    bool
}

// Catalog maps chains to their log sources.
type Catalog struct {
	generic      string
	byChain      map[string][]string
	profiles     map[string]Profile
	orderOrigin  string
	originChains []string
}

// NewCatalog builds a catalog from configuration.
func NewCatalog(cfg config.LogSourcesConfig) *Catalog {
	c := &Catalog{
		generic:      cfg.Generic,
		byChain:      make(map[string][]string, len(cfg.ByChain)),
		profiles:     make(map[string]Profile, len(cfg.Profiles)),
		orderOrigin:  cfg.OrderOrigin,
		originChains: slices.Clone(cfg.OriginChains),
	}
	for chain, sources := range cfg.ByChain {
		c.byChain[chain] = slices.Clone(sources)
	}
	for name, p := range cfg.Profiles {
		c.profiles[name] = Profile{
			Kind:           Kind(p.Kind),
			InitiateMarker: p.InitiateMarker,
			RedeemMarker:   p.RedeemMarker,
			RefundMarker:   p.RefundMarker,
			Deduplicate:    p.Deduplicate,
		}
	}
	return c
}

// Generic returns the source that reports on every order regardless of chain.
func (c *Catalog) Generic() string {
	return c.generic
}

// Select returns the chain-specific sources for both chains of an order followed by the generic source.
// Each source appears once and the generic source is always last.
func (c *Catalog) Select(sourceChain, destinationChain string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(src string) {
		if src == "" || src == c.generic {
			return
		}
		if _, ok := seen[src]; ok {
			return
		}
		seen[src] = struct{}{}
		out = append(out, src)
	}

	for _, chain := range []string{sourceChain, destinationChain} {
		for _, src := range c.byChain[chain] {
			add(src)
		}
	}
	return append(out, c.generic)
}

// Profile returns the configured profile for a source. The generic source defaults to KindGeneric.
// Any other unconfigured source gets a zero Profile: no kind, no markers and no deduplication.
func (c *Catalog) Profile(source string) Profile {
	if p, ok := c.profiles[source]; ok {
		return p
	}
	if source == c.generic {
		return Profile{Kind: KindGeneric}
	}
	return Profile{}
}

// ServesChain reports whether source is mapped to chain.
func (c *Catalog) ServesChain(source, chain string) bool {
	return slices.Contains(c.byChain[chain], source)
}

// IsOrderOrigin reports whether order creation for an order on sourceChain is logged by source.
func (c *Catalog) IsOrderOrigin(source, sourceChain string) bool {
	return c.orderOrigin != "" && source == c.orderOrigin && slices.Contains(c.originChains, sourceChain)
}

// Key returns the result-map key for a source name.
func Key(source string) string {
	return strings.TrimPrefix(source, "/")
}
