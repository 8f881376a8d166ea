package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/chainsafe/swap-status/pkg/txstatus"
)

// renderText writes a human readable report of res.
func renderText(w io.Writer, res *txstatus.Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Status check %s for %s\n", res.CheckID, res.Identifier)

	if o := res.Database; o != nil {
		b.WriteString("\nOrder\n")
		fmt.Fprintf(&b, "  create_id:          %s\n", o.CreateID)
		fmt.Fprintf(&b, "  route:              %s -> %s\n", o.SourceChain, o.DestinationChain)
		fmt.Fprintf(&b, "  created_at:         %s\n", o.CreatedAt.UTC().Format("2006-01-02 15:04:05 MST"))
		if o.InitiatorSourceAddress != "" {
			fmt.Fprintf(&b, "  initiator:          %s\n", o.InitiatorSourceAddress)
		}
	}

	if st := res.Status; st != nil {
		b.WriteString("\nSwap\n")
		fmt.Fprintf(&b, "  source_swap_id:      %s\n", st.SourceSwapID)
		fmt.Fprintf(&b, "  destination_swap_id: %s\n", st.DestinationSwapID)
		fmt.Fprintf(&b, "  secret_hash:         %s\n", st.SecretHash)
		flags := []struct {
			name string
			set  bool
		}{
			{"matched", st.IsMatched},
			{"user initiated", st.UserInitiated},
			{"cobi initiated", st.CobiInitiated},
			{"user redeemed", st.UserRedeemed},
			{"cobi redeemed", st.CobiRedeemed},
			{"user refunded", st.UserRefunded},
			{"cobi refunded", st.CobiRefunded},
		}
		for _, f := range flags {
			fmt.Fprintf(&b, "  [%s] %s\n", mark(f.set), f.name)
		}
	}

	for _, key := range slices.Sorted(maps.Keys(res.Logs)) {
		logs := res.Logs[key]
		fmt.Fprintf(&b, "\nLogs: %s\n", key)
		if logs.Error != "" {
			fmt.Fprintf(&b, "  error: %s\n", logs.Error)
			continue
		}
		fmt.Fprintf(&b, "  lines: %d raw, %d relevant\n", len(logs.RawLogs), len(logs.FilteredLogs))
		if logs.CreateOrderSuccess != nil {
			fmt.Fprintf(&b, "  order created: %t\n", *logs.CreateOrderSuccess)
		}
		if logs.Degraded {
			b.WriteString("  analysis unavailable, relevant lines follow\n")
			for _, l := range logs.FilteredLogs {
				fmt.Fprintf(&b, "    %s\n", l)
			}
			continue
		}
		for _, l := range strings.Split(strings.TrimSpace(logs.Analysis), "\n") {
			fmt.Fprintf(&b, "  %s\n", l)
		}
	}

	if len(res.Errors) > 0 {
		b.WriteString("\nErrors\n")
		for _, e := range res.Errors {
			fmt.Fprintf(&b, "  - %s\n", e)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func mark(set bool) string {
	if set {
		return "x"
	}
	return " "
}
