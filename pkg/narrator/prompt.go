package narrator

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/chainsafe/swap-status/pkg/logsource"
)

var analysisTemplate = template.Must(template.New("analysis").Parse(
	`Thoroughly analyze the following logs related to create_id '{{.OrderID}}', which may contain ` +
		`create_id '{{.OrderID}}', source_swap_id '{{.SourceSwapID}}', destination_swap_id '{{.DestinationSwapID}}', ` +
		`or secret_hash '{{.SecretHash}}'. ` +
		`The source chain is '{{.SourceChain}}' and the destination chain is '{{.DestinationChain}}'. ` +
		`The logs are from the '{{.Source}}' log source. ` +
		`Provide a detailed narrative summary of the transaction's progress, including any order creation, ` +
		`initiation, redemption, refund, or errors. ` +
		`Use the following rules to interpret the logs:
{{range .Rules}}- {{.}}
{{end}}Focus only on the information present in the logs. Do not generate or assume any information not explicitly stated. ` +
		`If no logs are provided, state that no relevant logs were found and do not proceed with analysis.
{{if .Truncated}}
Only the most recent {{len .Lines}} of {{.Total}} log lines are included.
{{end}}
Logs:
{{range .Lines}}{{.}}
{{end}}`))

var orderCreatedTemplate = template.Must(template.New("order_created").Parse(
	`Analyze the following logs and determine if the order with create_id '{{.OrderID}}' was created. ` +
		`Return only 'Yes' if the create_id is found in the logs, or 'No' if it is not found.

Logs:
{{range .Lines}}{{.}}
{{end}}`))

type analysisData struct {
	Input
	Rules     []string
	Lines     []string
	Total     int
	Truncated bool
}

// rules lists the interpretation rules that apply to in.Source for this swap.
func rules(catalog *logsource.Catalog, in Input) []string {
	var out []string
	profile := catalog.Profile(in.Source)

	if catalog.IsOrderOrigin(in.Source, in.SourceChain) {
		out = append(out, fmt.Sprintf(
			"Order creation: '%s' logs record order creation for orders from '%s'. "+
				"Look for 'order created' together with create_id or secret_hash.",
			in.Source, in.SourceChain))
	} else {
		out = append(out, fmt.Sprintf(
			"Order creation: '%s' logs are not an order creation source for this swap; do not report order creation from them.",
			in.Source))
	}

	if profile.Kind == logsource.KindGeneric || in.Source == catalog.Generic() {
		out = append(out, fmt.Sprintf(
			"'%s' logs are not chain-specific: analyze them for any transaction-related event "+
				"(initiation, redemption, refund, errors) using create_id, source_swap_id, destination_swap_id, or secret_hash.",
			in.Source))
		return out
	}

	sideRule := func(chain, role, initiator, redeemer, swapIDName string) {
		var parts []string
		if profile.InitiateMarker != "" {
			parts = append(parts, fmt.Sprintf("'%s' indicates %s initiation", profile.InitiateMarker, initiator))
		}
		if profile.RedeemMarker != "" {
			parts = append(parts, fmt.Sprintf("'%s' indicates %s redeem", profile.RedeemMarker, redeemer))
		}
		if profile.RefundMarker != "" {
			parts = append(parts, fmt.Sprintf("'%s' indicates %s refund", profile.RefundMarker, initiator))
		}
		if len(parts) == 0 {
			out = append(out, fmt.Sprintf(
				"'%s' reports on '%s' as the %s chain: describe any initiation, redemption, refund, or error it records. "+
					"Look for %s or secret_hash.",
				in.Source, chain, role, swapIDName))
			return
		}
		out = append(out, fmt.Sprintf(
			"'%s' is the %s chain and these logs are from '%s': %s. Look for %s or secret_hash.",
			chain, role, in.Source, strings.Join(parts, ", "), swapIDName))
	}

	if in.SourceChain != "" && catalog.ServesChain(in.Source, in.SourceChain) {
		sideRule(in.SourceChain, "source", "user", "Cobi", "source_swap_id")
	}
	if in.DestinationChain != "" && catalog.ServesChain(in.Source, in.DestinationChain) {
		sideRule(in.DestinationChain, "destination", "Cobi", "user", "destination_swap_id")
	}
	return out
}

func render(t *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return sb.String(), nil
}
