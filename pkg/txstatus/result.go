package txstatus

import (
	"encoding/json"
	"time"

	"github.com/chainsafe/swap-status/pkg/swap"
	"github.com/chainsafe/swap-status/pkg/swapstate"
)

const (
	unknownPlaceholder  = "Unknown"
	notFoundPlaceholder = "Not found"
)

// Result is the aggregate outcome of one status check. Errors lists non-fatal problems;
// a result carrying errors may still hold useful partial data.
type Result struct {
	CheckID       string                 `json:"check_id"`
	Identifier    string                 `json:"identifier"`
	Database      *OrderRecord           `json:"database,omitempty"`
	MatchedOrders *MatchedOrders         `json:"matched_orders,omitempty"`
	Logs          map[string]*SourceLogs `json:"logs,omitempty"`
	Status        *StatusSummary         `json:"status,omitempty"`
	Errors        []string               `json:"errors"`
}

// OrderRecord is the create_orders row the check was anchored on.
type OrderRecord struct {
	CreateID               string    `json:"create_id"`
	SourceChain            string    `json:"source_chain"`
	DestinationChain       string    `json:"destination_chain"`
	CreatedAt              time.Time `json:"created_at"`
	SecretHash             string    `json:"secret_hash,omitzero"`
	InitiatorSourceAddress string    `json:"initiator_source_address,omitzero"`
}

// MatchedOrders holds the matched_orders row and the matched-order API response.
type MatchedOrders struct {
	IDs         *MatchedIDs     `json:"ids,omitempty"`
	IDsError    string          `json:"ids_error,omitzero"`
	APIResponse json.RawMessage `json:"api_response,omitempty"`
	APIError    string          `json:"api_error,omitzero"`
}

// MatchedIDs are the swap ids with "Not found" standing in for missing legs.
type MatchedIDs struct {
	SourceSwapID      string `json:"source_swap_id"`
	DestinationSwapID string `json:"destination_swap_id"`
}

// SourceLogs is the per-source outcome. When Error is set the other fields are empty.
type SourceLogs struct {
	RawLogs            []string   `json:"raw_logs,omitempty"`
	StartTime          *time.Time `json:"start_time,omitempty"`
	EndTime            *time.Time `json:"end_time,omitempty"`
	CreateOrderSuccess *bool      `json:"create_order_success,omitempty"`
	Analysis           string     `json:"analysis,omitzero"`
	FilteredLogs       []string   `json:"filtered_logs,omitempty"`
	Degraded           bool       `json:"analysis_degraded,omitzero"`
	Error              string     `json:"error,omitzero"`
}

// StatusSummary combines order context with the lifecycle flags.
type StatusSummary struct {
	SourceChain       string `json:"source_chain"`
	DestinationChain  string `json:"destination_chain"`
	SourceSwapID      string `json:"source_swap_id"`
	DestinationSwapID string `json:"destination_swap_id"`
	SecretHash        string `json:"secret_hash"`
	swapstate.Flags
}

func newOrderRecord(o *swap.Order) *OrderRecord {
	return &OrderRecord{
		CreateID:               o.CreateID,
		SourceChain:            o.SourceChain,
		DestinationChain:       o.DestinationChain,
		CreatedAt:              o.CreatedAt,
		SecretHash:             o.SecretHash,
		InitiatorSourceAddress: o.InitiatorSourceAddress,
	}
}

func newStatusSummary(o *swap.Order, ids swap.MatchedSwapIDs, flags swapstate.Flags) *StatusSummary {
	return &StatusSummary{
		SourceChain:       orDefault(o.SourceChain, unknownPlaceholder),
		DestinationChain:  orDefault(o.DestinationChain, unknownPlaceholder),
		SourceSwapID:      orDefault(ids.SourceSwapID, notFoundPlaceholder),
		DestinationSwapID: orDefault(ids.DestinationSwapID, notFoundPlaceholder),
		SecretHash:        orDefault(o.SecretHash, notFoundPlaceholder),
		Flags:             flags,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
