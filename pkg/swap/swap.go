package swap

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Order represents a cross-chain swap order as recorded in the order store.
type Order struct {
	CreateID               string
	SourceChain            string
	DestinationChain       string
	CreatedAt              time.Time
	SecretHash             string
	InitiatorSourceAddress string
}

// MatchedSwapIDs holds the per-chain swap identifiers assigned once an order is matched.
type MatchedSwapIDs struct {
	SourceSwapID      string
	DestinationSwapID string
}

// Identifier selects the order to inspect.
// When both fields are set the order id wins.
type Identifier struct {
	OrderID          string
	InitiatorAddress string
}

// IsZero reports whether neither lookup key is set.
func (id Identifier) IsZero() bool {
	return strings.TrimSpace(id.OrderID) == "" && strings.TrimSpace(id.InitiatorAddress) == ""
}

// ByOrderID reports whether the order id is the effective lookup key.
func (id Identifier) ByOrderID() bool {
	return strings.TrimSpace(id.OrderID) != ""
}

// String returns the effective lookup key as it appears in user-facing messages.
func (id Identifier) String() string {
	if id.ByOrderID() {
		return "create_id '" + strings.TrimSpace(id.OrderID) + "'"
	}
	return "initiator_source_address '" + strings.TrimSpace(id.InitiatorAddress) + "'"
}

// NormalizeAddress canonicalises an initiator address for lookups.
// EVM addresses are lowercased hex; anything else (bitcoin, starknet, solana) is only trimmed.
func NormalizeAddress(address string) string {
	address = strings.TrimSpace(address)
	if common.IsHexAddress(address) {
		return strings.ToLower(common.HexToAddress(address).Hex())
	}
	return address
}
