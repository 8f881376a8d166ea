// Package swapstate derives lifecycle flags from matched-order API results.
package swapstate

import "github.com/chainsafe/swap-status/pkg/orderbook"

const defaultRequiredConfirmations = 1

// Flags are independent lifecycle observations. The source leg is the user's and the
// destination leg belongs to the counterparty (cobi).
type Flags struct {
	IsMatched     bool `json:"is_matched"`
	UserInitiated bool `json:"user_initiated"`
	CobiInitiated bool `json:"cobi_initiated"`
	UserRedeemed  bool `json:"user_redeemed"`
	CobiRedeemed  bool `json:"cobi_redeemed"`
	UserRefunded  bool `json:"user_refunded"`
	CobiRefunded  bool `json:"cobi_refunded"`
}

// Classify maps a matched-order response to Flags.
// Unless the response status is "Ok" and the result is non-empty every flag is false.
func Classify(resp *orderbook.MatchedOrderResponse) Flags {
	if resp == nil || resp.Status != orderbook.StatusOK || resp.Result.IsEmpty() {
		return Flags{}
	}

	src, dst := resp.Result.SourceSwap, resp.Result.DestinationSwap
	return Flags{
		IsMatched:     src != nil || dst != nil,
		UserInitiated: initiated(src),
		CobiInitiated: initiated(dst),
		UserRedeemed:  src != nil && src.RedeemTxHash != "",
		CobiRedeemed:  dst != nil && dst.RedeemTxHash != "",
		UserRefunded:  src != nil && src.RefundTxHash != "",
		CobiRefunded:  dst != nil && dst.RefundTxHash != "",
	}
}

func initiated(s *orderbook.Swap) bool {
	if s == nil || s.InitiateTxHash == "" {
		return false
	}
	required := defaultRequiredConfirmations
	if s.RequiredConfirmations != nil {
		required = *s.RequiredConfirmations
	}
	return s.CurrentConfirmations >= required
}
