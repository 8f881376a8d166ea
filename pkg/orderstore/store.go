package orderstore

import (
	"context"
	"errors"

	"github.com/chainsafe/swap-status/pkg/swap"
)

var (
	// ErrOrderNotFound is returned when no create_orders row matches the lookup.
	ErrOrderNotFound = errors.New("order not found")
	// ErrMatchedOrderNotFound is returned when the order has not been matched yet.
	ErrMatchedOrderNotFound = errors.New("matched order not found")
)

// Store is the read-only view of the order database.
type Store interface {
	GetOrderByID(ctx context.Context, createID string) (*swap.Order, error)
	GetLatestOrderByInitiator(ctx context.Context, address string) (*swap.Order, error)
	GetMatchedSwapIDs(ctx context.Context, createID string) (*swap.MatchedSwapIDs, error)
}
