package orderstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/uptrace/bun"

	"github.com/chainsafe/swap-status/pkg/swap"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the order store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) GetOrderByID(ctx context.Context, createID string) (*swap.Order, error) {
	dao := new(CreateOrderDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("create_id = ?", createID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", createID, err)
	}
	return toOrder(dao), nil
}

// GetLatestOrderByInitiator returns the most recently created order for an initiator address.
// EVM addresses are compared case-insensitively, every other address exactly.
func (s *pgStore) GetLatestOrderByInitiator(ctx context.Context, address string) (*swap.Order, error) {
	dao := new(CreateOrderDao)
	q := s.db.NewSelect().Model(dao)
	if normalized := swap.NormalizeAddress(address); common.IsHexAddress(normalized) {
		q = q.Where("lower(initiator_source_address) = ?", normalized)
	} else {
		q = q.Where("initiator_source_address = ?", normalized)
	}
	err := q.
		OrderExpr("created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get latest order for initiator %s: %w", address, err)
	}
	return toOrder(dao), nil
}

func (s *pgStore) GetMatchedSwapIDs(ctx context.Context, createID string) (*swap.MatchedSwapIDs, error) {
	dao := new(MatchedOrderDao)
	err := s.db.NewSelect().
		Model(dao).
		Column("create_order_id", "source_swap_id", "destination_swap_id").
		Where("create_order_id = ?", createID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchedOrderNotFound
		}
		return nil, fmt.Errorf("failed to get matched order %s: %w", createID, err)
	}
	return toMatchedSwapIDs(dao), nil
}
