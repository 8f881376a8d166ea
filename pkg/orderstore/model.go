package orderstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/chainsafe/swap-status/pkg/swap"
)

// CreateOrderDao maps to the 'create_orders' table written by the order creation service.
type CreateOrderDao struct {
	bun.BaseModel          `bun:"table:create_orders,alias:co"`
	CreateID               string    `bun:"create_id,pk,type:varchar(255)"`
	SourceChain            string    `bun:"source_chain,notnull,type:varchar(64)"`
	DestinationChain       string    `bun:"destination_chain,notnull,type:varchar(64)"`
	CreatedAt              time.Time `bun:"created_at,notnull,default:current_timestamp"`
	SecretHash             *string   `bun:"secret_hash,type:varchar(255)"`
	InitiatorSourceAddress *string   `bun:"initiator_source_address,type:varchar(255)"`
}

// MatchedOrderDao maps to the 'matched_orders' table.
type MatchedOrderDao struct {
	bun.BaseModel     `bun:"table:matched_orders,alias:mo"`
	CreateOrderID     string  `bun:"create_order_id,pk,type:varchar(255)"`
	SourceSwapID      *string `bun:"source_swap_id,type:varchar(255)"`
	DestinationSwapID *string `bun:"destination_swap_id,type:varchar(255)"`
}

func toOrder(dao *CreateOrderDao) *swap.Order {
	o := &swap.Order{
		CreateID:         dao.CreateID,
		SourceChain:      dao.SourceChain,
		DestinationChain: dao.DestinationChain,
		CreatedAt:        dao.CreatedAt.UTC(),
	}
	if dao.SecretHash != nil {
		o.SecretHash = *dao.SecretHash
	}
	if dao.InitiatorSourceAddress != nil {
		o.InitiatorSourceAddress = *dao.InitiatorSourceAddress
	}
	return o
}

func toMatchedSwapIDs(dao *MatchedOrderDao) *swap.MatchedSwapIDs {
	ids := &swap.MatchedSwapIDs{}
	if dao.SourceSwapID != nil {
		ids.SourceSwapID = *dao.SourceSwapID
	}
	if dao.DestinationSwapID != nil {
		ids.DestinationSwapID = *dao.DestinationSwapID
	}
	return ids
}
