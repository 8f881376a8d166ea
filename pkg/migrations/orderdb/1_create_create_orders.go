package orderdb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/chainsafe/swap-status/pkg/orderstore"
	mghelper "github.com/chainsafe/swap-status/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating create_orders table...")
		if err := mghelper.CreateSchema(ctx, db, &orderstore.CreateOrderDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &orderstore.CreateOrderDao{}, "lower(initiator_source_address)", "initiator_source_address", "created_at")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping create_orders table...")
		return mghelper.DropTables(ctx, db, &orderstore.CreateOrderDao{})
	})
}
