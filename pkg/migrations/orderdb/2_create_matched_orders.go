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
		log.Println("creating matched_orders table...")
		return mghelper.CreateSchema(ctx, db, &orderstore.MatchedOrderDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping matched_orders table...")
		return mghelper.DropTables(ctx, db, &orderstore.MatchedOrderDao{})
	})
}
