package migrations

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/migrate"

	"github.com/chainsafe/swap-status/pkg/config"
	"github.com/chainsafe/swap-status/pkg/pgutil"
)

type testDao struct {
	bun.BaseModel `bun:"table:test_orders"`
	ID            int64  `bun:",pk,autoincrement"`
	Address       string `bun:",notnull,type:varchar(100)"`
}

func offlineDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestModelIndexName(t *testing.T) {
	db := offlineDB(t)

	tests := []struct {
		column string
		want   string
	}{
		{column: "address", want: "idx_test_orders_address"},
		{column: "lower(address)", want: "idx_test_orders_lower_address"},
		{column: "created_at DESC", want: "idx_test_orders_created_atdesc"},
	}
	for _, tt := range tests {
		got, err := ModelIndexName(db, &testDao{}, tt.column)
		if err != nil {
			t.Fatalf("ModelIndexName(%q) error = %v", tt.column, err)
		}
		if got != tt.want {
			t.Errorf("ModelIndexName(%q) = %q, want %q", tt.column, got, tt.want)
		}
	}

	if _, err := ModelIndexName(db, nil, "x"); err == nil {
		t.Error("expected error for nil model")
	}
}

func TestRunMigrations_RejectsUnknownCommand(t *testing.T) {
	db := offlineDB(t)
	migrator := migrate.NewMigrator(db, migrate.NewMigrations())

	if err := RunMigrations(context.Background(), migrator); err == nil {
		t.Error("expected error without a command")
	}
	if err := RunMigrations(context.Background(), migrator, "sideways"); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestConnectDB_InvalidHost(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:     "invalid-host-that-does-not-exist",
		Port:     5432,
		User:     "test",
		Password: "test",
		Database: "test",
		SSLMode:  "disable",
	}
	db, err := pgutil.ConnectDB(context.Background(), cfg)
	if err == nil {
		_ = db.Close()
		t.Error("ConnectDB() should fail with invalid host")
	}
}

func TestSchemaLifecycle(t *testing.T) {
	pgutil.RequireDocker(t)
	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if err := CreateSchema(ctx, db, &testDao{}); err != nil {
		t.Fatalf("CreateSchema() failed: %v", err)
	}
	pgutil.AssertTableExists(t, db, "test_orders")

	if err := CreateModelIndexes(ctx, db, &testDao{}, "lower(address)"); err != nil {
		t.Fatalf("CreateModelIndexes() failed: %v", err)
	}
	pgutil.AssertIndexExists(t, db, "idx_test_orders_lower_address")

	if err := InsertEntry(ctx, db, &testDao{Address: "0xabc"}, &testDao{Address: "bc1q"}); err != nil {
		t.Fatalf("InsertEntry() failed: %v", err)
	}
	pgutil.AssertRowCount(t, db, "test_orders", 2)

	if err := DropModelIndexes(ctx, db, &testDao{}, "lower(address)"); err != nil {
		t.Fatalf("DropModelIndexes() failed: %v", err)
	}
	if err := DropTables(ctx, db, &testDao{}); err != nil {
		t.Fatalf("DropTables() failed: %v", err)
	}
	pgutil.AssertTableNotExists(t, db, "test_orders")

	// idempotent
	if err := DropTables(ctx, db, &testDao{}); err != nil {
		t.Errorf("DropTables() second call failed: %v", err)
	}
}
