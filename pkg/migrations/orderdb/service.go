// Package orderdb holds the migrations for a local copy of the order database
package orderdb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the order database
var Migrations = migrate.NewMigrations()
