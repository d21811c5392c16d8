// Package arenadb is the top-level facade for the arena record store.
package arenadb

import (
	"github.com/tuannm99/arenadb/internal/engine"
	"github.com/tuannm99/arenadb/internal/record"
	"github.com/tuannm99/arenadb/internal/sql/executor"
)

type (
	Database  = engine.Database
	Executor  = executor.Executor
	Result    = executor.Result
	Record    = record.Record
	User      = record.User
	Car       = record.Car
	TableName = record.TableName
)

const (
	TableUser = record.TableUser
	TableCar  = record.TableCar
)

// Open returns an empty database with the given per-table arena capacity.
// capacity <= 0 selects the default.
func Open(capacity int) *Database {
	return engine.NewDatabase(engine.WithTableCapacity(capacity))
}

// NewExecutor returns an executor for command lines against db.
func NewExecutor(db *Database) *Executor {
	return executor.NewExecutor(db)
}
