// Package store provides sqlite-backed persistence for clients that keep a
// local profile database: the durable bearer credential and per-resource list
// snapshots used for stale-but-visible rendering across restarts.
package store

import (
	"context"
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Open returns a bun.DB over the sqlite database at dsn. Pass
// "file::memory:?cache=shared" for an ephemeral database in tests.
func Open(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to open profile database")
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func createTable(ctx context.Context, db *bun.DB, model any) error {
	if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to create table")
	}
	return nil
}
