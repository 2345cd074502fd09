// internal/store/store.go

// Package store is the persistence boundary: hand-written SQL repositories
// over the shared SQLite connection. A Store bound to a transactional DB (via
// db.RunInTx) runs every query inside that transaction.
package store

import (
	"database/sql"

	appdb "github.com/acereserve/acereserve/internal/db"
)

type Store struct {
	q appdb.Querier
}

func New(database *appdb.DB) *Store {
	return &Store{q: database.Q()}
}

func toNullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

func fromNullInt64(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	v := value.Int64
	return &v
}
