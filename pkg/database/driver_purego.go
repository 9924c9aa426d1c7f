//go:build !cgo_sqlite

package database

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const fileDriver = "sqlite"

func init() {
	sqlx.BindDriver(fileDriver, sqlx.QUESTION)
}
