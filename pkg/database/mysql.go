package database

import (
	"context"

	"github.com/go-sql-driver/mysql"
)

const mysqlDriver = "mysql"

// MySQLConfig holds the credentials of a networked MySQL server.
type MySQLConfig struct {
	Host     string // host or host:port, port defaults to 3306
	User     string
	Password string
	Database string
}

// DSN formats the configuration as a go-sql-driver/mysql data source name.
// Connections use the utf8 character set.
func (c MySQLConfig) DSN() string {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = c.Host
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.DBName = c.Database
	cfg.Params = map[string]string{"charset": "utf8"}
	return cfg.FormatDSN()
}

// ConnectMySQL connects to a MySQL server and makes it the active handle,
// closing any previous one.
func (d *DB) ConnectMySQL(ctx context.Context, cfg MySQLConfig) error {
	return d.connect(ctx, mysqlDriver, cfg.DSN(), 0)
}
