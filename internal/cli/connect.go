package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/asaidimu/sqlrecord/internal/config"
	"github.com/asaidimu/sqlrecord/internal/errors"
	"github.com/asaidimu/sqlrecord/internal/logging"
	"github.com/asaidimu/sqlrecord/pkg/database"
)

// connect loads the configuration and opens the database it names. The
// returned function closes the handle and, with --show-log, prints the
// statement log.
func (o *globalOptions) connect(ctx context.Context, cmd *cobra.Command) (*database.DB, func(), error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	logger := logging.NewWithComponent(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		Output: cmd.ErrOrStderr(),
	}, "sqlrecord")

	db := database.New(database.WithLogger(logger))

	switch cfg.Driver {
	case config.DriverMySQL:
		err = db.ConnectMySQL(ctx, database.MySQLConfig{
			Host:     cfg.MySQL.Host,
			User:     cfg.MySQL.User,
			Password: cfg.MySQL.Password,
			Database: cfg.MySQL.Database,
		})
	default:
		err = db.ConnectFile(ctx, cfg.SQLite.Path)
	}
	if err != nil {
		return nil, nil, err
	}

	done := func() {
		if o.showLog {
			printLog(cmd, db.Log())
		}
		errors.DeferClose(logger, db, "failed to close database")
	}
	return db, done, nil
}

func printLog(cmd *cobra.Command, log []database.Statement) {
	w := tabwriter.NewWriter(cmd.ErrOrStderr(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "MS\tSQL")
	for _, s := range log {
		_, _ = fmt.Fprintf(w, "%.3f\t%s\n", s.Milliseconds(), s.SQL)
	}
	_ = w.Flush()
}
