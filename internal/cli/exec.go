package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asaidimu/sqlrecord/pkg/core"
)

func newExecCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <sql> [args...]",
		Short: "Run a statement that returns no rows",
		Long: `Run an INSERT, UPDATE, DELETE or DDL statement with positional ? arguments
and print the affected row count and last insert id.

Arguments that parse as numbers are bound as integers or floats. Quote
values that must stay text, such as codes with leading zeros ('01234').

Examples:
  sqlrecord exec "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)"
  sqlrecord exec "INSERT INTO users (name) VALUES (?)" Alice
  sqlrecord exec "DELETE FROM users WHERE id = ?" 3
  sqlrecord exec "UPDATE users SET zip = ? WHERE id = ?" "'01234'" 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]any, len(args)-1)
			for i, a := range args[1:] {
				values[i] = core.ParseValue(a)
			}

			db, done, err := opts.connect(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer done()

			res, err := db.Exec(cmd.Context(), args[0], values...)
			if err != nil {
				return err
			}

			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "rows affected: %d\n", affected)

			if id, err := res.LastInsertId(); err == nil && id > 0 {
				_, _ = fmt.Fprintf(out, "last insert id: %d\n", id)
			}
			return nil
		},
	}
	return cmd
}
