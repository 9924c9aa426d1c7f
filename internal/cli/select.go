package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asaidimu/sqlrecord/pkg/core"
	"github.com/asaidimu/sqlrecord/pkg/query"
)

func newSelectCmd(opts *globalOptions) *cobra.Command {
	var (
		columns []string
		where   []string
		or      []string
		orderBy string
		limit   int
		offset  int
	)

	cmd := &cobra.Command{
		Use:   "select <table>",
		Short: "Run a filtered SELECT and print rows as JSON lines",
		Long: `Run a SELECT against a table and print one JSON object per row.

Every --where expression is joined with AND, then every --or expression is
joined with OR. An expression is "<column> <operator> <value>" where the
operator is one of =, !=, <>, >, <, >=, <=, like, not like, in, not in,
is null and is not null. Lists for in / not in are comma separated.

Examples:
  sqlrecord select users --where "age >= 18" --order-by "age DESC" --limit 10
  sqlrecord select users --columns id,first_name --where "access_level in standard,premium"
  sqlrecord select users --where "last_name like 'J%'" --or "balance is null"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if offset > 0 && limit < 0 {
				return fmt.Errorf("--offset requires --limit")
			}

			conditions := make([]core.Condition, 0, len(where)+len(or))
			for _, expr := range append(append([]string{}, where...), or...) {
				cond, err := core.ParseCondition(expr)
				if err != nil {
					return err
				}
				conditions = append(conditions, cond)
			}

			db, done, err := opts.connect(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer done()

			sel := query.New(db, args[0], columns...)
			for i, cond := range conditions {
				switch {
				case i == 0:
					sel.Where(cond)
				case i < len(where):
					sel.And(cond)
				default:
					sel.Or(cond)
				}
			}
			if orderBy != "" {
				sel.OrderBy(orderBy)
			}
			switch {
			case offset > 0:
				sel.LimitOffset(offset, limit)
			case limit >= 0:
				sel.Limit(limit)
			}

			rows, err := sel.Rows(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, row := range rows {
				if err := enc.Encode(row); err != nil {
					return fmt.Errorf("failed to write row: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "comma separated columns to select (default all)")
	cmd.Flags().StringArrayVar(&where, "where", nil, "predicate joined with AND (repeatable)")
	cmd.Flags().StringArrayVar(&or, "or", nil, "predicate joined with OR (repeatable)")
	cmd.Flags().StringVar(&orderBy, "order-by", "", "ORDER BY text")
	cmd.Flags().IntVar(&limit, "limit", -1, "maximum number of rows (0 for no limit)")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip, requires --limit")

	return cmd
}
