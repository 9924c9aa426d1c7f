package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asaidimu/sqlrecord/pkg/core"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func setupFile(t *testing.T) {
	t.Helper()
	t.Setenv("SQLRECORD_DRIVER", "sqlite")
	t.Setenv("SQLRECORD_SQLITE_PATH", filepath.Join(t.TempDir(), "cli.db"))

	_, _, err := run(t, "exec", "CREATE TABLE users (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, age INTEGER)")
	require.NoError(t, err)

	for _, u := range [][]string{{"Alice", "25"}, {"Bob", "16"}, {"Charlie", "30"}} {
		_, _, err := run(t, "exec", "INSERT INTO users (name, age) VALUES (?, ?)", u[0], u[1])
		require.NoError(t, err)
	}
}

func TestExec(t *testing.T) {
	setupFile(t)

	out, _, err := run(t, "exec", "INSERT INTO users (name, age) VALUES (?, ?)", "Diana", "17")
	require.NoError(t, err)
	assert.Equal(t, "rows affected: 1\nlast insert id: 4\n", out)

	out, _, err = run(t, "exec", "UPDATE users SET age = age + 1 WHERE age < ?", "18")
	require.NoError(t, err)
	assert.Contains(t, out, "rows affected: 2\n")
}

func TestExec_Error(t *testing.T) {
	setupFile(t)

	_, _, err := run(t, "exec", "INSERT INTO missing (x) VALUES (1)")
	assert.ErrorIs(t, err, core.ErrExecution)
}

func TestSelect(t *testing.T) {
	setupFile(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "all rows",
			args: []string{"select", "users", "--order-by", "id"},
			want: []string{
				`{"age":25,"id":1,"name":"Alice"}`,
				`{"age":16,"id":2,"name":"Bob"}`,
				`{"age":30,"id":3,"name":"Charlie"}`,
			},
		},
		{
			name: "where and order",
			args: []string{"select", "users", "--columns", "name", "--where", "age >= 18", "--order-by", "age DESC"},
			want: []string{`{"name":"Charlie"}`, `{"name":"Alice"}`},
		},
		{
			name: "where and or",
			args: []string{"select", "users", "--columns", "name",
				"--where", "name like 'A%'", "--where", "age > 20", "--or", "name in Bob,Zed", "--order-by", "id"},
			want: []string{`{"name":"Alice"}`, `{"name":"Bob"}`},
		},
		{
			name: "limit offset",
			args: []string{"select", "users", "--columns", "id", "--order-by", "id", "--limit", "1", "--offset", "1"},
			want: []string{`{"id":2}`},
		},
		{
			name: "no match",
			args: []string{"select", "users", "--where", "age > 99"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.NoError(t, err)

			var lines []string
			for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
				if l != "" {
					lines = append(lines, l)
				}
			}
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestSelect_ShowLog(t *testing.T) {
	setupFile(t)

	_, stderr, err := run(t, "select", "users", "--where", "id = 1", "--show-log")
	require.NoError(t, err)
	assert.Contains(t, stderr, "SELECT * FROM users WHERE id = ?")
}

func TestSelect_InvalidExpression(t *testing.T) {
	setupFile(t)

	_, _, err := run(t, "select", "users", "--where", "age ~ 3")
	assert.ErrorIs(t, err, core.ErrInvalidClause)

	_, _, err = run(t, "select", "users", "--offset", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--offset requires --limit")
}

func TestConfigFlag_Missing(t *testing.T) {
	_, _, err := run(t, "select", "users", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlrecord version dev")
}

func TestExec_QuotedDigitsStayText(t *testing.T) {
	setupFile(t)

	_, _, err := run(t, "exec", "INSERT INTO users (name, age) VALUES (?, ?)", "'01234'", "40")
	require.NoError(t, err)

	out, _, err := run(t, "select", "users", "--columns", "name,age", "--where", "id = 4")
	require.NoError(t, err)
	assert.Equal(t, `{"age":40,"name":"01234"}`+"\n", out)

	help, _, err := run(t, "exec", "--help")
	require.NoError(t, err)
	assert.Contains(t, help, "leading zeros")
}
