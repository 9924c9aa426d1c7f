package record

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asaidimu/sqlrecord/pkg/core"
	"github.com/asaidimu/sqlrecord/pkg/database"
)

type User struct {
	Model
	FirstName   string  `db:"first_name"`
	LastName    string  `db:"last_name"`
	Age         int     `db:"age"`
	AccessLevel string  `db:"access_level"`
	Balance     float64 `db:"balance"`
}

func (*User) TableName() string { return "users" }

func (u *User) Fields() []Field {
	return []Field{
		{Column: "first_name", Value: u.FirstName},
		{Column: "last_name", Value: u.LastName},
		{Column: "age", Value: u.Age},
		{Column: "access_level", Value: u.AccessLevel},
		{Column: "balance", Value: u.Balance},
	}
}

type empty struct {
	Model
}

func (*empty) TableName() string { return "users" }
func (*empty) Fields() []Field   { return nil }

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db := database.New()
	require.NoError(t, db.ConnectFile(context.Background(), ":memory:"))
	t.Cleanup(func() { _ = db.Close() })

	conn, err := db.Connection()
	require.NoError(t, err)
	conn.MustExec(`
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT,
			last_name TEXT,
			age INTEGER,
			access_level TEXT,
			balance REAL
		)`)
	conn.MustExec(`
		INSERT INTO users (first_name, last_name, age, access_level, balance) VALUES
		('Alice', 'Smith', 25, 'standard', 100.50),
		('Bob', 'Johnson', 16, 'standard', 50.25),
		('Charlie', 'Brown', 30, 'premium', 1200.75),
		('Diana', 'Prince', 17, 'premium', 250.00),
		('Eve', 'Adams', 42, 'standard', 75.00)`)
	return db
}

func TestTable_Name(t *testing.T) {
	assert.Equal(t, "users", NewTable[User](nil).Name())
}

func TestInsert_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	users := NewTable[User](db)
	ctx := context.Background()

	u := &User{FirstName: "Frank", LastName: "Castle", Age: 50, AccessLevel: "premium", Balance: 9.5}
	require.NoError(t, users.Insert(ctx, u))
	assert.Equal(t, int64(6), u.ID)

	got, err := users.Find(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *u, *got)

	log := db.Log()
	require.NotEmpty(t, log)
	assert.Equal(t,
		"INSERT INTO users (first_name, last_name, age, access_level, balance) VALUES (:first_name, :last_name, :age, :access_level, :balance)",
		log[0].SQL)
	assert.Equal(t, "SELECT * FROM users WHERE id = :id", log[1].SQL)
}

func TestInsert_PrimaryKeySet(t *testing.T) {
	db := setupTestDB(t)
	users := NewTable[User](db)

	u := &User{FirstName: "Zed"}
	u.ID = 3
	err := users.Insert(context.Background(), u)

	assert.ErrorIs(t, err, core.ErrPrimaryKeySet)
	assert.Empty(t, db.Log())
}

func TestInsert_NoFields(t *testing.T) {
	db := setupTestDB(t)

	err := NewTable[empty](db).Insert(context.Background(), &empty{})
	assert.ErrorIs(t, err, ErrNoFields)
	assert.Empty(t, db.Log())
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)
	users := NewTable[User](db)
	ctx := context.Background()

	u, err := users.Find(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, u)

	u.Age = 17
	u.AccessLevel = "premium"
	require.NoError(t, users.Update(ctx, u))

	got, err := users.Find(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 17, got.Age)
	assert.Equal(t, "premium", got.AccessLevel)
	assert.Equal(t, "Bob", got.FirstName)

	assert.Equal(t,
		"UPDATE users SET first_name = :first_name, last_name = :last_name, age = :age, access_level = :access_level, balance = :balance WHERE id = :id",
		db.Log()[1].SQL)

	other, err := users.Find(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "standard", other.AccessLevel)
}

func TestUpdateDelete_PrimaryKeyNotSet(t *testing.T) {
	db := setupTestDB(t)
	users := NewTable[User](db)
	ctx := context.Background()

	assert.ErrorIs(t, users.Update(ctx, &User{FirstName: "Nobody"}), core.ErrPrimaryKeyNotSet)
	assert.ErrorIs(t, users.Delete(ctx, &User{FirstName: "Nobody"}), core.ErrPrimaryKeyNotSet)
	assert.Empty(t, db.Log())
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	users := NewTable[User](db)
	ctx := context.Background()

	u, err := users.Find(ctx, 4)
	require.NoError(t, err)
	require.NoError(t, users.Delete(ctx, u))
	assert.Equal(t, int64(4), u.ID)

	gone, err := users.Find(ctx, 4)
	require.NoError(t, err)
	assert.Nil(t, gone)

	count, err := users.Select("COUNT(*)").Field(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.Equal(t, "DELETE FROM users WHERE id = :id", db.Log()[1].SQL)
}

func TestFind(t *testing.T) {
	db := setupTestDB(t)
	users := NewTable[User](db)
	ctx := context.Background()

	u, err := users.Find(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, User{Model: Model{ID: 3}, FirstName: "Charlie", LastName: "Brown", Age: 30, AccessLevel: "premium", Balance: 1200.75}, *u)

	missing, err := users.Find(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFind_NoConnection(t *testing.T) {
	_, err := NewTable[User](database.New()).Find(context.Background(), 1)
	assert.ErrorIs(t, err, core.ErrNoConnection)
}

func TestSelect_Rows(t *testing.T) {
	db := setupTestDB(t)
	users := NewTable[User](db)

	adults, err := users.Select().
		Where(core.GreaterOrEqual("age", 18)).
		And(core.In("access_level", "standard", "premium")).
		OrderBy("age DESC").
		Rows(context.Background())

	require.NoError(t, err)
	require.Len(t, adults, 3)
	assert.Equal(t, "Eve", adults[0].FirstName)
	assert.Equal(t, int64(5), adults[0].ID)
	assert.Equal(t, "Charlie", adults[1].FirstName)
	assert.Equal(t, "Alice", adults[2].FirstName)
	assert.Equal(t, "SELECT * FROM users WHERE age >= ? AND access_level IN (?,?) ORDER BY age DESC", db.Log()[0].SQL)
}

func TestSelect_RowsInSlice(t *testing.T) {
	db := setupTestDB(t)

	ids := []int64{1, 3, 5}
	got, err := NewTable[User](db).Select().Where(core.In("id", ids)).OrderBy("id").Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Alice", got[0].FirstName)
	assert.Equal(t, "Charlie", got[1].FirstName)
	assert.Equal(t, "Eve", got[2].FirstName)
	assert.Equal(t, "SELECT * FROM users WHERE id IN (?,?,?) ORDER BY id", db.Log()[0].SQL)
}

func TestSelect_RowsEmpty(t *testing.T) {
	db := setupTestDB(t)

	none, err := NewTable[User](db).Select().Where(core.Greater("age", 100)).Rows(context.Background())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSelect_Row(t *testing.T) {
	db := setupTestDB(t)
	users := NewTable[User](db)
	ctx := context.Background()

	u, err := users.Select().Where(core.Like("last_name", "J%")).Row(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Bob", u.FirstName)

	u, err = users.Select().Where(core.Eq("first_name", "Nobody")).Row(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestSelect_Projection(t *testing.T) {
	db := setupTestDB(t)
	users := NewTable[User](db)
	ctx := context.Background()

	partial, err := users.Select("id", "first_name").Where(core.Eq("id", 1)).Rows(ctx)
	require.NoError(t, err)
	require.Len(t, partial, 1)
	assert.Equal(t, User{Model: Model{ID: 1}, FirstName: "Alice"}, *partial[0])

	maps, err := users.Select("first_name").
		Where(core.Less("age", 18)).
		Or(core.IsNull("balance")).
		OrderBy("id").
		Maps(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Row{{"first_name": "Bob"}, {"first_name": "Diana"}}, maps)

	row, err := users.Select("last_name").Where(core.Eq("id", 5)).Map(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Row{"last_name": "Adams"}, row)
}

func TestSelect_Pagination(t *testing.T) {
	db := setupTestDB(t)
	users := NewTable[User](db)
	ctx := context.Background()

	page, err := users.Select().OrderBy("id").LimitOffset(1, 2).Rows(ctx)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(2), page[0].ID)
	assert.Equal(t, int64(3), page[1].ID)

	first, err := users.Select().OrderBy("id DESC").Limit(1).Rows(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, int64(5), first[0].ID)
}

func TestSelect_InvalidClause(t *testing.T) {
	db := setupTestDB(t)

	q := NewTable[User](db).Select().Where(core.Condition{Column: "age", Operator: "greater_than", Value: 1})
	_, _, err := q.Build()
	assert.ErrorIs(t, err, core.ErrInvalidClause)

	_, err = q.Rows(context.Background())
	assert.ErrorIs(t, err, core.ErrInvalidClause)
	assert.Empty(t, db.Log())
}

func TestValue(t *testing.T) {
	u := &User{FirstName: "Alice", Age: 25}
	u.ID = 9

	v, ok := Value(u, "first_name")
	assert.True(t, ok)
	assert.Equal(t, "Alice", v)

	v, ok = Value(u, IDColumn)
	assert.True(t, ok)
	assert.Equal(t, int64(9), v)

	v, ok = Value(u, "nickname")
	assert.False(t, ok)
	assert.Nil(t, v)
}
