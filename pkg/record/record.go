// Package record maps plain structs to single table rows.
//
// A record type embeds Model for its identifier and declares its table and
// the columns it persists:
//
//	type User struct {
//	    record.Model
//	    FirstName string `db:"first_name"`
//	    Age       int    `db:"age"`
//	}
//
//	func (*User) TableName() string { return "users" }
//
//	func (u *User) Fields() []record.Field {
//	    return []record.Field{
//	        {Column: "first_name", Value: u.FirstName},
//	        {Column: "age", Value: u.Age},
//	    }
//	}
//
//	users := record.NewTable[User](db)
//	err := users.Insert(ctx, &User{FirstName: "Alice", Age: 25})
//	adults, err := users.Select().Where(core.GreaterOrEqual("age", 18)).Rows(ctx)
//
// Fields drives INSERT and UPDATE; the `db` tags drive materialization of
// SELECT results.
package record

// IDColumn is the identifier column every record table carries.
const IDColumn = "id"

// Field is one persisted column and its current value.
type Field struct {
	Column string
	Value  any
}

// Record is implemented by persistable types, normally through a pointer to
// a struct embedding Model.
type Record interface {
	// TableName returns the table the record lives in.
	TableName() string
	// PrimaryKey returns the identifier, 0 when the record was never inserted.
	PrimaryKey() int64
	// SetPrimaryKey stores the identifier assigned by the database.
	SetPrimaryKey(id int64)
	// Fields lists every non-identifier column with its value, in the order
	// the columns appear in generated statements.
	Fields() []Field
}

// Model carries the identifier of a record. Embed it in record structs.
type Model struct {
	ID int64 `db:"id" json:"id"`
}

// PrimaryKey implements Record.
func (m *Model) PrimaryKey() int64 {
	return m.ID
}

// SetPrimaryKey implements Record.
func (m *Model) SetPrimaryKey(id int64) {
	m.ID = id
}

// Value returns the value rec holds for column, and whether the column is
// declared by the record at all.
func Value(rec Record, column string) (any, bool) {
	if column == IDColumn {
		return rec.PrimaryKey(), true
	}
	for _, f := range rec.Fields() {
		if f.Column == column {
			return f.Value, true
		}
	}
	return nil, false
}
