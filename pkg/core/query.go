package core

// Builder renders a statement into SQL text and the positional values bound
// to its placeholders.
type Builder interface {
	// Build returns the SQL text and its values. The number of values always
	// matches the number of "?" placeholders in the text.
	Build() (string, []any, error)
}
