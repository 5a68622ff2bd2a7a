package table

import "strings"

// StripPrefix removes a literal prefix from every non-null cell in column.
// Cells without the prefix are left as they are, so stripping twice is a no-op.
func (t *Table) StripPrefix(column, prefix string) {
	t.Apply(column, func(s string) string {
		return strings.TrimPrefix(s, prefix)
	})
}

// TrimFullStop removes exactly one trailing full stop.
// "Title.." becomes "Title.", not "Title".
func TrimFullStop(s string) string {
	return strings.TrimSuffix(s, ".")
}
