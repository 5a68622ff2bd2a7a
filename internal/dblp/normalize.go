package dblp

import "github.com/matsen/dblp2wd/internal/table"

// Normalize converts a result set into a table with exactly the given
// columns, in order, one row per binding. Unbound variables become null.
func Normalize(results *Results, vars []string) *table.Table {
	t := table.New(vars...)
	if results == nil {
		return t
	}
	t.Rows = make([]table.Row, 0, len(results.Results.Bindings))
	for _, b := range results.Results.Bindings {
		row := make(table.Row, len(vars))
		for i, v := range vars {
			if term, ok := b[v]; ok {
				row[i] = table.Str(term.Value)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
