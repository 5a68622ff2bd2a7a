package table

import (
	"sort"
	"strconv"
)

// Completeness returns the number of non-null cells in a row.
func Completeness(row Row) int {
	n := 0
	for _, v := range row {
		if v.Valid {
			n++
		}
	}
	return n
}

// RankByCompleteness returns a copy of t with rows ordered by descending
// completeness, then by descending value of each tie-break column in turn.
// Null tie-break values sort after non-null ones. Rows that still tie keep
// their input order. Nothing is merged or dropped.
func (t *Table) RankByCompleteness(tieBreak ...string) *Table {
	idx := make([]int, 0, len(tieBreak))
	for _, c := range tieBreak {
		if i := t.Column(c); i >= 0 {
			idx = append(idx, i)
		}
	}

	type ranked struct {
		row   Row
		count int
	}
	rows := make([]ranked, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = ranked{row: row, count: Completeness(row)}
	}

	sort.SliceStable(rows, func(a, b int) bool {
		ra, rb := rows[a], rows[b]
		if ra.count != rb.count {
			return ra.count > rb.count
		}
		for _, i := range idx {
			if c := compareDesc(ra.row[i], rb.row[i]); c != 0 {
				return c < 0
			}
		}
		return false
	})

	out := New(t.Columns...)
	out.Rows = make([]Row, len(rows))
	for i, r := range rows {
		out.Rows[i] = r.row
	}
	return out
}

// compareDesc orders a before b (-1) when a is the larger value. Nulls go last.
func compareDesc(a, b Value) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return 1
	case !b.Valid:
		return -1
	case a.String > b.String:
		return -1
	case a.String < b.String:
		return 1
	}
	return 0
}

// GroupOrdered sorts rows ascending by (group, order) and collects the value
// column of each group, in that order. Rows with a null group or value are
// skipped. Order values that both parse as integers compare numerically.
func (t *Table) GroupOrdered(group, order, value string) map[string][]string {
	gi, oi, vi := t.Column(group), t.Column(order), t.Column(value)
	out := make(map[string][]string)
	if gi < 0 || vi < 0 {
		return out
	}

	rows := make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		if row[gi].Valid && row[vi].Valid {
			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a][gi].String != rows[b][gi].String {
			return rows[a][gi].String < rows[b][gi].String
		}
		if oi < 0 {
			return false
		}
		return ordinalLess(rows[a][oi], rows[b][oi])
	})

	for _, row := range rows {
		key := row[gi].String
		out[key] = append(out[key], row[vi].String)
	}
	return out
}

func ordinalLess(a, b Value) bool {
	if !a.Valid || !b.Valid {
		return a.Valid && !b.Valid
	}
	na, errA := strconv.Atoi(a.String)
	nb, errB := strconv.Atoi(b.String)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a.String < b.String
}
