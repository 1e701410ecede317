package postgres

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mbranch/crud-api/internal/store"
)

// filterClause builds the WHERE clause for a query's criteria and search
// term. columns maps the externally visible criteria names onto qualified
// SQL columns; anything outside the map is rejected rather than
// interpolated. Placeholder numbering starts at $1.
func filterClause(
	q store.Query,
	columns map[string]string,
	searchColumns []string,
) (string, []any, error) {
	var conds []string
	var args []any
	n := 1

	// Criteria keys get a stable order so generated SQL is deterministic.
	keys := make([]string, 0, len(q.Criteria))
	for k := range q.Criteria {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		col, ok := columns[k]
		if !ok {
			return "", nil, fmt.Errorf("%w: unknown criteria column %q",
				store.ErrInvalidEntity, k)
		}
		conds = append(conds, fmt.Sprintf("%s = $%d", col, n))
		args = append(args, q.Criteria[k])
		n++
	}

	if q.Search != "" && len(searchColumns) > 0 {
		like := make([]string, 0, len(searchColumns))
		for _, col := range searchColumns {
			// The same placeholder is reused across every search column.
			like = append(like, fmt.Sprintf("%s ILIKE $%d", col, n))
		}
		args = append(args, "%"+q.Search+"%")
		conds = append(conds, "("+strings.Join(like, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// orderClause builds the ORDER BY clause from a query's ordering options,
// falling back to the given default when none were requested. Properties
// outside the column map are rejected.
func orderClause(q store.Query, columns map[string]string, fallback string) (string, error) {
	if len(q.Order) == 0 {
		return " ORDER BY " + fallback, nil
	}

	parts := make([]string, 0, len(q.Order))
	for _, o := range q.Order {
		col, ok := columns[o.Property]
		if !ok {
			return "", fmt.Errorf("%w: unknown order property %q",
				store.ErrInvalidEntity, o.Property)
		}
		parts = append(parts, fmt.Sprintf("%s %s", col, o.Direction))
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

// pageClause renders LIMIT/OFFSET for an already normalized query.
func pageClause(q store.Query) string {
	return fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit, q.Offset)
}
