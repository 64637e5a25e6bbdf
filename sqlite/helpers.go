package sqlite

import "strings"

// appendPagination appends LIMIT and OFFSET clauses to a query builder if
// values are > 0. SQLite only accepts OFFSET after a LIMIT, so an offset
// without a limit gets the no-limit sentinel -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
