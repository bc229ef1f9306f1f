package db

import (
	"strconv"
	"strings"
)

// Rewrite converts `?` placeholders to PostgreSQL's numbered `$1..$n` form,
// numbering left to right. Question marks inside single-quoted string
// literals are left alone. It is a pure function so the dialect translation
// can be tested without a live connection.
func Rewrite(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inString := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			// A doubled quote inside a string is an escaped quote, not a
			// terminator.
			if inString && i+1 < len(query) && query[i+1] == '\'' {
				b.WriteString("''")
				i++
				continue
			}
			inString = !inString
			b.WriteByte(c)
		case c == '?' && !inString:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// isInsert reports whether the statement is an INSERT, ignoring leading
// whitespace and letter case.
func isInsert(query string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "INSERT")
}
