// Package sqldb implements the core database interfaces on database/sql.
// It is tested with SQLite and MySQL.
package sqldb

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var ErrAuth = errors.New("authentication failed")

func mustPrepare(db *sql.DB, query string) *sql.Stmt {
	stmt, err := db.Prepare(query)
	if err != nil {
		panic(fmt.Sprintf("error preparing %s: %v", query, err))
	}
	return stmt
}

func clean(email string) string {
	email = strings.TrimSpace(email)
	email = strings.ToLower(email)
	return email
}

// searchPattern makes a LIKE pattern which matches the query term
// case-insensitively as a substring.
func searchPattern(query string) string {
	return "%" + strings.ToLower(query) + "%"
}
