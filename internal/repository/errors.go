package repository

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// IsUniqueViolation - нарушение PRIMARY KEY или UNIQUE.
// https://www.sqlite.org/rescode.html#constraint_primarykey
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
