package repository

import (
	"database/sql/driver"

	"github.com/lib/pq"
)

// textArray binds a string slice to a TEXT[] NOT NULL column. A nil slice is
// stored as the empty array, not NULL.
func textArray(values []string) driver.Valuer {
	if values == nil {
		values = []string{}
	}
	return pq.StringArray(values)
}
