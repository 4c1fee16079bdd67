package hash

import "github.com/cespare/xxhash/v2"

// ColumnID computes the xxHash64 of a column name. Table indexes store this
// value so a column can be located without scanning the names payload.
func ColumnID(name string) uint64 {
	return xxhash.Sum64String(name)
}
