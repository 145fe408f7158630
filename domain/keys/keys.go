package keys

import (
	"fmt"
	"strings"
)

const (
	// delimiter between key components; names and padded ids never contain it
	delimiter = ":"

	PfxState = "state"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(delimiter, components...)
}

// Row is the key of a row in the table of a contract. The scope narrows a table
// the way owner scoped tables do, pass "" for unscoped tables.
func Row(contract, table, scope, pk string) string {
	return TablePrefix(contract, table, scope) + pk
}

// TablePrefix ends with the delimiter so a prefix scan never matches a sibling table.
func TablePrefix(contract, table, scope string) string {
	if scope == "" {
		scope = "_"
	}
	return RedisKey(contract, table, scope) + delimiter
}

// Singleton is the key of a one row table.
func Singleton(contract, table string) string {
	return Row(contract, table, "", "singleton")
}

// Uint pads ids so that lexical key order matches numeric order.
func Uint(id uint64) string {
	return fmt.Sprintf("%020d", id)
}

// Last returns the final component of a key.
func Last(key string) string {
	i := strings.LastIndex(key, delimiter)
	return key[i+1:]
}
