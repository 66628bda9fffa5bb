// Package settings provides the persistent key-value store behind the
// preferences of gpg-manager.
//
// Keys are hierarchical strings such as "general/rememberPassword" and
// values are a tagged union (see Value). A Store read never fails: a missing
// key resolves to the caller's default and a key holding another kind
// resolves to the zero value of the requested type. Writes are durable once
// Set or Remove return.
package settings

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/yllada/gpg-manager/common"
)

// Store is a persistent key-value settings store.
type Store interface {
	// Get returns the value stored under key.
	Get(key string) (Value, bool)
	// Set stores v under key.
	Set(key string, v Value) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
	// Keys returns the stored keys in lexical order.
	Keys() []string
	// Close releases the backend.
	Close() error
}

// GetBool reads a bool setting. def is returned when the key is missing.
func GetBool(s Store, key string, def bool) bool {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	return v.AsBool()
}

// GetString reads a string setting. def is returned when the key is missing.
func GetString(s Store, key string, def string) string {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	return v.AsString()
}

// GetStringList reads a string-list setting. def is returned when the key
// is missing.
func GetStringList(s Store, key string, def []string) []string {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	return v.AsStringList()
}

// GetSize reads a size setting. def is returned when the key is missing.
func GetSize(s Store, key string, def Size) Size {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	return v.AsSize()
}

// GetInt reads an int setting. def is returned when the key is missing.
func GetInt(s Store, key string, def int) int {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	return v.AsInt()
}

// SetBool writes a bool setting.
func SetBool(s Store, key string, b bool) error { return s.Set(key, BoolValue(b)) }

// SetString writes a string setting.
func SetString(s Store, key string, str string) error { return s.Set(key, StringValue(str)) }

// SetStringList writes a string-list setting.
func SetStringList(s Store, key string, list []string) error {
	return s.Set(key, StringListValue(list))
}

// SetSize writes a size setting.
func SetSize(s Store, key string, size Size) error {
	return s.Set(key, SizeValue(size.Width, size.Height))
}

// SetInt writes an int setting.
func SetInt(s Store, key string, i int) error { return s.Set(key, IntValue(i)) }

// Dump copies every stored value into a map.
func Dump(s Store) map[string]Value {
	out := make(map[string]Value)
	for _, k := range s.Keys() {
		if v, ok := s.Get(k); ok {
			out[k] = v
		}
	}
	return out
}

// Open opens the store backend named by backend at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case common.BackendYAML:
		return OpenFile(path)
	case common.BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownBackend, backend)
	}
}

// DefaultPath returns the default location of the backend's file inside
// configDir.
func DefaultPath(backend, configDir string) string {
	if backend == common.BackendSQLite {
		return filepath.Join(configDir, common.SettingsDBName)
	}
	return filepath.Join(configDir, common.SettingsFileName)
}

func sortedKeys(values map[string]Value) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
