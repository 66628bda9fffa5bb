package settings

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/yllada/gpg-manager/common"
	_ "modernc.org/sqlite"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		value TEXT NOT NULL
	);`,
}

// SQLiteStore persists settings in a SQLite database. All rows are read
// at open time; writes go straight to the database and then to the cache.
type SQLiteStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	path   string
	values map[string]Value
}

// OpenSQLite opens (or creates) the settings database and runs migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSettingsLoad, err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %v", common.ErrSettingsLoad, err)
	}
	db.SetMaxOpenConns(1) // SQLite single-writer

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrations: %v", common.ErrSettingsLoad, err)
	}

	s := &SQLiteStore{db: db, path: path, values: make(map[string]Value)}
	if err := s.loadAll(); err != nil {
		db.Close()
		return nil, err
	}

	common.LogDebug("Loaded %d settings from %s", len(s.values), path)
	return s, nil
}

func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return err
	}

	var currentVersion int
	row := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&currentVersion); err != nil {
		return err
	}

	for i := currentVersion; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", i+1); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) loadAll() error {
	rows, err := s.db.Query("SELECT key, kind, value FROM settings")
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrSettingsLoad, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, kind, text string
		if err := rows.Scan(&key, &kind, &text); err != nil {
			return fmt.Errorf("%w: %v", common.ErrSettingsLoad, err)
		}
		v, err := decodeText(ParseKind(kind), text)
		if err != nil {
			common.LogWarn("Skipping unreadable setting %s: %v", key, err)
			continue
		}
		s.values[key] = v
	}
	return rows.Err()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// Get returns the value stored under key.
func (s *SQLiteStore) Get(key string) (Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set upserts v under key.
func (s *SQLiteStore) Set(key string, v Value) error {
	text, err := encodeText(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrSettingsSave, key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`INSERT INTO settings (key, kind, value) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET kind = excluded.kind, value = excluded.value`,
		key, v.Kind().String(), text)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrSettingsSave, key, err)
	}
	s.values[key] = v
	return nil
}

// Remove deletes key.
func (s *SQLiteStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrSettingsSave, key, err)
	}
	delete(s.values, key)
	return nil
}

// Keys returns the stored keys in lexical order.
func (s *SQLiteStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.values)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// encodeText serializes a value for the value column. Lists and sizes are
// stored as JSON so list entries may contain commas.
func encodeText(v Value) (string, error) {
	switch v.Kind() {
	case KindBool:
		return strconv.FormatBool(v.AsBool()), nil
	case KindString:
		return v.AsString(), nil
	case KindInt:
		return strconv.Itoa(v.AsInt()), nil
	case KindStringList:
		list := v.AsStringList()
		data, err := json.Marshal(list)
		return string(data), err
	case KindSize:
		data, err := json.Marshal(v.AsSize())
		return string(data), err
	default:
		return "", fmt.Errorf("%w: cannot encode invalid value", common.ErrInvalidValue)
	}
}

func decodeText(kind Kind, text string) (Value, error) {
	switch kind {
	case KindBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(b), nil
	case KindString:
		return StringValue(text), nil
	case KindInt:
		i, err := strconv.Atoi(text)
		if err != nil {
			return Value{}, err
		}
		return IntValue(i), nil
	case KindStringList:
		var list []string
		if err := json.Unmarshal([]byte(text), &list); err != nil {
			return Value{}, err
		}
		return StringListValue(list), nil
	case KindSize:
		var size Size
		if err := json.Unmarshal([]byte(text), &size); err != nil {
			return Value{}, err
		}
		return SizeValue(size.Width, size.Height), nil
	default:
		return Value{}, fmt.Errorf("%w: unknown kind", common.ErrInvalidValue)
	}
}
