package settings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/yllada/gpg-manager/common"
	"gopkg.in/yaml.v3"
)

// fileDocument is the on-disk layout of a FileStore.
type fileDocument struct {
	Settings map[string]Value `yaml:"settings"`
}

// FileStore persists settings to a YAML file. Every write rewrites the
// whole file through a temporary file and a rename.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]Value
}

// OpenFile loads the YAML settings file at path. A missing file yields an
// empty store; the file is created on the first write.
func OpenFile(path string) (*FileStore, error) {
	fs := &FileStore{
		path:   path,
		values: make(map[string]Value),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, fmt.Errorf("%w: %v", common.ErrSettingsLoad, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return fs, nil
	}

	var doc fileDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", common.ErrSettingsLoad, path, err)
	}
	for k, v := range doc.Settings {
		fs.values[k] = v
	}

	common.LogDebug("Loaded %d settings from %s", len(fs.values), path)
	return fs, nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string { return f.path }

// Get returns the value stored under key.
func (f *FileStore) Get(key string) (Value, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

// Set stores v under key and rewrites the file.
func (f *FileStore) Set(key string, v Value) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, existed := f.values[key]
	f.values[key] = v
	if err := f.flushLocked(); err != nil {
		if existed {
			f.values[key] = old
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

// Remove deletes key and rewrites the file.
func (f *FileStore) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, existed := f.values[key]
	if !existed {
		return nil
	}
	delete(f.values, key)
	if err := f.flushLocked(); err != nil {
		f.values[key] = old
		return err
	}
	return nil
}

// Keys returns the stored keys in lexical order.
func (f *FileStore) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return sortedKeys(f.values)
}

// Close is a no-op; every write is already on disk.
func (f *FileStore) Close() error { return nil }

func (f *FileStore) flushLocked() error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: creating %s: %v", common.ErrSettingsSave, dir, err)
	}

	data, err := yaml.Marshal(fileDocument{Settings: f.values})
	if err != nil {
		return fmt.Errorf("%w: serializing: %v", common.ErrSettingsSave, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrSettingsSave, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing %s: %v", common.ErrSettingsSave, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", common.ErrSettingsSave, err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", common.ErrSettingsSave, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing %s: %v", common.ErrSettingsSave, f.path, err)
	}
	return nil
}
