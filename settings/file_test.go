package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yllada/gpg-manager/common"
)

// fixture writes one value of every kind.
func fixture(t *testing.T, s Store) {
	t.Helper()
	values := map[string]Value{
		KeyRememberPassword: BoolValue(true),
		KeyLanguage:         StringValue("true"),
		KeyKeyServerList:    StringListValue([]string{"hkp://a,b", "http://c"}),
		KeyIconSize:         SizeValue(32, 32),
		KeyIconStyle:        IntValue(1),
	}
	for k, v := range values {
		if err := s.Set(k, v); err != nil {
			t.Fatalf("Set(%s) error = %v", k, err)
		}
	}
}

func assertFixture(t *testing.T, s Store) {
	t.Helper()
	if !GetBool(s, KeyRememberPassword, false) {
		t.Error("rememberPassword should survive reopen")
	}
	v, ok := s.Get(KeyLanguage)
	if !ok || v.Kind() != KindString || v.AsString() != "true" {
		t.Errorf("lang = %v (%v), want string \"true\"", v, v.Kind())
	}
	list := GetStringList(s, KeyKeyServerList, nil)
	if len(list) != 2 || list[0] != "hkp://a,b" || list[1] != "http://c" {
		t.Errorf("keyServerList = %v", list)
	}
	if got := GetSize(s, KeyIconSize, Size{}); got != (Size{32, 32}) {
		t.Errorf("iconsize = %v, want 32x32", got)
	}
	if got := GetInt(s, KeyIconStyle, -1); got != 1 {
		t.Errorf("iconstyle = %v, want 1", got)
	}
}

func TestFileStore_PersistsKinds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	fs, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	fixture(t, fs)

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	assertFixture(t, reopened)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("settings file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestFileStore_Remove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	fs, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := SetString(fs, KeyDefaultKeyServer, "hkp://a"); err != nil {
		t.Fatal(err)
	}
	if err := fs.Remove(KeyDefaultKeyServer); err != nil {
		t.Fatal(err)
	}
	if err := fs.Remove("never/set"); err != nil {
		t.Errorf("Remove of a missing key error = %v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := reopened.Get(KeyDefaultKeyServer); ok {
		t.Error("removed key should not survive reopen")
	}
}

func TestFileStore_MissingAndEmptyFile(t *testing.T) {
	dir := t.TempDir()

	fs, err := OpenFile(filepath.Join(dir, "absent.yaml"))
	if err != nil {
		t.Fatalf("OpenFile(missing) error = %v", err)
	}
	if len(fs.Keys()) != 0 {
		t.Error("missing file should yield an empty store")
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFile(empty); err != nil {
		t.Errorf("OpenFile(empty) error = %v", err)
	}
}

func TestFileStore_RejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := strings.Join([]string{
		"settings:",
		"  general/rememberPassword: true",
		"theme: dark",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := OpenFile(path)
	if !errors.Is(err, common.ErrSettingsLoad) {
		t.Errorf("OpenFile() error = %v, want ErrSettingsLoad", err)
	}
}
