package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/yllada/gpg-manager/common"
	"github.com/yllada/gpg-manager/settings"
)

func newTestCLI(initial map[string]settings.Value) (*CLI, *settings.MemoryStore, *bytes.Buffer) {
	store := settings.NewMemoryStore(initial)
	var out bytes.Buffer
	return New(store, "/app", &out), store, &out
}

func TestListSettings(t *testing.T) {
	c, _, out := newTestCLI(map[string]settings.Value{
		settings.KeySteganography: settings.BoolValue(true),
	})

	if err := c.ListSettings(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != len(settings.KnownKeys())+2 {
		t.Errorf("ListSettings() printed %d lines, want %d", len(lines), len(settings.KnownKeys())+2)
	}
	if !strings.Contains(out.String(), "advanced/steganography") || !strings.Contains(out.String(), "true") {
		t.Errorf("output missing stored value:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "(unset)") {
		t.Error("missing keys should be shown as (unset)")
	}
}

func TestGet(t *testing.T) {
	c, _, out := newTestCLI(map[string]settings.Value{
		settings.KeyKeyServerList: settings.StringListValue([]string{"a", "b"}),
	})

	if err := c.Get(settings.KeyKeyServerList); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != "a,b" {
		t.Errorf("Get() printed %q, want a,b", got)
	}

	if err := c.Get("no/such"); !errors.Is(err, common.ErrUnknownKey) {
		t.Errorf("Get() error = %v, want ErrUnknownKey", err)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name       string
		assignment string
		key        string
		want       settings.Value
	}{
		{"bool", "mime/parseQP=false", settings.KeyParseQP, settings.BoolValue(false)},
		{"string", "int/lang=de", settings.KeyLanguage, settings.StringValue("de")},
		{"list", "keyserver/keyServerList=hkp://a,hkp://b", settings.KeyKeyServerList, settings.StringListValue([]string{"hkp://a", "hkp://b"})},
		{"size", "toolbar/iconsize=12x12", settings.KeyIconSize, settings.SizeValue(12, 12)},
		{"int", "toolbar/iconstyle=1", settings.KeyIconStyle, settings.IntValue(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, store, _ := newTestCLI(nil)
			if err := c.Set(tt.assignment); err != nil {
				t.Fatalf("Set(%q) error = %v", tt.assignment, err)
			}
			got, ok := store.Get(tt.key)
			if !ok || !got.Equal(tt.want) {
				t.Errorf("%s = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestSet_Errors(t *testing.T) {
	tests := []struct {
		assignment string
		want       error
	}{
		{"no-equals", common.ErrInvalidValue},
		{"no/such=1", common.ErrUnknownKey},
		{"mime/parseQP=maybe", common.ErrInvalidValue},
		{"toolbar/iconsize=big", common.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.assignment, func(t *testing.T) {
			c, store, _ := newTestCLI(nil)
			if err := c.Set(tt.assignment); !errors.Is(err, tt.want) {
				t.Errorf("Set(%q) error = %v, want %v", tt.assignment, err, tt.want)
			}
			if keys := store.Keys(); len(keys) != 0 {
				t.Errorf("store keys = %v, want none", keys)
			}
		})
	}
}

func TestResetKeyDB(t *testing.T) {
	c, store, out := newTestCLI(map[string]settings.Value{
		settings.KeyKeyDBPath:        settings.StringValue("elsewhere"),
		settings.KeyKeyServerList:    settings.StringListValue([]string{"hkp://a"}),
		settings.KeyDefaultKeyServer: settings.StringValue("hkp://gone"),
	})
	before := settings.Dump(store)

	if err := c.ResetKeyDB(); err != nil {
		t.Fatal(err)
	}
	if got := settings.GetString(store, settings.KeyKeyDBPath, ""); got != "." {
		t.Errorf("keydbpath = %q, want .", got)
	}
	if !strings.Contains(out.String(), "Restart") {
		t.Errorf("output should mention the restart:\n%s", out.String())
	}

	after := settings.Dump(store)
	if len(after) != len(before) {
		t.Errorf("store has keys %v after reset, want only %v", store.Keys(), len(before))
	}
	for key, v := range before {
		if key == settings.KeyKeyDBPath {
			continue
		}
		if got, ok := after[key]; !ok || !got.Equal(v) {
			t.Errorf("%s = %v (present %v) after reset, want %v", key, got, ok, v)
		}
	}
}

func TestResetKeyDB_AlreadyDefault(t *testing.T) {
	c, store, out := newTestCLI(nil)

	if err := c.ResetKeyDB(); err != nil {
		t.Fatal(err)
	}
	if keys := store.Keys(); len(keys) != 1 || keys[0] != settings.KeyKeyDBPath {
		t.Errorf("store keys = %v, want only %s", keys, settings.KeyKeyDBPath)
	}
	if strings.Contains(out.String(), "Restart") {
		t.Errorf("no restart is needed when the path was already the default:\n%s", out.String())
	}
}

func TestPrintHelp(t *testing.T) {
	var out bytes.Buffer
	PrintHelp(&out)

	for _, flag := range []string{"--list", "--get", "--set", "--reset-keydb", "--tui"} {
		if !strings.Contains(out.String(), flag) {
			t.Errorf("help is missing %s", flag)
		}
	}
}
