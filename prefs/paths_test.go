package prefs

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/yllada/gpg-manager/settings"
)

func TestRelativePath(t *testing.T) {
	tests := []struct {
		base, target, want string
	}{
		{"/app", "/app", "."},
		{"/app", "/app/keydb", "keydb"},
		{"/app/keydb", "/app/other", filepath.Join("..", "other")},
		{"/app/keydb", "/app/keydb/sub/dir", filepath.Join("sub", "dir")},
		{"/app", "relative", "relative"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			if got := RelativePath(tt.base, tt.target); got != tt.want {
				t.Errorf("RelativePath(%q, %q) = %q, want %q", tt.base, tt.target, got, tt.want)
			}
		})
	}
}

func TestPathField_LoadEmptyIsSentinel(t *testing.T) {
	s := settings.NewMemoryStore(map[string]settings.Value{
		settings.KeyKeyDBPath: settings.StringValue(""),
	})
	p := NewPathField(settings.KeyKeyDBPath, "/app/keydb")
	p.Load(s)

	if p.Value != DefaultKeyDBPath {
		t.Errorf("Value = %q, want %q", p.Value, DefaultKeyDBPath)
	}
	if p.Abs() != "/app/keydb" {
		t.Errorf("Abs() = %q, want /app/keydb", p.Abs())
	}
}

func TestPathField_ResetToDefault(t *testing.T) {
	p := NewPathField(settings.KeyKeyDBPath, "/app/keydb")
	p.Value = "elsewhere"

	if got := p.ResetToDefault(); got != "." {
		t.Errorf("ResetToDefault() = %q, want .", got)
	}
}

type stubPicker struct {
	dir   string
	ok    bool
	err   error
	start string
}

func (p *stubPicker) PickDirectory(title, start string) (string, bool, error) {
	p.start = start
	return p.dir, p.ok, p.err
}

func TestPathField_Choose(t *testing.T) {
	base := "/app/keydb"

	t.Run("picked", func(t *testing.T) {
		p := NewPathField(settings.KeyKeyDBPath, base)
		picker := &stubPicker{dir: "/app/keydb/work", ok: true}

		changed, err := p.Choose(picker, "Key database")
		if err != nil || !changed {
			t.Fatalf("Choose() = %v, %v", changed, err)
		}
		if p.Value != "work" {
			t.Errorf("Value = %q, want work", p.Value)
		}
		if picker.start != base {
			t.Errorf("picker started at %q, want %q", picker.start, base)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		p := NewPathField(settings.KeyKeyDBPath, base)
		p.Value = "work"

		changed, err := p.Choose(&stubPicker{}, "Key database")
		if err != nil || changed {
			t.Fatalf("Choose() = %v, %v", changed, err)
		}
		if p.Value != "work" {
			t.Errorf("Value = %q, want work unchanged", p.Value)
		}
	})

	t.Run("error", func(t *testing.T) {
		p := NewPathField(settings.KeyKeyDBPath, base)
		wantErr := errors.New("no display")

		if _, err := p.Choose(&stubPicker{err: wantErr}, "Key database"); !errors.Is(err, wantErr) {
			t.Errorf("Choose() error = %v, want %v", err, wantErr)
		}
		if p.Value != DefaultKeyDBPath {
			t.Errorf("Value = %q, want unchanged", p.Value)
		}
	})
}
