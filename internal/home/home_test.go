package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("explicit_path", func(t *testing.T) {
		d, err := New("/tmp/custom-home")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if d.Path() != "/tmp/custom-home" {
			t.Errorf("Path() = %q", d.Path())
		}
	})

	t.Run("default_under_user_home", func(t *testing.T) {
		d, err := New("")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if filepath.Base(d.Path()) != DefaultDirName {
			t.Errorf("Path() = %q, want base %q", d.Path(), DefaultDirName)
		}
	})
}

func TestPaths(t *testing.T) {
	d, _ := New("/data/invofuse")

	if got := d.MastersPath(); got != "/data/invofuse/masters" {
		t.Errorf("MastersPath() = %q", got)
	}
	if got := d.ResultsPath(); got != "/data/invofuse/results" {
		t.Errorf("ResultsPath() = %q", got)
	}
	if got := d.ConfigPath(); got != "/data/invofuse/config.yaml" {
		t.Errorf("ConfigPath() = %q", got)
	}
}

func TestResolve(t *testing.T) {
	d, _ := New("/data/invofuse")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"relative", "masters/dealer_master.txt", "/data/invofuse/masters/dealer_master.txt"},
		{"absolute_unchanged", "/etc/lists/dealers.txt", "/etc/lists/dealers.txt"},
		{"empty_unchanged", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Resolve(tt.in); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnsureExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "home")
	d, _ := New(root)

	if d.Exists() {
		t.Fatal("Exists() = true before creation")
	}
	if err := d.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}
	for _, dir := range []string{d.MastersPath(), d.ResultsPath()} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("expected directory at %s", dir)
		}
	}
	if !d.Exists() {
		t.Error("Exists() = false after creation")
	}

	// Idempotent.
	if err := d.EnsureExists(); err != nil {
		t.Errorf("EnsureExists() second call error = %v", err)
	}
}

func TestConfigExists(t *testing.T) {
	d, _ := New(t.TempDir())

	if d.ConfigExists() {
		t.Fatal("ConfigExists() = true with no file")
	}
	if err := os.WriteFile(d.ConfigPath(), []byte("masters: {}\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if !d.ConfigExists() {
		t.Error("ConfigExists() = false after writing file")
	}
}
