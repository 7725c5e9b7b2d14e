package masterlist

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeList(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestNew(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	t.Run("loads_both_lists", func(t *testing.T) {
		dir := t.TempDir()
		dealerPath := writeList(t, dir, "dealers.txt", "ABC Motors Pvt. Ltd.\nXYZ Tractors\n")
		modelPath := writeList(t, dir, "models.txt", "Mahindra 475 DI\nJohn Deere 5045D\n")

		store, err := New(dealerPath, modelPath, log)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if got := store.Dealers(); len(got) != 2 {
			t.Errorf("Dealers() = %v, want 2 entries", got)
		}
		if got := store.Models(); len(got) != 2 {
			t.Errorf("Models() = %v, want 2 entries", got)
		}
	})

	t.Run("missing_file_tolerated", func(t *testing.T) {
		dir := t.TempDir()
		modelPath := writeList(t, dir, "models.txt", "Mahindra 475 DI\n")

		store, err := New(filepath.Join(dir, "does-not-exist.txt"), modelPath, log)
		if err != nil {
			t.Fatalf("New() error = %v, want missing file tolerated", err)
		}
		if got := store.Dealers(); len(got) != 0 {
			t.Errorf("Dealers() = %v, want empty", got)
		}
		if got := store.Models(); len(got) != 1 {
			t.Errorf("Models() = %v, want 1 entry", got)
		}
	})

	t.Run("skips_blanks_and_duplicates", func(t *testing.T) {
		dir := t.TempDir()
		dealerPath := writeList(t, dir, "dealers.txt",
			"ABC Motors\n\n   \nXYZ Tractors\nABC Motors\n")
		modelPath := writeList(t, dir, "models.txt", "")

		store, err := New(dealerPath, modelPath, log)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		want := []string{"ABC Motors", "XYZ Tractors"}
		if got := store.Dealers(); !reflect.DeepEqual(got, want) {
			t.Errorf("Dealers() = %v, want %v", got, want)
		}
	})

	t.Run("preserves_order", func(t *testing.T) {
		dir := t.TempDir()
		dealerPath := writeList(t, dir, "dealers.txt", "Zebra Motors\nAlpha Motors\nMid Motors\n")
		modelPath := writeList(t, dir, "models.txt", "")

		store, err := New(dealerPath, modelPath, log)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		want := []string{"Zebra Motors", "Alpha Motors", "Mid Motors"}
		if got := store.Dealers(); !reflect.DeepEqual(got, want) {
			t.Errorf("Dealers() = %v, want load order %v", got, want)
		}
	})
}

func TestFromLists(t *testing.T) {
	store := FromLists(
		[]string{"ABC Motors", " ", "ABC Motors", "XYZ Tractors"},
		[]string{"Mahindra 475 DI"},
	)

	wantDealers := []string{"ABC Motors", "XYZ Tractors"}
	if got := store.Dealers(); !reflect.DeepEqual(got, wantDealers) {
		t.Errorf("Dealers() = %v, want %v", got, wantDealers)
	}
	if got := store.Models(); len(got) != 1 || got[0] != "Mahindra 475 DI" {
		t.Errorf("Models() = %v", got)
	}
}
