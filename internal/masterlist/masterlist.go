// Package masterlist loads the master reference lists used as fuzzy match
// targets: known dealer names and known tractor model names.
package masterlist

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Store holds both reference lists. It is loaded once at startup and is
// read-only for the process lifetime, so it may be shared freely across
// worker goroutines without locking.
type Store struct {
	dealers []string
	models  []string
}

// New loads the dealer and model master lists. A missing file is tolerated
// (the corresponding list is empty and a warning is logged); any other read
// failure is an error.
func New(dealerPath, modelPath string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	dealers, err := loadList(dealerPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load dealer master: %w", err)
	}
	models, err := loadList(modelPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load asset master: %w", err)
	}

	log.Info("master lists loaded", "dealers", len(dealers), "models", len(models))
	return &Store{dealers: dealers, models: models}, nil
}

// FromLists builds a Store directly from in-memory lists. Used by tests and
// by callers that source reference data elsewhere.
func FromLists(dealers, models []string) *Store {
	return &Store{
		dealers: dedupe(dealers),
		models:  dedupe(models),
	}
}

// Dealers returns the dealer reference list in load order.
// Callers must not mutate the returned slice.
func (s *Store) Dealers() []string { return s.dealers }

// Models returns the model reference list in load order.
// Callers must not mutate the returned slice.
func (s *Store) Models() []string { return s.models }

// loadList reads a newline-delimited reference list. Blank lines are
// ignored and exact duplicates are dropped, preserving first-seen order.
func loadList(path string, log *slog.Logger) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("master list not found", "path", path)
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []string
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func dedupe(in []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, e := range in {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
