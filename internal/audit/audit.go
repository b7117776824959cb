// Package audit keeps a JSON record of every completed database rebuild.
package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by LoadJSON for an unknown record.
var ErrNotFound = errors.New("audit record not found")

// Record is one archived file.
type Record struct {
	ID      string
	SavedAt time.Time
}

// Auditor writes one <id>.json file per record into Dir and keeps at most Keep of them.
type Auditor struct {
	Dir  string
	Keep int // 0 keeps everything
}

func NewAuditor(dir string, keep int) *Auditor {
	return &Auditor{Dir: dir, Keep: keep}
}

// SaveJSON saves data as <id>.json. An empty id gets a UUID4. Returns the file name.
func (a *Auditor) SaveJSON(id string, data any) (string, error) {
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audit directory: %w", err)
	}

	if id == "" {
		id = uuid.NewString()
	}
	filename := filepath.Base(id) + ".json"

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}
	if err := os.WriteFile(filepath.Join(a.Dir, filename), payload, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	if err := a.prune(); err != nil {
		return filename, err
	}
	return filename, nil
}

// List returns the archived records, newest first. A missing directory is an empty archive.
func (a *Auditor) List() ([]Record, error) {
	entries, err := os.ReadDir(a.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read audit directory: %w", err)
	}

	var records []Record
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		records = append(records, Record{
			ID:      strings.TrimSuffix(name, ".json"),
			SavedAt: info.ModTime(),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].SavedAt.Equal(records[j].SavedAt) {
			return records[i].ID > records[j].ID
		}
		return records[i].SavedAt.After(records[j].SavedAt)
	})
	return records, nil
}

// LoadJSON decodes the record saved under id into v.
func (a *Auditor) LoadJSON(id string, v any) error {
	payload, err := os.ReadFile(filepath.Join(a.Dir, filepath.Base(id)+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to read audit file: %w", err)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("failed to decode audit file %s: %w", id, err)
	}
	return nil
}

func (a *Auditor) prune() error {
	if a.Keep <= 0 {
		return nil
	}
	records, err := a.List()
	if err != nil {
		return err
	}
	for _, r := range records[min(a.Keep, len(records)):] {
		if err := os.Remove(filepath.Join(a.Dir, r.ID+".json")); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to prune audit file: %w", err)
		}
	}
	return nil
}
