package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/opencode-tools/ocguard/internal/domain"
	"github.com/opencode-tools/ocguard/internal/ports"
)

// FileIndex appends command records to a jsonl file. It backs the SQLite
// index when the database cannot be opened.
type FileIndex struct {
	path string
	mu   sync.Mutex
}

// NewFileIndex creates a jsonl index at path.
func NewFileIndex(path string) *FileIndex {
	return &FileIndex{path: path}
}

// Save implements ports.CommandIndex.
func (f *FileIndex) Save(record domain.CommandRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.LogFilePermissions)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// Records loads index entries (best-effort), newest last.
func (f *FileIndex) Records(limit int, search string) ([]domain.CommandRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var records []domain.CommandRecord
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		var rec domain.CommandRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		if search != "" && !strings.Contains(rec.Command, search) && !strings.Contains(rec.SessionID, search) {
			continue
		}
		records = append(records, rec)
		if limit > 0 && len(records) >= limit {
			break
		}
	}
	return records, nil
}

// Clear removes the index file.
func (f *FileIndex) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ExportJSON copies the jsonl index to dest.
func (f *FileIndex) ExportJSON(dest string) error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, domain.LogFilePermissions)
}

// Path returns the backing file path.
func (f *FileIndex) Path() string {
	return f.path
}

var _ ports.CommandIndex = (*FileIndex)(nil)
