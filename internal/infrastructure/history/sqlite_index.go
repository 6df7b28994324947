package history

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/opencode-tools/ocguard/internal/domain"
	"github.com/opencode-tools/ocguard/internal/pkg/filesystem"
	"github.com/opencode-tools/ocguard/internal/ports"
)

// SQLiteIndex persists admitted commands in a SQLite database for searching
// across sessions. When the database cannot be opened it degrades to a jsonl
// file index next to the intended path.
type SQLiteIndex struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteIndex creates (or opens) the index database at path; an empty path
// selects the default ~/.ocguard/index.db.
func NewSQLiteIndex(path string) *SQLiteIndex {
	if path == "" {
		path = filepath.Join(filesystem.UserHomeDir(), ".ocguard", "index.db")
	}
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteIndex{path: path}
	}
	index := &SQLiteIndex{db: db, path: path}
	if err := index.init(); err != nil {
		return &SQLiteIndex{path: path}
	}
	return index
}

func (s *SQLiteIndex) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS commands (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		session_id TEXT,
		working_dir TEXT,
		command TEXT
	);`)
	return err
}

func (s *SQLiteIndex) fallback() *FileIndex {
	return NewFileIndex(s.path + ".jsonl")
}

// Save inserts a new record.
func (s *SQLiteIndex) Save(record domain.CommandRecord) error {
	if s.db == nil {
		return s.fallback().Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO commands (timestamp, session_id, working_dir, command) VALUES (?, ?, ?, ?)`,
		record.Timestamp.Format(time.RFC3339),
		record.SessionID,
		record.WorkingDir,
		record.Command,
	)
	return err
}

// Records returns index entries, newest first (limit/search optional).
func (s *SQLiteIndex) Records(limit int, search string) ([]domain.CommandRecord, error) {
	if s.db == nil {
		return s.fallback().Records(limit, search)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT timestamp, session_id, working_dir, command FROM commands")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE command LIKE ? OR session_id LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC, id DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.CommandRecord
	for rows.Next() {
		var rec domain.CommandRecord
		var ts string
		if err := rows.Scan(&ts, &rec.SessionID, &rec.WorkingDir, &rec.Command); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all index entries.
func (s *SQLiteIndex) Clear() error {
	if s.db == nil {
		return s.fallback().Clear()
	}
	_, err := s.db.Exec("DELETE FROM commands")
	return err
}

// ExportJSON writes the command table to a jsonl file.
func (s *SQLiteIndex) ExportJSON(dest string) error {
	records, err := s.Records(0, "")
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the sqlite database path.
func (s *SQLiteIndex) Path() string {
	return s.path
}

var _ ports.CommandIndex = (*SQLiteIndex)(nil)
