package history

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/opencode-tools/ocguard/internal/domain"
	"github.com/opencode-tools/ocguard/internal/pkg/filesystem"
	"github.com/opencode-tools/ocguard/internal/ports"
)

// SessionLogStore appends plain-text per-session logs under a fixed root
// directory, one file per session. Logs only ever grow; the store never
// rotates, truncates or deletes them.
type SessionLogStore struct {
	root string
	mu   sync.Mutex
}

// NewSessionLogStore creates a store rooted at dir; an empty dir selects the
// default ~/.tmp/history.
func NewSessionLogStore(dir string) *SessionLogStore {
	if dir == "" {
		dir = filepath.Join(filesystem.UserHomeDir(), ".tmp", "history")
	}
	return &SessionLogStore{root: dir}
}

// AppendCommand implements ports.SessionLogStore.
func (s *SessionLogStore) AppendCommand(sessionID, workingDir, command string, at time.Time) error {
	return s.append(sessionID, domain.FormatCommandEntry(at, workingDir, command))
}

// AppendOutput implements ports.SessionLogStore.
func (s *SessionLogStore) AppendOutput(sessionID, output string) error {
	return s.append(sessionID, domain.FormatOutputEntry(output))
}

func (s *SessionLogStore) append(sessionID, entry string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.root, domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(s.Path(sessionID), os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.LogFilePermissions)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = file.WriteString(entry)
	return err
}

// Path returns the log file backing the given session.
func (s *SessionLogStore) Path(sessionID string) string {
	return filepath.Join(s.root, domain.SanitizeSessionID(sessionID)+".log")
}

// Sessions lists the (sanitized) session ids that have logs.
func (s *SessionLogStore) Sessions() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".log") {
			ids = append(ids, strings.TrimSuffix(name, ".log"))
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Read returns the raw contents of a session log.
func (s *SessionLogStore) Read(sessionID string) ([]byte, error) {
	return os.ReadFile(s.Path(sessionID))
}

var _ ports.SessionLogStore = (*SessionLogStore)(nil)
