package blocklist

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/opencode-tools/ocguard/internal/domain"
	"github.com/opencode-tools/ocguard/internal/ports"
)

// Watcher reloads the rules file when it changes on disk, so a long-lived
// host process picks up policy edits without a restart.
type Watcher struct {
	service *Service
	logger  ports.Logger
	fw      *fsnotify.Watcher
}

// NewWatcher watches the directory holding the service's rules file. The
// directory is watched rather than the file so editor save-via-rename still
// produces events.
func NewWatcher(service *Service, logger ports.Logger) (*Watcher, error) {
	dir := filepath.Dir(service.Path())
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{service: service, logger: logger, fw: fw}, nil
}

// Run processes filesystem events until ctx ends. Reload failures keep the
// previous rules active.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fw.Close()
	target := filepath.Clean(w.service.Path())
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := w.service.Reload(); err != nil {
				w.logger.Warn("blocklist reload failed", map[string]interface{}{
					"path":  target,
					"error": err.Error(),
				})
				continue
			}
			w.logger.Info("blocklist rules reloaded", map[string]interface{}{
				"path":  target,
				"rules": len(w.service.Rules()),
			})
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("blocklist watch error", map[string]interface{}{"error": err.Error()})
		}
	}
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}
