package blocklist

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/opencode-tools/ocguard/internal/domain"
	"github.com/opencode-tools/ocguard/internal/pkg/logger"
)

func TestDefaultRulesBlockGoTest(t *testing.T) {
	service, err := NewService(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	rule, blocked := service.Match("go test ./...")
	if !blocked {
		t.Fatalf("expected 'go test ./...' to be blocked")
	}
	if rule.Pattern != "go test" {
		t.Fatalf("matched pattern = %q, want 'go test'", rule.Pattern)
	}
	if rule.Message != "Use 'make test' instead." {
		t.Fatalf("message = %q", rule.Message)
	}
}

func TestSafeCommandPasses(t *testing.T) {
	service, err := NewService(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	for _, command := range []string{"npm run build", "ls -la", "make test", ""} {
		if rule, blocked := service.Match(command); blocked {
			t.Errorf("Match(%q) unexpectedly blocked by %q", command, rule.Pattern)
		}
	}
}

func TestRulesFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocklist.yaml")
	raw := "rules:\n  blocked:\n    - pattern: \"git push --force\"\n      message: \"Force pushes are disabled here.\"\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	service, err := NewService(path)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	want := []domain.BlockRule{{Pattern: "git push --force", Message: "Force pushes are disabled here."}}
	if diff := cmp.Diff(want, service.Rules()); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
	if _, blocked := service.Match("go test ./..."); blocked {
		t.Fatalf("defaults should not apply when a rules file is present")
	}
}

func TestEmptyRulesFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocklist.yaml")
	if err := os.WriteFile(path, []byte("rules:\n  blocked: []\n"), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	service, err := NewService(path)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	if _, blocked := service.Match("go build ./..."); !blocked {
		t.Fatalf("expected embedded defaults to apply for an empty rules file")
	}
}

func TestBrokenRulesFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocklist.yaml")
	if err := os.WriteFile(path, []byte("rules: [broken"), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	if _, err := NewService(path); err == nil {
		t.Fatalf("expected error for unparseable rules file")
	}
}

func TestReloadKeepsOldRulesOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocklist.yaml")
	raw := "rules:\n  blocked:\n    - pattern: \"sudo rm\"\n      message: \"No.\"\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	service, err := NewService(path)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	if err := os.WriteFile(path, []byte("rules: [broken"), 0o644); err != nil {
		t.Fatalf("rewrite rules: %v", err)
	}
	if err := service.Reload(); err == nil {
		t.Fatalf("expected reload error")
	}
	if _, blocked := service.Match("sudo rm -rf tmp"); !blocked {
		t.Fatalf("previous rules must stay active after a failed reload")
	}
}

func TestWatcherPicksUpRuleChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blocklist.yaml")
	raw := "rules:\n  blocked:\n    - pattern: \"go test\"\n      message: \"Use 'make test' instead.\"\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	service, err := NewService(path)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	watcher, err := NewWatcher(service, logger.Nop{})
	if err != nil {
		t.Fatalf("NewWatcher error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	updated := "rules:\n  blocked:\n    - pattern: \"terraform apply\"\n      message: \"Apply through CI.\"\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite rules: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, blocked := service.Match("terraform apply -auto-approve"); blocked {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("watcher did not reload rules in time")
}
