package assets

import (
	_ "embed"
)

// DefaultBlocklistYAML contains the embedded default block rules.
//
//go:embed defaults/blocklist.yaml
var DefaultBlocklistYAML []byte
