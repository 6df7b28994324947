package domain

import "time"

// CommandRecord captures one admitted command for the searchable index.
type CommandRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	SessionID  string    `json:"session_id"`
	WorkingDir string    `json:"working_dir,omitempty"`
	Command    string    `json:"command"`
}
