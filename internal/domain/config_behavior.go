package domain

import (
	"fmt"
	"time"
)

// PollInterval returns the configured poll delay as a duration.
func (t ThrottleSettings) PollInterval() time.Duration {
	if t.PollIntervalSeconds <= 0 {
		return DefaultLoadPollInterval
	}
	return time.Duration(t.PollIntervalSeconds) * time.Second
}

// MaxWait returns the configured wait ceiling as a duration.
func (t ThrottleSettings) MaxWait() time.Duration {
	if t.MaxWaitSeconds <= 0 {
		return DefaultLoadMaxWait
	}
	return time.Duration(t.MaxWaitSeconds) * time.Second
}

// Validate ensures the configuration is internally consistent.
func (c Config) Validate() error {
	if c.Throttle.MaxLoadPercent <= 0 || c.Throttle.MaxLoadPercent > 100 {
		return fmt.Errorf("throttle.max_load_percent must be in (0, 100], got %v", c.Throttle.MaxLoadPercent)
	}
	if c.Throttle.PollIntervalSeconds < 0 {
		return fmt.Errorf("throttle.poll_interval_seconds must not be negative")
	}
	if c.Throttle.MaxWaitSeconds < 0 {
		return fmt.Errorf("throttle.max_wait_seconds must not be negative")
	}
	if c.Throttle.MaxWait() < c.Throttle.PollInterval() {
		return fmt.Errorf("throttle.max_wait_seconds must be at least the poll interval")
	}
	if c.History.Root == "" {
		return fmt.Errorf("history.root must not be empty")
	}
	return nil
}
