package summary

import "fmt"

// ConfigError reports invalid or missing configuration. It is detected
// before any file I/O happens.
type ConfigError struct {
	Flag   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Flag, e.Reason)
}

// StatsError reports a failure to open, scan, or aggregate the input.
// Column is empty when the failure is not tied to a single column.
type StatsError struct {
	Path   string
	Column string
	Err    error
}

func (e *StatsError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("failed to summarize column %q of %s: %v", e.Column, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to summarize %s: %v", e.Path, e.Err)
}

func (e *StatsError) Unwrap() error {
	return e.Err
}

// IOError reports a failure writing the report to its destination.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to write summary to %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
