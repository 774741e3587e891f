// Package config provides configuration loading and validation for jobsift.
package config

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// BaseDir is the directory the retrieved job logs were unpacked into.
	// Relative log globs are rooted here.
	BaseDir string `yaml:"base_dir,omitempty"`

	Logs LogsConfig `yaml:"logs"`
}

// LogsConfig maps each log kind to the glob patterns that locate its files.
// Compressed files (.gz, .zst) match the same globs and are handled
// transparently.
type LogsConfig struct {
	// TaskStderr locates task attempt stderr: Python tracebacks and
	// reporter directives live here.
	TaskStderr []string `yaml:"task_stderr"`

	// TaskSyslog locates task attempt syslog: Java stack traces and the
	// mapper input URI live here.
	TaskSyslog []string `yaml:"task_syslog"`

	// StepSyslog locates step syslog: streaming driver errors live here.
	StepSyslog []string `yaml:"step_syslog"`
}
