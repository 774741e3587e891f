package config

// Environment variable names.
const (
	EnvBaseDir = "JOBSIFT_BASE_DIR"
)

// DefaultConfig returns a configuration covering the standard layout of
// retrieved job logs. The trailing wildcards pick up compressed variants
// (stderr.gz and friends).
func DefaultConfig() *Config {
	return &Config{
		Logs: LogsConfig{
			TaskStderr: []string{"task-attempts/*/stderr*"},
			TaskSyslog: []string{"task-attempts/*/syslog*"},
			StepSyslog: []string{"steps/*/syslog*"},
		},
	}
}
