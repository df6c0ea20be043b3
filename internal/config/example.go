package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskdeck configuration file
# Values can be overridden by TASKDECK_* environment variables or CLI flags

# Task file (relative to the working directory; supports ~ expansion
# and %VAR% on Windows)
data_file = "tasks.json"

# Task file encoding: json or yaml
# Leave unset to infer it from the file extension.
# data_format = "json"

# Priority given to tasks added without -priority (1 = most urgent, 5 = least)
default_priority = 3

# Colorize command output: auto, always, or never
color = "auto"

# Logging goes to stderr
log_level = "warn"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
