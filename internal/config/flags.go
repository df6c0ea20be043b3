package config

import "flag"

// parseFlags binds the global flags to the config and parses args.
// Flags override every other source. Parsing stops at the first
// non-flag argument, so the subcommand and its own flags are left in
// fs.Args().
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskdeck", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.DataFile, "file", cfg.DataFile, "Path to the task file")
	fs.StringVar(&cfg.DataFormat, "format", cfg.DataFormat, "Task file encoding: json or yaml (default: by extension)")
	fs.IntVar(&cfg.DefaultPriority, "default-priority", cfg.DefaultPriority, "Priority for tasks added without -priority")
	fs.StringVar(&cfg.Color, "color", cfg.Color, "Colorize output: auto, always, or never")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error, fatal)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	return fs.Parse(args)
}
