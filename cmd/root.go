// Package cmd implements the CLI command structure for taskdeck.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/date"
	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/render"
	"github.com/taskdeck/taskdeck/internal/storage"
	"github.com/taskdeck/taskdeck/internal/task"
	"github.com/taskdeck/taskdeck/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskdeck CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskdeck", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.NewFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	render.SetMode(render.Mode(cfg.Color))

	// Determine the subcommand
	// If no args or first arg is a flag, use "list" as default
	subcommand := "list"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		// Check if it looks like a subcommand (doesn't start with -)
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "add":
		return addCommand(cfg, logger, remainingArgs)
	case "list", "ls":
		return listCommand(cfg, logger, remainingArgs)
	case "done", "complete":
		return doneCommand(cfg, logger, remainingArgs)
	case "delete", "rm":
		return deleteCommand(cfg, logger, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, logger, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// dataFormat resolves the configured task file encoding. Config
// validation has already constrained the value, so an empty result
// means "infer from the file extension".
func dataFormat(cfg *config.Config) storage.Format {
	if cfg.DataFormat == "" {
		return ""
	}
	format, err := storage.ParseFormat(cfg.DataFormat)
	if err != nil {
		return ""
	}
	return format
}

// loadStore reads the task file named by the config.
func loadStore(cfg *config.Config, logger *log.Logger) (*task.Store, error) {
	store, err := storage.Load(cfg.DataFile, dataFormat(cfg))
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded task file", "path", cfg.DataFile, "tasks", store.Len())
	return store, nil
}

// saveStore persists the store after a mutation.
func saveStore(cfg *config.Config, logger *log.Logger, store *task.Store) error {
	if err := storage.Save(store, cfg.DataFile, dataFormat(cfg)); err != nil {
		return err
	}
	logger.Debug("saved task file", "path", cfg.DataFile, "tasks", store.Len())
	return nil
}

// parseID reads the single positional task id a command expects.
func parseID(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one task id, got %d arguments", len(args))
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q: must be a positive integer", args[0])
	}
	return id, nil
}

// addCommand creates a task from the command line.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck add", flag.ContinueOnError)
	dueArg := fs.String("due", "", "Due date (YYYY-MM-DD)")
	priority := fs.Int("priority", 0, "Priority 1-5, 1 is most urgent (default from config)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: taskdeck add [-due YYYY-MM-DD] [-priority N] <description>")
	}
	description := strings.Join(fs.Args(), " ")

	// Validate the raw date before touching the store.
	var due *date.Date
	if *dueArg != "" {
		parsed, err := date.Parse(*dueArg)
		if err != nil {
			return err
		}
		due = &parsed
	}
	// Only an omitted -priority falls back to the config default; an
	// explicit 0 is out of range like any other bad value.
	p := *priority
	prioritySet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "priority" {
			prioritySet = true
		}
	})
	if !prioritySet {
		p = cfg.DefaultPriority
	} else if p == 0 {
		return &task.ValidationError{
			Field: "priority",
			Err:   fmt.Errorf("must be between %d and %d, got 0", task.MinPriority, task.MaxPriority),
		}
	}

	store, err := loadStore(cfg, logger)
	if err != nil {
		return err
	}
	created, err := store.Add(description, due, p)
	if err != nil {
		return fmt.Errorf("adding task: %w", err)
	}
	if err := saveStore(cfg, logger, store); err != nil {
		return err
	}

	logger.Info("added task", "id", created.ID, "priority", created.Priority)
	fmt.Println(render.Line(created))
	return nil
}

// listCommand renders tasks sorted by urgency.
func listCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck list", flag.ContinueOnError)
	statusFilter := fs.String("status", "", "Filter by status (todo|done)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) >= 1 && *statusFilter == "" {
		*statusFilter = remaining[0]
		remaining = remaining[1:]
	}
	if len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	var filter task.Status
	if *statusFilter != "" {
		parsed, err := task.ParseStatus(*statusFilter)
		if err != nil {
			return err
		}
		filter = parsed
	}

	store, err := loadStore(cfg, logger)
	if err != nil {
		return err
	}
	render.Table(os.Stdout, store.List(filter))
	return nil
}

// doneCommand marks a task complete.
func doneCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck done", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID(fs.Args())
	if err != nil {
		return err
	}

	store, err := loadStore(cfg, logger)
	if err != nil {
		return err
	}
	done, err := store.Complete(id)
	if err != nil {
		return fmt.Errorf("completing task: %w", err)
	}
	if err := saveStore(cfg, logger, store); err != nil {
		return err
	}

	logger.Info("completed task", "id", done.ID)
	fmt.Println(render.Line(done))
	return nil
}

// deleteCommand removes a task permanently. Its id is never reused.
func deleteCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck delete", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID(fs.Args())
	if err != nil {
		return err
	}

	store, err := loadStore(cfg, logger)
	if err != nil {
		return err
	}
	if err := store.Delete(id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if err := saveStore(cfg, logger, store); err != nil {
		return err
	}

	logger.Info("deleted task", "id", id)
	fmt.Printf("Deleted task %d.\n", id)
	return nil
}

// tuiCommand launches the interactive terminal UI.
func tuiCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	store, err := loadStore(cfg, logger)
	if err != nil {
		return err
	}
	return ui.RunTUI(ctx, store, ui.Options{
		Path:            cfg.DataFile,
		Format:          dataFormat(cfg),
		DefaultPriority: cfg.DefaultPriority,
	})
}

// doctorCommand checks config and task file health.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskdeck doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fmt.Println("Taskdeck Doctor")
	fmt.Println("===============")
	fmt.Println()

	allOK := true

	// Config files in effect
	fmt.Println("Config files:")
	found := config.FoundConfigFiles()
	if len(found) == 0 {
		fmt.Println("  ⚠️  None found (built-in defaults apply)")
	}
	for _, f := range found {
		fmt.Printf("  ✅ %s\n", f)
	}
	fmt.Println()

	// Effective settings (already validated by config.Load)
	fmt.Println("Settings:")
	fmt.Printf("  Task file: %s (%s)\n", cfg.DataFile, storage.DetectFormat(cfg.DataFile, dataFormat(cfg)))
	fmt.Printf("  Default priority: %d\n", cfg.DefaultPriority)
	fmt.Printf("  Color: %s\n", cfg.Color)
	fmt.Printf("  Log level: %s\n", cfg.LogLevel)
	fmt.Println()

	// Check task file
	fmt.Printf("Task file: %s\n", cfg.DataFile)
	info, err := os.Stat(cfg.DataFile)
	switch {
	case os.IsNotExist(err):
		fmt.Println("  ⚠️  Not found (will be created on first save)")
	case err != nil:
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Println("  ✅ OK")
		store, loadErr := storage.Load(cfg.DataFile, dataFormat(cfg))
		if loadErr != nil {
			var cErr *storage.CorruptStateError
			if errors.As(loadErr, &cErr) {
				fmt.Printf("  ❌ Corrupt: %v\n", cErr.Err)
			} else {
				fmt.Printf("  ❌ Load error: %v\n", loadErr)
			}
			allOK = false
		} else {
			todo, done := store.Counts()
			fmt.Printf("  ✅ Valid (%d tasks: %d todo, %d done)\n", store.Len(), todo, done)
			if *verbose {
				for _, t := range store.Tasks() {
					fmt.Printf("    - [%s] %d: %s\n", t.Status, t.ID, t.Description)
				}
			}
		}
	}
	fmt.Println()

	// Check the data directory is writable, since every mutation saves
	dir := filepath.Dir(cfg.DataFile)
	fmt.Printf("Data directory: %s\n", dir)
	if err := checkWritable(dir); err != nil {
		fmt.Printf("  ❌ Not writable: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ Writable")
	}
	fmt.Println()

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Taskdeck may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkWritable creates and removes a throwaway temp file in dir.
func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".taskdeck-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}

// initCommand creates an empty task file, and with -config an example
// taskdeck.toml. Existing files are reported and left alone.
func initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskdeck init", flag.ContinueOnError)
	withConfig := fs.Bool("config", false, "Also write an example taskdeck.toml")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if _, err := os.Stat(cfg.DataFile); err == nil {
		fmt.Printf("Task file already exists: %s\n", cfg.DataFile)
	} else if os.IsNotExist(err) {
		if err := storage.Save(task.NewStore(), cfg.DataFile, dataFormat(cfg)); err != nil {
			return fmt.Errorf("creating task file: %w", err)
		}
		fmt.Printf("Created task file: %s\n", cfg.DataFile)
	} else {
		return fmt.Errorf("checking task file: %w", err)
	}

	if *withConfig {
		configPath := filepath.Join(cfg.WorkDir, "taskdeck.toml")
		if _, err := os.Stat(configPath); err == nil {
			fmt.Printf("Config file already exists: %s\n", configPath)
		} else if os.IsNotExist(err) {
			if err := os.WriteFile(configPath, []byte(config.ExampleConfig()), 0644); err != nil {
				return fmt.Errorf("creating config file: %w", err)
			}
			fmt.Printf("Created config file: %s\n", configPath)
		} else {
			return fmt.Errorf("checking config file: %w", err)
		}
	}

	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("taskdeck version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskdeck - A personal task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskdeck [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <description>  Add a task")
	fmt.Fprintln(w, "  list [status]      List tasks, most urgent first (default command; alias: ls)")
	fmt.Fprintln(w, "  done <id>          Mark a task complete (alias: complete)")
	fmt.Fprintln(w, "  delete <id>        Delete a task (alias: rm)")
	fmt.Fprintln(w, "  tui                Launch the interactive terminal UI")
	fmt.Fprintln(w, "  doctor             Check config and task file health")
	fmt.Fprintln(w, "  init               Create an empty task file")
	fmt.Fprintln(w, "  version            Show version information")
	fmt.Fprintln(w, "  help               Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options (use with 'add' command):")
	fmt.Fprintln(w, "  -due string")
	fmt.Fprintln(w, "        Due date in YYYY-MM-DD form")
	fmt.Fprintln(w, "  -priority int")
	fmt.Fprintln(w, "        Priority 1-5, 1 is most urgent (default from config)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options (use with 'list' command):")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Filter by status (todo|done)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Init Options (use with 'init' command):")
	fmt.Fprintln(w, "  -config")
	fmt.Fprintln(w, "        Also write an example taskdeck.toml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options (use with 'doctor' command):")
	fmt.Fprintln(w, "  -v    Verbose output")
}
