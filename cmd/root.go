// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/service"
	"github.com/nibzard/todo-go/internal/storage"
	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// app carries what every subcommand needs.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	store  *storage.Store
	svc    *service.Service
}

// Run executes the todo CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
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
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.FromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}
	store := storage.New(cfg.TasksFile, storage.WithLogger(logger))
	a := &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		svc:    service.New(store, service.WithLogger(logger)),
	}

	remainingArgs := fs.Args()
	if len(remainingArgs) == 0 {
		printUsage(fs, stdout)
		return nil
	}
	subcommand, remainingArgs := remainingArgs[0], remainingArgs[1:]

	err = a.dispatch(ctx, fs, subcommand, remainingArgs)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if storage.IsFatal(err) {
		logger.Error("storage failure", "path", cfg.TasksFile, "err", err)
	}
	return err
}

func (a *app) dispatch(ctx context.Context, fs *flag.FlagSet, subcommand string, args []string) error {
	switch subcommand {
	case "add":
		return a.addCommand(args)
	case "list", "ls":
		return a.listCommand(args)
	case "show":
		return a.showCommand(args)
	case "complete", "done":
		return a.completeCommand(args)
	case "update":
		return a.updateCommand(args)
	case "delete", "rm":
		return a.deleteCommand(args)
	case "doctor":
		return a.doctorCommand(args)
	case "tui":
		return a.tuiCommand(ctx, args)
	case "config":
		return a.configCommand(args)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// addCommand creates a task.
func (a *app) addCommand(args []string) error {
	fs := newFlagSet("todo add")
	description := fs.String("description", "", "Task description")
	fs.StringVar(description, "d", "", "Task description")
	priority := fs.String("priority", a.cfg.DefaultPriority, "Task priority (low|medium|high)")
	fs.StringVar(priority, "p", a.cfg.DefaultPriority, "Task priority (low|medium|high)")
	dueDate := fs.String("due-date", "", "Due date (YYYY-MM-DD)")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return errors.New("usage: todo add <title> [-d description] [-p priority] [-due-date YYYY-MM-DD]")
	}

	task, err := a.svc.Add(todo.NewTask{
		Title:       positional[0],
		Description: optional(*description),
		Priority:    todo.Priority(*priority),
		DueDate:     optional(*dueDate),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Task added successfully!")
	fmt.Fprintf(stdout, "ID: %d\n", task.ID)
	fmt.Fprintf(stdout, "Title: %s\n", task.Title)
	fmt.Fprintf(stdout, "Status: %s\n", task.Status)
	return nil
}

// listCommand prints tasks as a table.
func (a *app) listCommand(args []string) error {
	fs := newFlagSet("todo list")
	status := fs.String("status", string(service.StatusAll), "Filter by status (pending|completed|all)")
	fs.StringVar(status, "s", string(service.StatusAll), "Filter by status (pending|completed|all)")
	priority := fs.String("priority", "", "Filter by priority (low|medium|high)")
	fs.StringVar(priority, "p", "", "Filter by priority (low|medium|high)")
	sortBy := fs.String("sort-by", string(service.SortByID), "Sort by id|title|due_date|priority|status|created_at")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("unexpected arguments: %v", positional)
	}
	key, err := service.ParseSortKey(*sortBy)
	if err != nil {
		return err
	}

	tasks, err := a.svc.List(service.Filter{
		Status:   todo.Status(*status),
		Priority: todo.Priority(*priority),
	})
	if err != nil {
		return err
	}
	service.SortTasks(tasks, key)

	fmt.Fprintln(stdout, formatTaskList(tasks))
	return nil
}

// showCommand prints one task in detail.
func (a *app) showCommand(args []string) error {
	id, err := parseIDArgs(newFlagSet("todo show"), args)
	if err != nil {
		return err
	}
	task, ok, err := a.svc.Get(id)
	if err != nil {
		return err
	}
	if !ok {
		return &todo.NotFoundError{ID: id}
	}
	fmt.Fprintln(stdout, formatTask(task))
	return nil
}

// completeCommand marks a task completed.
func (a *app) completeCommand(args []string) error {
	id, err := parseIDArgs(newFlagSet("todo complete"), args)
	if err != nil {
		return err
	}
	task, err := a.svc.Complete(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Task #%d marked as completed!\n", task.ID)
	fmt.Fprintf(stdout, "Title: %s\n", task.Title)
	return nil
}

// updateCommand changes the fields given as flags. A flag given with an
// empty value clears description and due date.
func (a *app) updateCommand(args []string) error {
	fs := newFlagSet("todo update")
	title := fs.String("title", "", "New task title")
	description := fs.String("description", "", "New description (empty clears it)")
	priority := fs.String("priority", "", "New priority (low|medium|high)")
	status := fs.String("status", "", "New status (pending|completed)")
	dueDate := fs.String("due-date", "", "New due date YYYY-MM-DD (empty clears it)")

	id, err := parseIDArgs(fs, args)
	if err != nil {
		return err
	}

	var ch todo.Changes
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			ch.Title = title
		case "description":
			ch.Description = description
		case "priority":
			p := todo.Priority(*priority)
			ch.Priority = &p
		case "status":
			s := todo.Status(*status)
			ch.Status = &s
		case "due-date":
			ch.DueDate = dueDate
		}
	})

	task, err := a.svc.Update(id, ch)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Task #%d updated successfully!\n", task.ID)
	fmt.Fprintf(stdout, "Updated fields: %s\n", strings.Join(ch.Fields(), ", "))
	return nil
}

// deleteCommand removes a task after confirmation.
func (a *app) deleteCommand(args []string) error {
	fs := newFlagSet("todo delete")
	confirmed := fs.Bool("confirm", false, "Skip confirmation prompt")
	fs.BoolVar(confirmed, "y", false, "Skip confirmation prompt")

	id, err := parseIDArgs(fs, args)
	if err != nil {
		return err
	}

	task, ok, err := a.svc.Get(id)
	if err != nil {
		return err
	}
	if !ok {
		return &todo.NotFoundError{ID: id}
	}

	if a.cfg.ConfirmDelete && !*confirmed {
		fmt.Fprintf(stdout, "Are you sure you want to delete task #%d: \"%s\"? (y/N): ", id, task.Title)
		answer, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Fprintln(stdout, "Deletion cancelled.")
			return nil
		}
	}

	deleted, err := a.svc.Delete(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Task #%d deleted successfully!\n", deleted.ID)
	return nil
}

// tuiCommand launches the interactive viewer.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := newFlagSet("todo tui")
	if err := parseNoArgs(fs, args); err != nil {
		return err
	}
	return ui.Run(ctx, a.svc, ui.WithTasksPath(a.cfg.TasksFile))
}

// configCommand prints the effective configuration, or an example file.
func (a *app) configCommand(args []string) error {
	fs := newFlagSet("todo config")
	example := fs.Bool("example", false, "Print an example config file")
	if err := parseNoArgs(fs, args); err != nil {
		return err
	}

	if *example {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	fmt.Fprintln(stdout, "# Effective configuration")
	for _, path := range a.cfg.Files {
		fmt.Fprintf(stdout, "# loaded: %s\n", path)
	}
	for _, key := range config.Fields() {
		value := a.cfg.Value(key)
		switch key {
		case "confirm_delete", "log_timestamps", "log_caller":
			fmt.Fprintf(stdout, "%s = %s  # %s\n", key, value, a.cfg.SourceOf(key))
		default:
			fmt.Fprintf(stdout, "%s = %q  # %s\n", key, value, a.cfg.SourceOf(key))
		}
	}
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "todo version %s\n", Version)
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parseInterspersed parses flags that may appear before or after positional
// arguments. Everything after "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var tail []string
	for i, arg := range args {
		if arg == "--" {
			tail = args[i+1:]
			args = args[:i]
			break
		}
	}

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
	return append(positional, tail...), nil
}

func parseNoArgs(fs *flag.FlagSet, args []string) error {
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("unexpected arguments: %v", positional)
	}
	return nil
}

// parseIDArgs parses fs and expects exactly one positional task ID.
func parseIDArgs(fs *flag.FlagSet, args []string) (int, error) {
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return 0, err
	}
	if len(positional) != 1 {
		return 0, fmt.Errorf("usage: %s <id>", fs.Name())
	}
	return parseID(positional[0])
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task ID %q: must be a positive integer", s)
	}
	return id, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todo - Manage your tasks from the command line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todo [global options] <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <title>        Add a new task")
	fmt.Fprintln(w, "  list, ls           List tasks")
	fmt.Fprintln(w, "  show <id>          Show one task")
	fmt.Fprintln(w, "  complete, done <id>  Mark a task as completed")
	fmt.Fprintln(w, "  update <id>        Update task details")
	fmt.Fprintln(w, "  delete, rm <id>    Delete a task")
	fmt.Fprintln(w, "  doctor             Check config and task file validity")
	fmt.Fprintln(w, "  tui                Launch terminal UI")
	fmt.Fprintln(w, "  config             Show effective configuration")
	fmt.Fprintln(w, "  version            Show version information")
	fmt.Fprintln(w, "  help               Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options:")
	fmt.Fprintln(w, "  -d, -description string   Task description")
	fmt.Fprintln(w, "  -p, -priority string      low|medium|high (default from config)")
	fmt.Fprintln(w, "  -due-date string          Due date (YYYY-MM-DD)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options:")
	fmt.Fprintln(w, "  -s, -status string        pending|completed|all (default all)")
	fmt.Fprintln(w, "  -p, -priority string      low|medium|high")
	fmt.Fprintln(w, "  -sort-by string           id|title|due_date|priority|status|created_at (default id)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Update Options:")
	fmt.Fprintln(w, "  -title, -description, -priority, -status, -due-date")
	fmt.Fprintln(w, "        Only the flags given are changed; an empty -description or -due-date clears it")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Delete Options:")
	fmt.Fprintln(w, "  -y, -confirm              Skip confirmation prompt")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status: 0 success, 1 invalid input or unknown task, 2 storage failure")
}
