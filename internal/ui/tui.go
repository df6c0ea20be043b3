// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/date"
	"github.com/taskdeck/taskdeck/internal/storage"
	"github.com/taskdeck/taskdeck/internal/task"
)

// Options configures the TUI.
type Options struct {
	// Path and Format locate the task file every mutation is saved to.
	Path   string
	Format storage.Format

	// DefaultPriority is used when the add form's priority is left blank.
	DefaultPriority int
}

// RunTUI starts the interactive task browser on the given store.
// Every mutation is persisted before the next keystroke is handled.
func RunTUI(ctx context.Context, store *task.Store, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	return runProgram(ctx, newTUIModel(store, opts))
}

func runProgram(ctx context.Context, model *tuiModel) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*tuiModel); ok && m.fatalErr != nil {
		return m.fatalErr
	}
	return nil
}

// uiMode selects which screen handles key input.
type uiMode int

const (
	modeBrowse uiMode = iota
	modeAdd
)

// Add form fields, in tab order.
const (
	fieldDescription = iota
	fieldDue
	fieldPriority
	fieldCount
)

type addForm struct {
	field  int
	inputs [fieldCount]string
	err    string
}

type tuiModel struct {
	store *task.Store
	opts  Options

	mode     uiMode
	cursor   int
	filter   task.Status
	visible  []task.Task
	form     addForm
	notice   string
	showHelp bool
	fatalErr error
}

func newTUIModel(store *task.Store, opts Options) *tuiModel {
	m := &tuiModel{
		store: store,
		opts:  opts,
	}
	m.refreshVisible()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.mode == modeAdd {
		return m, m.updateAdd(key)
	}
	return m, m.updateBrowse(key)
}

func (m *tuiModel) updateBrowse(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "a", "n":
		m.mode = modeAdd
		m.form = addForm{}
		m.notice = ""
	case "enter", "c":
		return m.completeSelected()
	case "d", "x":
		return m.deleteSelected()
	case "1":
		m.filter = task.StatusTodo
		m.refreshVisible()
	case "2":
		m.filter = task.StatusDone
		m.refreshVisible()
	case "0":
		m.filter = ""
		m.refreshVisible()
	case "r", "f5":
		m.reload()
	case "h", "?":
		m.showHelp = !m.showHelp
	}
	return nil
}

func (m *tuiModel) updateAdd(key tea.KeyMsg) tea.Cmd {
	switch key.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEsc:
		m.mode = modeBrowse
	case tea.KeyEnter:
		if m.form.field < fieldCount-1 {
			m.form.field++
			return nil
		}
		return m.submitAdd()
	case tea.KeyTab:
		m.form.field = (m.form.field + 1) % fieldCount
	case tea.KeyShiftTab:
		m.form.field = (m.form.field + fieldCount - 1) % fieldCount
	case tea.KeyBackspace:
		input := m.form.inputs[m.form.field]
		if input != "" {
			runes := []rune(input)
			m.form.inputs[m.form.field] = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.form.inputs[m.form.field] += " "
	case tea.KeyRunes:
		m.form.inputs[m.form.field] += string(key.Runes)
	}
	return nil
}

// submitAdd validates the form, adds the task, and persists. Invalid
// input keeps the form open with the reason shown.
func (m *tuiModel) submitAdd() tea.Cmd {
	description := strings.TrimSpace(m.form.inputs[fieldDescription])

	var due *date.Date
	if v := strings.TrimSpace(m.form.inputs[fieldDue]); v != "" {
		parsed, err := date.Parse(v)
		if err != nil {
			m.form.err = err.Error()
			return nil
		}
		due = &parsed
	}

	priority := m.opts.DefaultPriority
	if v := strings.TrimSpace(m.form.inputs[fieldPriority]); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			m.form.err = fmt.Sprintf("priority %q is not a number", v)
			return nil
		}
		// A typed 0 must not slip through as "use the default".
		if p == 0 {
			m.form.err = fmt.Sprintf("priority must be between %d and %d, got 0", task.MinPriority, task.MaxPriority)
			return nil
		}
		priority = p
	}

	created, err := m.store.Add(description, due, priority)
	if err != nil {
		m.form.err = err.Error()
		return nil
	}

	m.mode = modeBrowse
	m.notice = fmt.Sprintf("Added #%d %s", created.ID, created.Description)
	m.refreshVisible()
	m.moveCursorTo(created.ID)
	return m.persist()
}

func (m *tuiModel) completeSelected() tea.Cmd {
	selected, ok := m.selectedTask()
	if !ok {
		return nil
	}
	done, err := m.store.Complete(selected.ID)
	if err != nil {
		m.notice = err.Error()
		return nil
	}
	m.notice = fmt.Sprintf("Completed #%d %s", done.ID, done.Description)
	m.refreshVisible()
	return m.persist()
}

func (m *tuiModel) deleteSelected() tea.Cmd {
	selected, ok := m.selectedTask()
	if !ok {
		return nil
	}
	if err := m.store.Delete(selected.ID); err != nil {
		m.notice = err.Error()
		return nil
	}
	m.notice = fmt.Sprintf("Deleted #%d %s", selected.ID, selected.Description)
	m.refreshVisible()
	return m.persist()
}

// reload re-reads the task file, discarding in-memory state. A file
// that fails to load keeps the current store so nothing is lost.
func (m *tuiModel) reload() {
	loaded, err := storage.Load(m.opts.Path, m.opts.Format)
	if err != nil {
		m.notice = err.Error()
		return
	}
	m.store = loaded
	m.refreshVisible()
	m.notice = "Reloaded."
}

// persist saves after a mutation. A failed save quits with the error
// rather than drifting away from what is on disk.
func (m *tuiModel) persist() tea.Cmd {
	if err := storage.Save(m.store, m.opts.Path, m.opts.Format); err != nil {
		m.fatalErr = err
		return tea.Quit
	}
	return nil
}

func (m *tuiModel) selectedTask() (task.Task, bool) {
	if len(m.visible) == 0 || m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m *tuiModel) refreshVisible() {
	m.visible = m.store.List(m.filter)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) moveCursorTo(id int) {
	for i, t := range m.visible {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}
	if m.mode == modeAdd {
		writeAddForm(&b, &m.form, m.opts.DefaultPriority)
		return b.String()
	}

	if m.filter != "" {
		fmt.Fprintf(&b, "Filter: %s (0 to clear)\n\n", m.filter)
	}
	writeTasks(&b, m.visible, m.cursor)
	writeCounts(&b, m.store)
	if m.notice != "" {
		b.WriteString(m.notice + "\n\n")
	}
	writeFooter(&b)
	return b.String()
}

func writeTitle(b *strings.Builder) {
	title := "taskdeck"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeTasks(b *strings.Builder, tasks []task.Task, cursor int) {
	if len(tasks) == 0 {
		b.WriteString("  No tasks.\n\n")
		return
	}
	for i, t := range tasks {
		b.WriteString(formatTaskLine(t, i == cursor))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func formatTaskLine(t task.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}
	mark := " "
	if t.Done() {
		mark = "x"
	}
	due := "-"
	if t.Due != nil {
		due = t.Due.String()
	}
	return fmt.Sprintf("%s[%s] #%-3d (P%d) %-10s %s", cursor, mark, t.ID, t.Priority, due, t.Description)
}

func writeCounts(b *strings.Builder, store *task.Store) {
	todo, done := store.Counts()
	fmt.Fprintf(b, "%d todo, %d done\n\n", todo, done)
}

func writeAddForm(b *strings.Builder, form *addForm, defaultPriority int) {
	labels := [fieldCount]string{
		"Description",
		"Due (YYYY-MM-DD, optional)",
		fmt.Sprintf("Priority (1-5, default %d)", defaultPriority),
	}

	b.WriteString("Add Task\n\n")
	for i, label := range labels {
		value := form.inputs[i]
		if i == form.field {
			value += "_"
		}
		fmt.Fprintf(b, "  %s: %s\n", label, value)
	}
	b.WriteString("\n")
	if form.err != "" {
		b.WriteString("  " + form.err + "\n\n")
	}
	b.WriteString("Enter to advance, Esc to cancel\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  j/k, arrows  Move cursor\n")
	b.WriteString("  a, n         Add a task\n")
	b.WriteString("  enter, c     Complete the selected task\n")
	b.WriteString("  d, x         Delete the selected task\n")
	b.WriteString("  1            Show only TODO tasks\n")
	b.WriteString("  2            Show only DONE tasks\n")
	b.WriteString("  0            Clear filter\n")
	b.WriteString("  r, F5        Reload the task file\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("Press a to add | enter to complete | d to delete | h for help | q to quit\n")
}

// IsTTY returns true if stdout is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
