package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/task"
)

// Table writes tasks as an aligned table, one row per task, in the
// order given. Cells are padded before coloring so escape codes never
// skew the columns.
func Table(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}

	header := fmt.Sprintf("%-4s %-3s %-6s %-10s %-4s %s",
		"ID", "PRI", "STATUS", "DUE", "AGE", "DESCRIPTION")
	fmt.Fprintln(w, Dim(header))

	now := time.Now()
	for _, t := range tasks {
		desc := t.Description
		if t.Done() {
			desc = Dim(desc)
		}
		fmt.Fprintf(w, "%s %s %s %s %s %s\n",
			Cyan(fmt.Sprintf("%-4d", t.ID)),
			priorityCell(t.Priority),
			statusCell(t.Status),
			dueCell(&t),
			fmt.Sprintf("%-4s", Age(t.CreatedAt, now)),
			desc,
		)
	}
}

// Line renders a one-line task summary for command confirmations.
func Line(t task.Task) string {
	var b strings.Builder
	b.WriteString(Bold(fmt.Sprintf("#%d", t.ID)))
	fmt.Fprintf(&b, " P%d ", t.Priority)
	b.WriteString(statusCell(t.Status))
	b.WriteString(" ")
	b.WriteString(t.Description)
	if t.Due != nil {
		b.WriteString(Dim(fmt.Sprintf(" (due %s)", t.Due)))
	}
	return b.String()
}

// Age renders a coarse task age like 5m, 3h, 6d, or 2w.
func Age(from *time.Time, now time.Time) string {
	if from == nil {
		return "-"
	}
	d := now.Sub(*from)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
	return fmt.Sprintf("%dw", int(d.Hours()/(24*7)))
}

// priorityCell pads then colors so urgent priorities stand out.
func priorityCell(p int) string {
	cell := fmt.Sprintf("%-3s", fmt.Sprintf("P%d", p))
	switch p {
	case 1:
		return Red(cell)
	case 2:
		return Yellow(cell)
	case 4, 5:
		return Dim(cell)
	}
	return cell
}

// statusCell is always six columns wide: a glyph plus TODO or DONE.
func statusCell(s task.Status) string {
	return StatusIcon(s) + " " + string(s)
}

func dueCell(t *task.Task) string {
	if t.Due == nil {
		return Dim(fmt.Sprintf("%-10s", "-"))
	}
	cell := fmt.Sprintf("%-10s", t.Due.String())
	if t.Overdue() {
		return Red(cell)
	}
	return cell
}
