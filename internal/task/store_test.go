package task

import (
	"errors"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/date"
)

func mustAdd(t *testing.T, s *Store, description string, due *date.Date, priority int) Task {
	t.Helper()
	created, err := s.Add(description, due, priority)
	if err != nil {
		t.Fatalf("Add(%q) error = %v", description, err)
	}
	return created
}

func datePtr(year int, month time.Month, day int) *date.Date {
	d := date.New(year, month, day)
	return &d
}

func TestAdd(t *testing.T) {
	s := NewStore()

	due := datePtr(2024, time.January, 1)
	got := mustAdd(t, s, "Buy milk", due, 2)

	if got.ID != 1 {
		t.Errorf("ID = %d, want 1", got.ID)
	}
	if got.Status != StatusTodo {
		t.Errorf("Status = %s, want %s", got.Status, StatusTodo)
	}
	if got.Priority != 2 {
		t.Errorf("Priority = %d, want 2", got.Priority)
	}
	if got.Due == nil || !got.Due.Equal(*due) {
		t.Errorf("Due = %v, want %s", got.Due, due)
	}
	if got.CreatedAt == nil {
		t.Error("CreatedAt = nil, want a timestamp")
	}
	if got.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil", got.CompletedAt)
	}
	if s.NextID() != 2 {
		t.Errorf("NextID() = %d, want 2", s.NextID())
	}
}

func TestAddDefaultPriority(t *testing.T) {
	s := NewStore()
	got := mustAdd(t, s, "Write report", nil, 0)
	if got.Priority != DefaultPriority {
		t.Errorf("Priority = %d, want %d", got.Priority, DefaultPriority)
	}
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name        string
		description string
		priority    int
	}{
		{"empty description", "", 3},
		{"whitespace description", "   ", 3},
		{"priority too low", "task", -1},
		{"priority too high", "task", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			_, err := s.Add(tt.description, nil, tt.priority)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Add() error = %v, want ValidationError", err)
			}
			if s.Len() != 0 {
				t.Errorf("Len() = %d after failed Add, want 0", s.Len())
			}
			if s.NextID() != 1 {
				t.Errorf("NextID() = %d after failed Add, want 1", s.NextID())
			}
		})
	}
}

func TestIDsMonotonic(t *testing.T) {
	s := NewStore()

	var ids []int
	for i := 0; i < 3; i++ {
		ids = append(ids, mustAdd(t, s, "task", nil, 3).ID)
	}

	// Deleting must not free ids for reuse.
	if err := s.Delete(ids[2]); err != nil {
		t.Fatalf("Delete(%d) error = %v", ids[2], err)
	}
	ids = append(ids, mustAdd(t, s, "task", nil, 3).ID)
	ids = append(ids, mustAdd(t, s, "task", nil, 3).ID)

	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("ids not strictly increasing: %v", ids)
		}
	}
}

func TestListOrdering(t *testing.T) {
	s := NewStore()

	// Same priority, later due date.
	mustAdd(t, s, "p2 due feb", datePtr(2024, time.February, 1), 2) // id 1
	// Higher urgency sorts first regardless of insertion order.
	mustAdd(t, s, "p1 no due", nil, 1) // id 2
	// Same priority, earlier due date.
	mustAdd(t, s, "p2 due jan", datePtr(2024, time.January, 1), 2) // id 3
	// Same priority, no due date: sorts after all dated tasks.
	mustAdd(t, s, "p2 no due", nil, 2) // id 4
	// Tie on priority and due date: ascending id.
	mustAdd(t, s, "p2 due jan again", datePtr(2024, time.January, 1), 2) // id 5

	got := s.List("")
	want := []int{2, 3, 5, 1, 4}
	if len(got) != len(want) {
		t.Fatalf("List() returned %d tasks, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("List()[%d].ID = %d, want %d (order %v)", i, got[i].ID, id, taskIDs(got))
		}
	}
}

func taskIDs(tasks []Task) []int {
	ids := make([]int, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func TestListFilter(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "one", nil, 1)
	mustAdd(t, s, "two", nil, 2)
	mustAdd(t, s, "three", nil, 3)
	if _, err := s.Complete(2); err != nil {
		t.Fatalf("Complete(2) error = %v", err)
	}

	todo := s.List(StatusTodo)
	if ids := taskIDs(todo); len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Errorf("List(TODO) ids = %v, want [1 3]", ids)
	}

	done := s.List(StatusDone)
	if ids := taskIDs(done); len(ids) != 1 || ids[0] != 2 {
		t.Errorf("List(DONE) ids = %v, want [2]", ids)
	}

	all := s.List("")
	if len(all) != 3 {
		t.Errorf("List() returned %d tasks, want 3", len(all))
	}
}

func TestListSnapshot(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "one", nil, 1)

	got := s.List("")
	got[0].Description = "mutated"

	if fresh := s.List(""); fresh[0].Description != "one" {
		t.Errorf("List() snapshot mutation leaked into store: %q", fresh[0].Description)
	}
}

func TestComplete(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "one", nil, 3)

	got, err := s.Complete(1)
	if err != nil {
		t.Fatalf("Complete(1) error = %v", err)
	}
	if got.Status != StatusDone {
		t.Errorf("Status = %s, want %s", got.Status, StatusDone)
	}
	if got.CompletedAt == nil {
		t.Error("CompletedAt = nil, want a timestamp")
	}
	if stored, _ := s.Get(1); stored.Status != StatusDone {
		t.Errorf("stored Status = %s, want %s", stored.Status, StatusDone)
	}
}

func TestCompleteNotFound(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "one", nil, 3)

	_, err := s.Complete(99)
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("Complete(99) error = %v, want NotFoundError", err)
	}
	if nfErr.ID != 99 {
		t.Errorf("NotFoundError.ID = %d, want 99", nfErr.ID)
	}
	if got, _ := s.Get(1); got.Status != StatusTodo {
		t.Errorf("store changed after failed Complete: status %s", got.Status)
	}
}

func TestCompleteAlreadyDone(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "one", nil, 3)
	first, err := s.Complete(1)
	if err != nil {
		t.Fatalf("Complete(1) error = %v", err)
	}

	_, err = s.Complete(1)
	var isErr *InvalidStateError
	if !errors.As(err, &isErr) {
		t.Fatalf("second Complete(1) error = %v, want InvalidStateError", err)
	}
	if isErr.ID != 1 || isErr.Status != StatusDone {
		t.Errorf("InvalidStateError = {ID:%d Status:%s}, want {ID:1 Status:DONE}", isErr.ID, isErr.Status)
	}

	// The failed call must not touch the stored task.
	stored, _ := s.Get(1)
	if stored.CompletedAt == nil || !stored.CompletedAt.Equal(*first.CompletedAt) {
		t.Errorf("CompletedAt changed after failed Complete: %v, want %v", stored.CompletedAt, first.CompletedAt)
	}
}

func TestDelete(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "one", nil, 3)
	mustAdd(t, s, "two", nil, 3)

	if err := s.Delete(1); err != nil {
		t.Fatalf("Delete(1) error = %v", err)
	}
	if _, ok := s.Get(1); ok {
		t.Error("Get(1) found task after Delete")
	}
	if ids := taskIDs(s.List("")); len(ids) != 1 || ids[0] != 2 {
		t.Errorf("List() ids = %v, want [2]", ids)
	}

	// The freed id must never be reassigned.
	if got := mustAdd(t, s, "three", nil, 3); got.ID != 3 {
		t.Errorf("Add() after Delete assigned id %d, want 3", got.ID)
	}
}

func TestDeleteNotFound(t *testing.T) {
	s := NewStore()
	err := s.Delete(7)
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("Delete(7) error = %v, want NotFoundError", err)
	}
}

func TestRestore(t *testing.T) {
	tasks := []Task{
		{ID: 1, Description: "one", Priority: 2, Status: StatusTodo},
		{ID: 3, Description: "three", Priority: 4, Status: StatusDone},
	}

	s, err := Restore(4, tasks)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if s.NextID() != 4 {
		t.Errorf("NextID() = %d, want 4", s.NextID())
	}
	if got := mustAdd(t, s, "new", nil, 3); got.ID != 4 {
		t.Errorf("Add() after Restore assigned id %d, want 4", got.ID)
	}
}

func TestRestoreRejectsIDReuse(t *testing.T) {
	tests := []struct {
		name   string
		nextID int
		tasks  []Task
	}{
		{
			name:   "next_id below 1",
			nextID: 0,
			tasks:  nil,
		},
		{
			name:   "duplicate ids",
			nextID: 3,
			tasks: []Task{
				{ID: 1, Description: "a", Priority: 3, Status: StatusTodo},
				{ID: 1, Description: "b", Priority: 3, Status: StatusTodo},
			},
		},
		{
			name:   "non-positive id",
			nextID: 2,
			tasks:  []Task{{ID: 0, Description: "a", Priority: 3, Status: StatusTodo}},
		},
		{
			name:   "counter not past largest id",
			nextID: 2,
			tasks:  []Task{{ID: 2, Description: "a", Priority: 3, Status: StatusTodo}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Restore(tt.nextID, tt.tasks); err == nil {
				t.Error("Restore() error = nil, want id-reuse rejection")
			}
		})
	}
}

func TestCounts(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "one", nil, 3)
	mustAdd(t, s, "two", nil, 3)
	mustAdd(t, s, "three", nil, 3)
	if _, err := s.Complete(2); err != nil {
		t.Fatalf("Complete(2) error = %v", err)
	}

	todo, done := s.Counts()
	if todo != 2 || done != 1 {
		t.Errorf("Counts() = (%d, %d), want (2, 1)", todo, done)
	}
}

func TestTasksOrderedByID(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "one", nil, 5)
	mustAdd(t, s, "two", nil, 1)
	mustAdd(t, s, "three", nil, 3)

	got := s.Tasks()
	for i, want := range []int{1, 2, 3} {
		if got[i].ID != want {
			t.Errorf("Tasks()[%d].ID = %d, want %d", i, got[i].ID, want)
		}
	}
}

// TestScenario walks the full add/list/complete/delete flow end to end.
func TestScenario(t *testing.T) {
	s := NewStore()

	milk := mustAdd(t, s, "Buy milk", datePtr(2024, time.January, 1), 2)
	if milk.ID != 1 || milk.Status != StatusTodo {
		t.Fatalf("first Add() = {ID:%d Status:%s}, want {ID:1 Status:TODO}", milk.ID, milk.Status)
	}

	report := mustAdd(t, s, "Write report", nil, 1)
	if report.ID != 2 {
		t.Fatalf("second Add() ID = %d, want 2", report.ID)
	}

	if ids := taskIDs(s.List("")); len(ids) != 2 || ids[0] != 2 || ids[1] != 1 {
		t.Fatalf("List() ids = %v, want [2 1]", ids)
	}

	done, err := s.Complete(1)
	if err != nil {
		t.Fatalf("Complete(1) error = %v", err)
	}
	if done.Status != StatusDone {
		t.Fatalf("Complete(1) Status = %s, want DONE", done.Status)
	}

	if ids := taskIDs(s.List(StatusTodo)); len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("List(TODO) ids = %v, want [2]", ids)
	}

	if err := s.Delete(2); err != nil {
		t.Fatalf("Delete(2) error = %v", err)
	}
	if ids := taskIDs(s.List("")); len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("List() ids = %v, want [1]", ids)
	}
}
