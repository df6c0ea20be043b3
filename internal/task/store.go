package task

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/taskdeck/internal/date"
)

// validate holds the field rules enforced on add input.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// "required" accepts all-whitespace strings; descriptions must
	// carry visible text.
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// addInput carries the fields of an Add call through validation.
type addInput struct {
	Description string `validate:"notblank"`
	Priority    int    `validate:"min=1,max=5"`
}

// Store owns the task collection and the id counter. It is not safe
// for concurrent use; taskdeck is single-threaded by design.
type Store struct {
	nextID int
	tasks  map[int]Task
}

// NewStore returns an empty store with the id counter at 1.
func NewStore() *Store {
	return &Store{
		nextID: 1,
		tasks:  make(map[int]Task),
	}
}

// Restore rebuilds a store from persisted state. It rejects state that
// would force id reuse: duplicate ids, non-positive ids, or a counter
// at or below an existing id.
func Restore(nextID int, tasks []Task) (*Store, error) {
	if nextID < 1 {
		return nil, fmt.Errorf("next_id must be at least 1, got %d", nextID)
	}
	s := &Store{
		nextID: nextID,
		tasks:  make(map[int]Task, len(tasks)),
	}
	for _, t := range tasks {
		if t.ID < 1 {
			return nil, fmt.Errorf("task id must be positive, got %d", t.ID)
		}
		if _, exists := s.tasks[t.ID]; exists {
			return nil, fmt.Errorf("duplicate task id %d", t.ID)
		}
		if t.ID >= nextID {
			return nil, fmt.Errorf("task id %d conflicts with next_id %d", t.ID, nextID)
		}
		s.tasks[t.ID] = t
	}
	return s, nil
}

// Add creates a task with the next unused id and status TODO, stamps
// created_at, and returns it. A priority of 0 means "use
// DefaultPriority". Fails with a ValidationError when the description
// is blank or the priority is outside [MinPriority, MaxPriority].
func (s *Store) Add(description string, due *date.Date, priority int) (Task, error) {
	if priority == 0 {
		priority = DefaultPriority
	}
	in := addInput{Description: description, Priority: priority}
	if err := validate.Struct(in); err != nil {
		return Task{}, validationError(err)
	}

	now := time.Now().UTC()
	t := Task{
		ID:          s.nextID,
		Description: description,
		Due:         due,
		Priority:    priority,
		Status:      StatusTodo,
		CreatedAt:   &now,
	}
	s.tasks[t.ID] = t
	s.nextID++
	return t, nil
}

// validationError converts validator field errors into the package's
// ValidationError with the task field name and a readable message.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Err: err}
	}

	fe := fieldErrs[0]
	switch fe.Field() {
	case "Description":
		return &ValidationError{
			Field: "description",
			Err:   fmt.Errorf("must not be empty"),
		}
	case "Priority":
		return &ValidationError{
			Field: "priority",
			Err:   fmt.Errorf("must be between %d and %d, got %v", MinPriority, MaxPriority, fe.Value()),
		}
	}
	return &ValidationError{
		Field: strings.ToLower(fe.Field()),
		Err:   fmt.Errorf("failed %s rule", fe.Tag()),
	}
}

// Get returns the task with the given id.
func (s *Store) Get(id int) (Task, bool) {
	t, ok := s.tasks[id]
	return t, ok
}

// List returns a sorted snapshot of the tasks: ascending priority, then
// ascending due date with dateless tasks last, then ascending id. A
// filter of "" includes every status.
func (s *Store) List(filter Status) []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter != "" && t.Status != filter {
			continue
		}
		out = append(out, t)
	}
	sortTasks(out)
	return out
}

func sortTasks(tasks []Task) {
	sort.Slice(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		switch {
		case a.Due == nil && b.Due == nil:
			// fall through to id
		case a.Due == nil:
			return false
		case b.Due == nil:
			return true
		case !a.Due.Equal(*b.Due):
			return a.Due.Before(*b.Due)
		}
		return a.ID < b.ID
	})
}

// Complete flips the task to DONE and stamps completed_at. Fails with
// a NotFoundError for an unknown id and an InvalidStateError when the
// task is already done.
func (s *Store) Complete(id int) (Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, &NotFoundError{ID: id}
	}
	if t.Status == StatusDone {
		return Task{}, &InvalidStateError{ID: id, Status: t.Status}
	}

	now := time.Now().UTC()
	t.Status = StatusDone
	t.CompletedAt = &now
	s.tasks[id] = t
	return t, nil
}

// Delete removes the task permanently; its id is never reassigned.
// Fails with a NotFoundError for an unknown id.
func (s *Store) Delete(id int) error {
	if _, ok := s.tasks[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(s.tasks, id)
	return nil
}

// Len returns the number of tasks in the store.
func (s *Store) Len() int {
	return len(s.tasks)
}

// NextID returns the id the next Add will assign.
func (s *Store) NextID() int {
	return s.nextID
}

// Tasks returns every task ordered by id, the canonical order for
// serialization.
func (s *Store) Tasks() []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Counts returns how many tasks are pending and done.
func (s *Store) Counts() (todo, done int) {
	for _, t := range s.tasks {
		if t.Status == StatusDone {
			done++
		} else {
			todo++
		}
	}
	return todo, done
}
