// Package task implements the in-memory task model: the Task record,
// its status lifecycle, and the Store that owns id assignment and the
// add/list/complete/delete operations.
//
// # Identifiers
//
// Ids are positive integers handed out by a monotonically increasing
// counter owned by the Store. An id is never reused, even after the
// task it named is deleted; the counter is persisted alongside the
// tasks (see internal/storage) so restarts cannot recycle ids.
//
// # Status Values
//
//   - "TODO": task is pending
//   - "DONE": task is complete
//
// The transition is one-way. Completing a task that is already DONE is
// an InvalidStateError, never a silent no-op; callers that want
// idempotent completion must check the status first.
//
// # Priority Range
//
//   - 1: highest urgency
//   - 5: lowest urgency
//
// DefaultPriority (3) applies when the caller passes 0 for "unspecified".
//
// # Ordering
//
// List returns tasks sorted by ascending priority, then ascending due
// date with dateless tasks after all dated ones, then ascending id.
//
// # Errors
//
// Operations fail with typed errors the front-end can distinguish with
// errors.As: ValidationError (bad add input), NotFoundError (unknown
// id), InvalidStateError (illegal status transition). A failed
// operation leaves the store unchanged.
package task
