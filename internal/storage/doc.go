// Package storage persists the task store to a single task file and
// loads it back.
//
// The task file holds one document (tasks.json by default):
//
//	{
//	  "schema_version": 1,
//	  "next_id": 3,
//	  "tasks": [
//	    {
//	      "id": 1,
//	      "description": "Buy milk",
//	      "due_date": "2024-01-15",
//	      "priority": 2,
//	      "status": "TODO",
//	      "created_at": "2024-01-01T09:30:00Z"
//	    }
//	  ]
//	}
//
// The same document can be stored as YAML instead; the encoding is
// chosen by the file extension, falling back to the configured format
// for unrecognized extensions.
//
// # Validation
//
// Loading is strict. The document is decoded with unknown fields
// rejected, checked against a bundled JSON Schema (draft 2020-12), and
// finally rebuilt through the store's id-reuse checks. A file that
// exists but cannot be read, or that fails any of these steps,
// surfaces as *CorruptStateError; a file that does not exist yields a
// fresh empty store.
//
// # Durability
//
// Saving never truncates the task file in place. Content is written to
// a temp file in the destination directory, synced, renamed over the
// target, and the directory synced, so a crash leaves either the old
// document or the new one.
package storage
