package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/taskdeck/taskdeck/internal/task"
)

// document is the on-disk form of the store.
type document struct {
	SchemaVersion int         `json:"schema_version,omitempty" yaml:"schema_version,omitempty"`
	NextID        int         `json:"next_id" yaml:"next_id"`
	Tasks         []task.Task `json:"tasks" yaml:"tasks"`
}

// Load reads the task file at path and rebuilds the store. A missing
// file is not an error: it yields a fresh empty store, so the first
// save creates the file. Any other failure — a file that exists but
// cannot be read, parsed, or validated — is a *CorruptStateError. The
// format argument is the configured fallback encoding; a recognized
// file extension takes precedence.
func Load(path string, format Format) (*task.Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return task.NewStore(), nil
		}
		return nil, &CorruptStateError{Path: path, Err: err}
	}

	doc, err := decodeDocument(raw, DetectFormat(path, format))
	if err != nil {
		return nil, &CorruptStateError{Path: path, Err: err}
	}
	if err := validateDocument(doc); err != nil {
		return nil, &CorruptStateError{Path: path, Err: err}
	}
	store, err := task.Restore(doc.NextID, doc.Tasks)
	if err != nil {
		return nil, &CorruptStateError{Path: path, Err: err}
	}
	return store, nil
}

// Save writes the store to path, creating parent directories as
// needed. The write goes through a synced temp file and rename, so a
// crash mid-save leaves the previous document intact.
func Save(store *task.Store, path string, format Format) error {
	doc := &document{
		SchemaVersion: SchemaVersion,
		NextID:        store.NextID(),
		Tasks:         store.Tasks(),
	}
	data, err := encodeDocument(doc, DetectFormat(path, format))
	if err != nil {
		return fmt.Errorf("encode task file: %w", err)
	}
	if err := writeFileAtomicDurable(path, data, 0o644); err != nil {
		return fmt.Errorf("write task file %s: %w", path, err)
	}
	return nil
}

func decodeDocument(raw []byte, format Format) (*document, error) {
	var doc document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		// Ensure no trailing junk.
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			return nil, errors.New("parse json: trailing content after document")
		}
	}
	return &doc, nil
}

func encodeDocument(doc *document, format Format) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(doc)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// validateDocument checks the document against the bundled schema.
// The document is marshaled back to JSON first, which also normalizes
// YAML input to the form the schema describes.
func validateDocument(doc *document) error {
	if doc.SchemaVersion != 0 && doc.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported schema_version %d, want %d", doc.SchemaVersion, SchemaVersion)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document for validation: %w", err)
	}
	var instance interface{}
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("unmarshal document for validation: %w", err)
	}
	if err := taskFileSchema.Validate(instance); err != nil {
		return schemaError(err)
	}
	return nil
}

// schemaError flattens a jsonschema validation error into one error
// listing every leaf cause with a readable field path.
func schemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	lines := collectSchemaErrors(ve, nil)
	if len(lines) == 0 {
		return err
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(lines, "; "))
}

func collectSchemaErrors(err *jsonschema.ValidationError, lines []string) []string {
	if err == nil {
		return lines
	}
	if len(err.Causes) == 0 {
		if path := jsonPointerToPath(err.InstanceLocation); path != "" {
			return append(lines, fmt.Sprintf("%s: %s", path, err.Message))
		}
		return append(lines, err.Message)
	}
	for _, cause := range err.Causes {
		lines = collectSchemaErrors(cause, lines)
	}
	return lines
}

// jsonPointerToPath converts a JSON pointer like /tasks/0/priority to
// the friendlier tasks[0].priority.
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}

func writeFileAtomicDurable(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return fsyncDir(dir)
}

// fsyncDir makes the rename itself durable.
func fsyncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
