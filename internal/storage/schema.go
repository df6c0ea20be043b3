package storage

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaVersion is the task file generation this build reads and
// writes. Files without a schema_version field are read as version 1.
const SchemaVersion = 1

// documentSchema is the embedded task file schema. YAML task files are
// checked against the same schema after normalizing through JSON.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "taskdeck task file",
  "type": "object",
  "additionalProperties": false,
  "required": ["next_id", "tasks"],
  "properties": {
    "schema_version": { "type": "integer", "const": 1 },
    "next_id": { "type": "integer", "minimum": 1 },
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["id", "description", "priority", "status"],
        "properties": {
          "id": { "type": "integer", "minimum": 1 },
          "description": { "type": "string", "minLength": 1 },
          "due_date": { "type": ["string", "null"], "format": "date" },
          "priority": { "type": "integer", "minimum": 1, "maximum": 5 },
          "status": { "type": "string", "enum": ["TODO", "DONE"] },
          "created_at": { "type": "string", "format": "date-time" },
          "completed_at": { "type": "string", "format": "date-time" }
        }
      }
    }
  }
}`

var taskFileSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("taskfile.schema.json", strings.NewReader(documentSchema)); err != nil {
		panic(err)
	}
	schema, err := compiler.Compile("taskfile.schema.json")
	if err != nil {
		panic(err)
	}
	return schema
}
