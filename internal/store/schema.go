package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const todoListSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "text": {"type": "string"},
      "dueDate": {"type": "string"},
      "completed": {"type": "boolean"},
      "createdAt": {"type": "string"}
    }
  }
}`

var listSchema = jsonschema.MustCompileString("tada://todos.schema.json", todoListSchema)

// Problem is one finding about a stored blob.
type Problem struct {
	Path    string
	Message string
	// Fatal problems make the blob unreadable; the rest are warnings.
	Fatal bool
}

func (p Problem) String() string {
	if p.Path == "" {
		return p.Message
	}
	return p.Path + ": " + p.Message
}

// Inspect validates raw against the todo list schema and reports duplicate ids.
func Inspect(raw []byte) []Problem {
	// Validate expects numbers decoded as json.Number.
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return []Problem{{Message: fmt.Sprintf("invalid JSON: %v", err), Fatal: true}}
	}
	if _, err := dec.Token(); err != io.EOF {
		return []Problem{{Message: "invalid JSON: trailing data after list", Fatal: true}}
	}

	var problems []Problem
	if err := listSchema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return []Problem{{Message: err.Error(), Fatal: true}}
		}
		collectSchemaProblems(&problems, ve)
		return problems
	}

	seen := map[string]int{}
	for i, item := range doc.([]interface{}) {
		id, _ := item.(map[string]interface{})["id"].(string)
		if first, dup := seen[id]; dup {
			problems = append(problems, Problem{
				Path:    fmt.Sprintf("[%d].id", i),
				Message: fmt.Sprintf("duplicate id %q (first at [%d])", id, first),
			})
			continue
		}
		seen[id] = i
	}
	return problems
}

func collectSchemaProblems(out *[]Problem, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, Problem{
			Path:    pointerToPath(err.InstanceLocation),
			Message: err.Message,
			Fatal:   true,
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaProblems(out, cause)
	}
}

// pointerToPath turns "/0/id" into "[0].id".
func pointerToPath(ptr string) string {
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		if part == "" {
			continue
		}
		if part[0] >= '0' && part[0] <= '9' {
			fmt.Fprintf(&b, "[%s]", part)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
