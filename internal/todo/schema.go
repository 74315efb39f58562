package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var schemaJSON []byte

const schemaURL = "https://github.com/nibzard/todo-go/tasks.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the embedded task file JSON Schema.
func Schema() []byte {
	return schemaJSON
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// CheckResult contains the outcome of CheckFile.
type CheckResult struct {
	Valid  bool
	Errors []error
	// Tasks is the number of records, or -1 when the data does not parse.
	Tasks int
}

// CheckFile validates raw task file contents against the embedded schema
// and reports duplicate IDs.
func CheckFile(data []byte) *CheckResult {
	result := &CheckResult{Valid: true, Errors: make([]error, 0), Tasks: -1}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("parse task file: %w", err))
		return result
	}

	schema, err := loadSchema()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("compile schema: %w", err))
		return result
	}
	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		// Shape errors are already reported by the schema.
		return result
	}
	result.Tasks = len(tasks)

	seen := make(map[int]int, len(tasks))
	for i, t := range tasks {
		if first, ok := seen[t.ID]; ok {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Field: fmt.Sprintf("[%d].id", i),
				Err:   fmt.Errorf("duplicate id %d (first used at [%d])", t.ID, first),
			})
			continue
		}
		seen[t.ID] = i
	}

	return result
}

func appendSchemaErrors(result *CheckResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *CheckResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Field: jsonPointerToPath(err.InstanceLocation),
			Err:   errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath converts a JSON Pointer such as "/0/title" into "[0].title".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
