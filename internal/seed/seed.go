// Package seed provides the initial chore list, built in or loaded from a JSON file.
package seed

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"chores/internal/service"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "chores://seed.schema.json"

// File is the on-disk seed format.
type File struct {
	Tasks []service.Task `json:"tasks"`
}

// ValidationError is a schema violation at a JSON path.
type ValidationError struct {
	Path string
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// Default returns the built-in household chores.
func Default() []service.Task {
	return []service.Task{
		{ID: "1", Title: "Take out the trash", Assignee: "Dad", DueDate: date(2023, time.May, 15), Status: service.StatusCompleted, Recurring: service.RecurWeekly},
		{ID: "2", Title: "Do the dishes", Assignee: "Emma", DueDate: date(2023, time.May, 14), Status: service.StatusPending, Recurring: service.RecurDaily},
		{ID: "3", Title: "Vacuum living room", Assignee: "Mom", DueDate: date(2023, time.May, 16), Status: service.StatusPending, Recurring: service.RecurWeekly},
		{ID: "4", Title: "Mow the lawn", Assignee: "Dad", DueDate: date(2023, time.May, 20), Status: service.StatusPending, Recurring: service.RecurBiweekly},
		{ID: "5", Title: "Clean bedroom", Assignee: "Jack", DueDate: date(2023, time.May, 13), Status: service.StatusCompleted, Recurring: service.RecurWeekly},
	}
}

func date(y int, m time.Month, d int) service.Date {
	return service.Date{Year: y, Month: m, Day: d}
}

// Load reads and validates a seed file.
func Load(path string) ([]service.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	tasks, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return tasks, nil
}

// Parse validates data against the seed schema and decodes it.
// Missing status and recurrence default to pending and none.
func Parse(data []byte) ([]service.Task, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, schemaErrors(err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	seen := make(map[string]bool, len(f.Tasks))
	for i := range f.Tasks {
		t := &f.Tasks[i]
		if seen[t.ID] {
			return nil, &ValidationError{Path: fmt.Sprintf("tasks[%d].id", i), Msg: "duplicate id: " + t.ID}
		}
		seen[t.ID] = true
		if t.Status == "" {
			t.Status = service.StatusPending
		}
		if t.Recurring == "" {
			t.Recurring = service.RecurNone
		}
	}
	return f.Tasks, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load seed schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile seed schema: %w", err)
	}
	return schema, nil
}

// schemaErrors flattens a jsonschema error tree into its leaf causes.
func schemaErrors(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var errs []error
	collectSchemaErrors(&errs, ve)
	return errors.Join(errs...)
}

func collectSchemaErrors(errs *[]error, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		*errs = append(*errs, &ValidationError{Path: jsonPointerToPath(ve.InstanceLocation), Msg: ve.Message})
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// jsonPointerToPath turns "/tasks/0/status" into "tasks[0].status".
func jsonPointerToPath(ptr string) string {
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
