// Package importer loads a JSON schedule file and applies it to a timeline.
package importer

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"astronaut-schedule/internal/domain"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schedule.schema.json
var schemaJSON string

const schemaURL = "https://astronaut-schedule.local/schedule.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

type Entry struct {
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Priority    string `json:"priority"`
}

type File struct {
	Tasks []Entry `json:"tasks"`
}

// SchemaError points at the first part of the document that breaks the schema.
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// EntryError records why one entry was not added.
type EntryError struct {
	Index       int
	Description string
	Err         error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("tasks[%d] %q: %v", e.Index, e.Description, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

type Result struct {
	Added  []domain.Task
	Failed []*EntryError
}

type TaskCreator interface {
	CreateTask(description, start, end, priority string) (domain.Task, error)
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule file: %w", err)
	}
	return Parse(data)
}

// Parse validates data against the schedule schema before decoding it.
func Parse(data []byte) (*File, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse schedule file: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, toSchemaError(err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse schedule file: %w", err)
	}
	return &f, nil
}

// Apply adds entries in file order. A failing entry is recorded and the rest still run.
func Apply(svc TaskCreator, f *File) Result {
	var res Result
	for i, e := range f.Tasks {
		task, err := svc.CreateTask(e.Description, e.Start, e.End, e.Priority)
		if err != nil {
			res.Failed = append(res.Failed, &EntryError{Index: i, Description: e.Description, Err: err})
			continue
		}
		res.Added = append(res.Added, task)
	}
	return res
}

func toSchemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &SchemaError{Message: err.Error()}
	}

	// leaf causes carry the useful message
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &SchemaError{Path: ve.InstanceLocation, Message: ve.Message}
}
