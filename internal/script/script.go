package script

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"bookservice/internal/validation"

	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoYAML []byte

const (
	OpCreate = "create"
	OpGet    = "get"
	OpList   = "list"
	OpDelete = "delete"
)

// Script is an ordered list of catalog operations.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps" validate:"min=1,dive"`
}

// Step is a single operation. Only the fields relevant to Op are read.
type Step struct {
	Op     string  `yaml:"op" validate:"oneof=create get list delete"`
	Title  string  `yaml:"title,omitempty"`
	Author string  `yaml:"author,omitempty"`
	ID     string  `yaml:"id,omitempty"`
	Search string  `yaml:"search,omitempty"`
	SortBy string  `yaml:"sort_by,omitempty"`
	Desc   bool    `yaml:"desc,omitempty"`
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect holds optional assertions checked after a step runs. Error is a
// substring the step's error must contain; when it is empty and any other
// expectation is set, the step must succeed.
type Expect struct {
	ID      string   `yaml:"id,omitempty"`
	Title   string   `yaml:"title,omitempty"`
	Author  string   `yaml:"author,omitempty"`
	Count   *int     `yaml:"count,omitempty"`
	IDs     []string `yaml:"ids,omitempty"`
	Found   *bool    `yaml:"found,omitempty"`
	Deleted *bool    `yaml:"deleted,omitempty"`
	Error   string   `yaml:"error,omitempty"`
}

// ParseError reports a script that could not be decoded or validated.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "invalid script: " + e.Reason
}

func (e *ParseError) Code() string {
	return "INVALID_SCRIPT"
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(r io.Reader) (Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Script{}, &ParseError{Reason: "empty document"}
		}
		return Script{}, &ParseError{Reason: err.Error()}
	}

	if details := validation.ValidateStruct(s); len(details) > 0 {
		msgs := make([]string, 0, len(details))
		for _, d := range details {
			msgs = append(msgs, d.Message)
		}
		return Script{}, &ParseError{Reason: strings.Join(msgs, "; ")}
	}
	return s, nil
}

// Load reads a script from a file.
func Load(path string) (Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return Script{}, err
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Demo returns the built-in walkthrough script.
func Demo() Script {
	s, err := Parse(bytes.NewReader(demoYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded demo script: %v", err))
	}
	return s
}
