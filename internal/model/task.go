package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownTask = errors.New("model: unknown task code")

// TaskDefinition is one entry of the fixed daily challenge catalog.
type TaskDefinition struct {
	Code  string
	Label string
}

var catalog = []TaskDefinition{
	{Code: "pushups", Label: "100 Pushups"},
	{Code: "pullups", Label: "20 Pullups"},
	{Code: "squats", Label: "100 Squats"},
	{Code: "running", Label: "3km Run"},
	{Code: "reading", Label: "Read 20 Pages"},
	{Code: "meditation", Label: "10min Meditation"},
	{Code: "coding", Label: "1hr Deep Work"},
	{Code: "journaling", Label: "Evening Journal"},
}

// Catalog returns the task definitions in display order. The returned slice
// is a copy; callers may reorder it freely.
func Catalog() []TaskDefinition {
	out := make([]TaskDefinition, len(catalog))
	copy(out, catalog)
	return out
}

func CatalogSize() int {
	return len(catalog)
}

func KnownTask(code string) bool {
	for _, def := range catalog {
		if def.Code == code {
			return true
		}
	}
	return false
}

func TaskLabel(code string) string {
	for _, def := range catalog {
		if def.Code == code {
			return def.Label
		}
	}
	return code
}

func ResolveTask(code string) (TaskDefinition, error) {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	for _, def := range catalog {
		if def.Code == trimmed {
			return def, nil
		}
	}
	return TaskDefinition{}, fmt.Errorf("%w: %q", ErrUnknownTask, code)
}
