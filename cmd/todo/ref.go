package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todoapp/internal/todo"
)

var (
	errRefRequired = errors.New("task reference required")
	errTextEmpty   = errors.New("task text is empty")
)

// resolveRef maps a 1-based position in the full list, or a unique id
// prefix, to a task id.
func resolveRef(tasks []todo.Task, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errRefRequired
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(tasks) {
			return "", fmt.Errorf("task number out of range: %d", n)
		}
		return tasks[n-1].ID, nil
	}

	var match string
	for _, t := range tasks {
		if !strings.HasPrefix(t.ID, ref) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("ambiguous task reference: %s", ref)
		}
		match = t.ID
	}
	if match == "" {
		return "", fmt.Errorf("no task matches: %s", ref)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
