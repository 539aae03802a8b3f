package todo

import (
	"encoding/json"
	"fmt"
)

func Encode(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses a stored blob. Records with an empty id, blank text or an id
// already seen are dropped and counted in skipped.
func Decode(blob string) (tasks []Task, skipped int, err error) {
	var raw []Task
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, 0, fmt.Errorf("decode tasks: %w", err)
	}
	seen := make(map[string]struct{}, len(raw))
	tasks = make([]Task, 0, len(raw))
	for _, t := range raw {
		text, ok := NormalizeText(t.Text)
		if t.ID == "" || !ok {
			skipped++
			continue
		}
		if _, dup := seen[t.ID]; dup {
			skipped++
			continue
		}
		seen[t.ID] = struct{}{}
		t.Text = text
		tasks = append(tasks, t)
	}
	return tasks, skipped, nil
}
