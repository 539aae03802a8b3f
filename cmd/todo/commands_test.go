package main

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapp/internal/todo"
)

type cliHarness struct {
	t      *testing.T
	config string
}

func newCLIHarness(t *testing.T) *cliHarness {
	return &cliHarness{t: t, config: filepath.Join(t.TempDir(), "config.toml")}
}

func (h *cliHarness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(strings.NewReader(stdin), &out)
	argv := append([]string{"todo", "--config", h.config}, args...)
	err := cmd.Run(context.Background(), argv)
	return out.String(), err
}

func (h *cliHarness) mustRun(stdin string, args ...string) string {
	h.t.Helper()
	out, err := h.run(stdin, args...)
	require.NoError(h.t, err, out)
	return out
}

func TestCLIWorkflow(t *testing.T) {
	h := newCLIHarness(t)

	assert.Contains(t, h.mustRun("", "list"), todo.EmptyAllMessage)

	assert.Contains(t, h.mustRun("", "add", "Buy", "milk"), "Buy milk")
	h.mustRun("", "add", "Walk dog")

	out := h.mustRun("", "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "1. [ ] Walk dog")
	assert.Contains(t, lines[1], "2. [ ] Buy milk")

	assert.Contains(t, h.mustRun("", "done", "2"), "Buy milk: completed")
	out = h.mustRun("", "list", "--filter", "active")
	assert.Contains(t, out, "Walk dog")
	assert.NotContains(t, out, "Buy milk")

	out = h.mustRun("", "list", "--filter", "completed")
	assert.Contains(t, out, "2. [x] Buy milk")

	assert.Contains(t, h.mustRun("", "edit", "1", "Walk", "the", "dog"), "Walk the dog")

	assert.Contains(t, h.mustRun("n\n", "rm", "1"), "Kept")
	assert.Contains(t, h.mustRun("y\n", "rm", "1"), "Deleted")

	out = h.mustRun("", "list")
	assert.NotContains(t, out, "Walk the dog")
	assert.Contains(t, out, "1. [x] Buy milk")
}

func TestCLIRejectsBlankText(t *testing.T) {
	h := newCLIHarness(t)
	_, err := h.run("", "add", "  ")
	assert.ErrorIs(t, err, errTextEmpty)

	h.mustRun("", "add", "A")
	_, err = h.run("", "edit", "1", " ")
	assert.ErrorIs(t, err, errTextEmpty)
	assert.Contains(t, h.mustRun("", "list"), "[ ] A")
}

func TestCLIRemoveWithoutAnswerKeepsTask(t *testing.T) {
	h := newCLIHarness(t)
	h.mustRun("", "add", "A")
	assert.Contains(t, h.mustRun("", "rm", "1"), "Kept")
	assert.Contains(t, h.mustRun("", "rm", "--yes", "1"), "Deleted")
}

func TestCLIRenderPage(t *testing.T) {
	h := newCLIHarness(t)
	h.mustRun("", "add", "<b>bold</b>")

	out := h.mustRun("", "render")
	assert.Contains(t, out, "&lt;b&gt;bold&lt;/b&gt;")
	assert.Contains(t, out, `class="filter-btn active" data-filter="all"`)

	path := filepath.Join(t.TempDir(), "page.html")
	assert.Contains(t, h.mustRun("", "render", "--filter", "completed", "--out", path), "Wrote")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), todo.EmptyCompletedMessage)
}

func TestCLIBadReference(t *testing.T) {
	h := newCLIHarness(t)
	h.mustRun("", "add", "A")

	_, err := h.run("", "done", "5")
	assert.ErrorContains(t, err, "out of range")
	_, err = h.run("", "done")
	assert.ErrorIs(t, err, errRefRequired)
	_, err = h.run("", "rm", "--yes", "zzz")
	assert.ErrorContains(t, err, "no task matches")
}

func TestResolveRef(t *testing.T) {
	tasks := []todo.Task{{ID: "abc1"}, {ID: "abd2"}, {ID: "xyz"}}

	id, err := resolveRef(tasks, "2")
	require.NoError(t, err)
	assert.Equal(t, "abd2", id)

	id, err = resolveRef(tasks, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc1", id)

	_, err = resolveRef(tasks, "ab")
	assert.ErrorContains(t, err, "ambiguous")
	_, err = resolveRef(tasks, "0")
	assert.Error(t, err)
	_, err = resolveRef(tasks, " ")
	assert.ErrorIs(t, err, errRefRequired)
}

func TestLinePrompt(t *testing.T) {
	var out bytes.Buffer
	p := linePrompt{in: newReader("có\n"), out: &out}
	assert.True(t, p.Confirm(todo.DeleteConfirmMessage))
	assert.Contains(t, out.String(), todo.DeleteConfirmMessage)

	p = linePrompt{in: newReader(""), out: &out}
	assert.False(t, p.Confirm("?"))

	p = linePrompt{in: newReader(""), out: &out, assume: true}
	assert.True(t, p.Confirm("?"))
}

func newReader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}
