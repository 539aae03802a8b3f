package ui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"todoapp/internal/todo"
)

type handlerKey struct {
	role  todo.Role
	event todo.EventKind
	id    string
}

// termSurface holds the view the terminal shows and the handlers bound to
// it. The edit field stands in for the edit input of the editing row.
type termSurface struct {
	view     todo.View
	handlers map[handlerKey]todo.Handler
	edit     *textinput.Model
	active   todo.Filter
}

func newTermSurface(edit *textinput.Model) *termSurface {
	return &termSurface{
		handlers: map[handlerKey]todo.Handler{},
		edit:     edit,
	}
}

func (s *termSurface) Replace(v todo.View) {
	s.view = v
	s.handlers = map[handlerKey]todo.Handler{}
}

func (s *termSurface) Bind(b todo.Binding) {
	s.handlers[handlerKey{b.Role, b.Event, b.TaskID}] = b.Handle
}

func (s *termSurface) EditValue(string) string {
	return s.edit.Value()
}

func (s *termSurface) SetActive(f todo.Filter) {
	s.active = f
}

func (s *termSurface) bound(role todo.Role, kind todo.EventKind, id string) bool {
	_, ok := s.handlers[handlerKey{role, kind, id}]
	return ok
}

func (s *termSurface) dispatch(role todo.Role, kind todo.EventKind, id string, e todo.Event) bool {
	h, ok := s.handlers[handlerKey{role, kind, id}]
	if !ok {
		return false
	}
	e.Kind = kind
	h(e)
	return true
}

// addField is the new-task input.
type addField struct {
	ti *textinput.Model
}

func (f addField) Clear() {
	f.ti.SetValue("")
}

func (f addField) Focus() {
	f.ti.Focus()
}

// confirmGate answers the delete prompt. The terminal cannot block inside
// Update, so the y/n answer is collected first and the gate is armed right
// before the delete handler runs.
type confirmGate struct {
	armed bool
	asked []string
}

func (g *confirmGate) arm() {
	g.armed = true
}

func (g *confirmGate) Confirm(message string) bool {
	g.asked = append(g.asked, message)
	ok := g.armed
	g.armed = false
	return ok
}
