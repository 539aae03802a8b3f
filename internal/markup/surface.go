package markup

import (
	"github.com/charmbracelet/log"

	"todoapp/internal/todo"
)

type handlerKey struct {
	role  todo.Role
	event todo.EventKind
	id    string
}

// Surface keeps the markup of the last rendered view together with the
// handlers bound to it. Replacing the markup discards every handler.
type Surface struct {
	logger   *log.Logger
	view     todo.View
	fragment string
	handlers map[handlerKey]todo.Handler
	edits    map[string]string

	input   string
	focused bool
	active  todo.Filter
}

func NewSurface(logger *log.Logger) *Surface {
	if logger == nil {
		logger = log.Default()
	}
	return &Surface{
		logger:   logger,
		handlers: map[handlerKey]todo.Handler{},
		edits:    map[string]string{},
	}
}

func (s *Surface) Replace(v todo.View) {
	fragment, err := Fragment(v)
	if err != nil {
		s.logger.Error("render fragment", "err", err)
		fragment = ""
	}
	s.view = v
	s.fragment = fragment
	s.handlers = map[handlerKey]todo.Handler{}
	s.edits = map[string]string{}
	for _, r := range v.Rows {
		if r.Editing {
			s.edits[r.ID] = r.Text
		}
	}
}

func (s *Surface) Bind(b todo.Binding) {
	s.handlers[handlerKey{b.Role, b.Event, b.TaskID}] = b.Handle
}

func (s *Surface) EditValue(id string) string {
	return s.edits[id]
}

// SetEditValue types text into the edit input of id, if it is rendered.
func (s *Surface) SetEditValue(id, text string) bool {
	if _, ok := s.edits[id]; !ok {
		return false
	}
	s.edits[id] = text
	return true
}

// Dispatch fires the handler bound to the element and reports whether there
// was one. Key events on an edit input carry its current text.
func (s *Surface) Dispatch(role todo.Role, kind todo.EventKind, id string, e todo.Event) bool {
	h, ok := s.handlers[handlerKey{role, kind, id}]
	if !ok {
		s.logger.Debug("no handler", "role", role, "event", kind, "id", id)
		return false
	}
	e.Kind = kind
	if role == todo.RoleEditInput && e.Value == "" {
		e.Value = s.edits[id]
	}
	h(e)
	return true
}

func (s *Surface) Bound() int {
	return len(s.handlers)
}

func (s *Surface) View() todo.View {
	return s.view
}

func (s *Surface) Fragment() string {
	return s.fragment
}

// Page renders the whole document for the current view.
func (s *Surface) Page() (string, error) {
	return Page(s.view)
}

func (s *Surface) Clear() {
	s.input = ""
}

func (s *Surface) Focus() {
	s.focused = true
}

func (s *Surface) SetInput(text string) {
	s.input = text
	s.focused = false
}

func (s *Surface) InputValue() string {
	return s.input
}

func (s *Surface) Focused() bool {
	return s.focused
}

func (s *Surface) SetActive(f todo.Filter) {
	s.active = f
}

// Active reports which filter control carries the active marker; none is
// marked for an unrecognized filter.
func (s *Surface) Active() (todo.Filter, bool) {
	return s.active, s.active.Valid()
}
