package todo

// Role names an interactive element of a rendered row.
type Role string

const (
	RoleCheckbox     Role = "checkbox"
	RoleText         Role = "text"
	RoleEditButton   Role = "edit-button"
	RoleDeleteButton Role = "delete-button"
	RoleSaveButton   Role = "save-button"
	RoleCancelButton Role = "cancel-button"
	RoleEditInput    Role = "edit-input"
)

type EventKind string

const (
	EventClick    EventKind = "click"
	EventChange   EventKind = "change"
	EventKeyPress EventKind = "keypress"
	EventKeyDown  EventKind = "keydown"
)

// Event is what a surface passes to a bound handler. Key is set for key
// events, Value carries the element's current text where it has one.
type Event struct {
	Kind  EventKind
	Key   string
	Value string
}

type Handler func(Event)

// Binding attaches a handler to the element with the given role and task id.
type Binding struct {
	Role   Role
	Event  EventKind
	TaskID string
	Handle Handler
}

type Row struct {
	ID        string
	Text      string
	Completed bool
	Editing   bool
}

// EditDisabled reports whether the row's edit button is inert.
func (r Row) EditDisabled() bool {
	return r.Completed
}

// View is a full description of what the surface shows. Empty is set
// exactly when Rows is empty.
type View struct {
	Filter Filter
	Rows   []Row
	Empty  string
}

func (v View) IsEmpty() bool {
	return len(v.Rows) == 0
}

// BuildView computes the view of s without side effects.
func BuildView(s State) View {
	visible := s.Filter.Apply(s.Tasks)
	v := View{Filter: s.Filter}
	if len(visible) == 0 {
		v.Empty = s.Filter.EmptyMessage()
		return v
	}
	v.Rows = make([]Row, 0, len(visible))
	for _, t := range visible {
		v.Rows = append(v.Rows, Row{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Editing:   s.EditingID != "" && s.EditingID == t.ID,
		})
	}
	return v
}
