package todo

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"todoapp/internal/storage"
)

// Store persists the encoded task list.
type Store interface {
	Load() storage.Result
	Save(blob string) storage.Result
}

// Surface shows a View. Replace drops every handler bound to the previous
// view; Bind attaches one to the current view. EditValue returns the text
// currently typed into the edit input of the given task.
type Surface interface {
	Replace(v View)
	Bind(b Binding)
	EditValue(id string) string
}

// Prompt asks a yes/no question and blocks until it is answered.
type Prompt interface {
	Confirm(message string) bool
}

// Input is the new-task text field.
type Input interface {
	Clear()
	Focus()
}

// FilterControls mark which filter control is active.
type FilterControls interface {
	SetActive(f Filter)
}

// State is everything the controller owns.
type State struct {
	Tasks     []Task
	Filter    Filter
	EditingID string
}

type Options struct {
	Store          Store
	Surface        Surface
	Prompt         Prompt
	Input          Input
	FilterControls FilterControls
	Logger         *log.Logger
	Now            func() time.Time
	NewID          func() string
}

type Controller struct {
	state   State
	store   Store
	surface Surface
	prompt  Prompt
	input   Input
	filters FilterControls
	logger  *log.Logger
	now     func() time.Time
	newID   func() string
}

// New loads the task list from the store and renders it once.
func New(opts Options) *Controller {
	c := &Controller{
		state:   State{Filter: FilterAll},
		store:   opts.Store,
		surface: opts.Surface,
		prompt:  opts.Prompt,
		input:   opts.Input,
		filters: opts.FilterControls,
		logger:  opts.Logger,
		now:     opts.Now,
		newID:   opts.NewID,
	}
	if c.surface == nil {
		c.surface = nopSurface{}
	}
	if c.prompt == nil {
		c.prompt = denyPrompt{}
	}
	if c.input == nil {
		c.input = nopInput{}
	}
	if c.filters == nil {
		c.filters = nopFilters{}
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = NewID
	}

	c.state.Tasks = c.load()
	c.filters.SetActive(c.state.Filter)
	c.Render()
	return c
}

func (c *Controller) load() []Task {
	if c.store == nil {
		return []Task{}
	}
	res := c.store.Load()
	if !res.Found || res.Value == "" {
		return []Task{}
	}
	tasks, skipped, err := Decode(res.Value)
	if err != nil {
		c.logger.Error("stored tasks are unreadable, starting empty", "source", res.Source, "err", err)
		return []Task{}
	}
	if skipped > 0 {
		c.logger.Warn("dropped invalid stored tasks", "skipped", skipped)
	}
	c.logger.Debug("tasks loaded", "count", len(tasks), "source", res.Source)
	return tasks
}

func (c *Controller) persist() {
	if c.store == nil {
		return
	}
	blob, err := Encode(c.state.Tasks)
	if err != nil {
		c.logger.Error("encode tasks", "err", err)
		return
	}
	res := c.store.Save(blob)
	if res.Source != storage.SourcePrimary {
		c.logger.Warn("tasks not saved to store", "source", res.Source, "err", res.Err)
	}
}

func (c *Controller) indexOf(id string) int {
	return slices.IndexFunc(c.state.Tasks, func(t Task) bool { return t.ID == id })
}

// Create prepends a new task built from raw. Blank input only refocuses the
// input.
func (c *Controller) Create(raw string) (Task, bool) {
	text, ok := NormalizeText(raw)
	if !ok {
		c.input.Focus()
		return Task{}, false
	}
	t := Task{
		ID:        c.newID(),
		Text:      text,
		CreatedAt: FormatTime(c.now()),
	}
	c.state.Tasks = slices.Insert(c.state.Tasks, 0, t)
	c.input.Clear()
	c.persist()
	c.Render()
	c.input.Focus()
	return t, true
}

// Remove deletes the task after the prompt confirms it.
func (c *Controller) Remove(id string) bool {
	if !c.prompt.Confirm(DeleteConfirmMessage) {
		return false
	}
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.state.Tasks = slices.Delete(c.state.Tasks, i, i+1)
	if c.state.EditingID == id {
		c.state.EditingID = ""
	}
	c.persist()
	c.Render()
	return true
}

func (c *Controller) ToggleComplete(id string) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.state.Tasks[i].Completed = !c.state.Tasks[i].Completed
	c.persist()
	c.Render()
}

// BeginEdit puts id in edit mode. An edit already open elsewhere is dropped
// without saving.
func (c *Controller) BeginEdit(id string) {
	c.state.EditingID = id
	c.Render()
}

// CommitEdit saves text into the task. Blank text keeps the edit open.
func (c *Controller) CommitEdit(id, text string) bool {
	text, ok := NormalizeText(text)
	if !ok {
		return false
	}
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.state.Tasks[i].Text = text
	c.state.EditingID = ""
	c.persist()
	c.Render()
	return true
}

func (c *Controller) CancelEdit() {
	c.state.EditingID = ""
	c.Render()
}

// SetFilter accepts any name; unrecognized ones render as FilterAll.
func (c *Controller) SetFilter(name string) {
	c.state.Filter = Filter(name)
	c.filters.SetActive(c.state.Filter)
	c.Render()
}

// Render replaces the surface content with the current view and binds
// fresh handlers to it.
func (c *Controller) Render() View {
	v := BuildView(c.state)
	c.surface.Replace(v)
	for _, b := range c.bindings(v) {
		c.surface.Bind(b)
	}
	return v
}

func (c *Controller) bindings(v View) []Binding {
	var out []Binding
	for _, r := range v.Rows {
		id := r.ID
		if r.Editing {
			out = append(out,
				Binding{Role: RoleSaveButton, Event: EventClick, TaskID: id, Handle: func(Event) {
					c.CommitEdit(id, c.surface.EditValue(id))
				}},
				Binding{Role: RoleCancelButton, Event: EventClick, TaskID: id, Handle: func(Event) {
					c.CancelEdit()
				}},
				Binding{Role: RoleEditInput, Event: EventKeyPress, TaskID: id, Handle: func(e Event) {
					if e.Key == "Enter" {
						c.CommitEdit(id, e.Value)
					}
				}},
				Binding{Role: RoleEditInput, Event: EventKeyDown, TaskID: id, Handle: func(e Event) {
					if e.Key == "Escape" {
						c.CancelEdit()
					}
				}},
			)
			continue
		}
		out = append(out,
			Binding{Role: RoleCheckbox, Event: EventChange, TaskID: id, Handle: func(Event) {
				c.ToggleComplete(id)
			}},
			Binding{Role: RoleDeleteButton, Event: EventClick, TaskID: id, Handle: func(Event) {
				c.Remove(id)
			}},
		)
		if !r.EditDisabled() {
			out = append(out, Binding{Role: RoleEditButton, Event: EventClick, TaskID: id, Handle: func(Event) {
				c.BeginEdit(id)
			}})
		}
	}
	return out
}

// Tasks returns a copy of the list, newest first.
func (c *Controller) Tasks() []Task {
	return slices.Clone(c.state.Tasks)
}

func (c *Controller) Task(id string) (Task, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return c.state.Tasks[i], true
}

func (c *Controller) Filter() Filter {
	return c.state.Filter
}

func (c *Controller) EditingID() string {
	return c.state.EditingID
}

// State returns a copy of the controller state.
func (c *Controller) State() State {
	s := c.state
	s.Tasks = slices.Clone(s.Tasks)
	return s
}

type nopSurface struct{}

func (nopSurface) Replace(View)            {}
func (nopSurface) Bind(Binding)            {}
func (nopSurface) EditValue(string) string { return "" }

type denyPrompt struct{}

func (denyPrompt) Confirm(string) bool { return false }

type nopInput struct{}

func (nopInput) Clear() {}
func (nopInput) Focus() {}

type nopFilters struct{}

func (nopFilters) SetActive(Filter) {}
