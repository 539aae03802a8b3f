package todo

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the recognized values in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// Apply returns the tasks visible under f, keeping list order. Unrecognized
// filters show everything.
func (f Filter) Apply(tasks []Task) []Task {
	switch f {
	case FilterActive:
		return selectTasks(tasks, func(t Task) bool { return !t.Completed })
	case FilterCompleted:
		return selectTasks(tasks, func(t Task) bool { return t.Completed })
	default:
		return tasks
	}
}

func (f Filter) EmptyMessage() string {
	switch f {
	case FilterActive:
		return EmptyActiveMessage
	case FilterCompleted:
		return EmptyCompletedMessage
	default:
		return EmptyAllMessage
	}
}

// Next cycles through Filters; unrecognized values move to FilterAll.
func (f Filter) Next() Filter {
	for i, v := range Filters {
		if v == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

func selectTasks(tasks []Task, keep func(Task) bool) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
