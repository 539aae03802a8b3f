// Package markup renders views as HTML and provides a retained surface that
// dispatches DOM-style events to the handlers bound to the current markup.
package markup

import (
	"html/template"
	"strings"

	"todoapp/internal/todo"
)

const fragmentTmpl = `{{define "item"}}{{if .Editing}}
<div class="todo__item">
    <input type="checkbox" class="todo-checkbox"{{if .Completed}} checked{{end}} disabled>
    <input type="text" class="edit-input" value="{{.Text}}" data-id="{{.ID}}" maxlength="{{maxlen}}">
    <div class="todo-actions">
        <button class="btn btn-success save-btn" data-id="{{.ID}}">{{label "save"}}</button>
        <button class="btn btn-warning cancel-btn">{{label "cancel"}}</button>
    </div>
</div>{{else}}
<div class="todo__item{{if .Completed}} completed{{end}} new-item">
    <div class="todo-main">
        <input type="checkbox" class="todo-checkbox"{{if .Completed}} checked{{end}} data-id="{{.ID}}">
        <span class="todo-text" data-id="{{.ID}}">{{.Text}}</span>
    </div>
    <div class="todo-actions">
        <button class="btn btn-warning edit-btn" data-id="{{.ID}}"{{if .EditDisabled}} disabled{{end}}>{{label "edit"}}</button>
        <button class="btn btn-danger delete-btn" data-id="{{.ID}}">{{label "delete"}}</button>
    </div>
</div>{{end}}{{end}}
{{define "list"}}{{if .IsEmpty}}<div class="empty-state">
    <div style="font-size: 0.9rem; margin-bottom: 20px;"><h3>{{.Empty}}</h3></div>
</div>{{else}}{{range .Rows}}{{template "item" .}}{{end}}{{end}}{{end}}
{{define "page"}}<!DOCTYPE html>
<html lang="vi">
<head>
<meta charset="utf-8">
<title>Todo</title>
</head>
<body>
<div class="todo">
    <div class="todo__form">
        <input type="text" id="todoInput" maxlength="{{maxlen}}">
        <button id="addBtn">+</button>
    </div>
    <div class="filters">{{range filters}}
        <button class="filter-btn{{if eq . $.Filter}} active{{end}}" data-filter="{{.}}">{{.}}</button>{{end}}
    </div>
    <div id="todoList">{{template "list" .}}</div>
</div>
</body>
</html>
{{end}}`

var templates = template.Must(template.New("markup").Funcs(template.FuncMap{
	"maxlen":  func() int { return todo.MaxTextLength },
	"filters": func() []todo.Filter { return todo.Filters },
	"label": func(name string) string {
		switch name {
		case "save":
			return todo.SaveLabel
		case "cancel":
			return todo.CancelLabel
		case "edit":
			return todo.EditLabel
		default:
			return todo.DeleteLabel
		}
	},
}).Parse(fragmentTmpl))

// Fragment renders the children of the task list container.
func Fragment(v todo.View) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, "list", v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Page renders a standalone document with the filter controls marked for
// v.Filter.
func Page(v todo.View) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, "page", v); err != nil {
		return "", err
	}
	return b.String(), nil
}
