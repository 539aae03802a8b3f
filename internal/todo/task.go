// Package todo holds the task list state and the controller that mutates it
// and keeps a rendering surface in sync.
package todo

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxTextLength caps task text, counted in runes.
const MaxTextLength = 200

// TimeLayout is the ISO-8601 form used for CreatedAt.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

// NormalizeText trims raw and caps it at MaxTextLength runes. ok is false
// when nothing but whitespace was given.
func NormalizeText(raw string) (text string, ok bool) {
	text = strings.TrimSpace(raw)
	if text == "" {
		return "", false
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		text = strings.TrimSpace(string([]rune(text)[:MaxTextLength]))
	}
	return text, true
}

func NewID() string {
	return uuid.NewString()
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
