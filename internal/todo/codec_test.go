package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeKeepsOrderAndFields(t *testing.T) {
	in := []Task{
		{ID: "c", Text: "third <b>", Completed: true, CreatedAt: "2024-03-01T10:00:00.000Z"},
		{ID: "b", Text: "second \"quoted\"", CreatedAt: "2024-02-01T10:00:00.000Z"},
		{ID: "a", Text: "first", CreatedAt: "2024-01-01T10:00:00.000Z"},
	}
	blob, err := Encode(in)
	require.NoError(t, err)
	assert.Contains(t, blob, `"createdAt":"2024-03-01T10:00:00.000Z"`)

	out, skipped, err := Decode(blob)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, in, out)
}

func TestEncodeNilIsEmptyArray(t *testing.T) {
	blob, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", blob)
}

func TestDecodeDropsInvalidRecords(t *testing.T) {
	blob := `[
{"id":"a","text":"ok","completed":false,"createdAt":"x"},
{"id":"","text":"no id"},
{"id":"b","text":"   "},
{"id":"a","text":"dup"},
{"id":"c","text":"  padded  "}
]`
	out, skipped, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, out, 2)
	assert.Equal(t, "ok", out[0].Text)
	assert.Equal(t, "padded", out[1].Text)
}

func TestDecodeMalformed(t *testing.T) {
	for _, blob := range []string{"{", `{"id":"a"}`, "nope"} {
		_, _, err := Decode(blob)
		assert.Error(t, err, blob)
	}
	out, _, err := Decode("null")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestNormalizeText(t *testing.T) {
	text, ok := NormalizeText("  hi  ")
	assert.True(t, ok)
	assert.Equal(t, "hi", text)

	_, ok = NormalizeText(" \t ")
	assert.False(t, ok)
}

func TestNewIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestFilterApplyAndNext(t *testing.T) {
	tasks := []Task{
		{ID: "1", Text: "a", Completed: true},
		{ID: "2", Text: "b"},
		{ID: "3", Text: "c", Completed: true},
	}
	assert.Len(t, FilterAll.Apply(tasks), 3)
	assert.Len(t, Filter("other").Apply(tasks), 3)
	assert.Equal(t, []Task{tasks[1]}, FilterActive.Apply(tasks))
	assert.Equal(t, []Task{tasks[0], tasks[2]}, FilterCompleted.Apply(tasks))

	assert.Equal(t, FilterActive, FilterAll.Next())
	assert.Equal(t, FilterAll, FilterCompleted.Next())
	assert.Equal(t, FilterAll, Filter("x").Next())
	assert.False(t, Filter("x").Valid())
	assert.Equal(t, EmptyAllMessage, Filter("x").EmptyMessage())
}

func TestBuildViewMarksEditingRow(t *testing.T) {
	s := State{
		Tasks:     []Task{{ID: "1", Text: "a"}, {ID: "2", Text: "b", Completed: true}},
		Filter:    FilterAll,
		EditingID: "2",
	}
	v := BuildView(s)
	require.Len(t, v.Rows, 2)
	assert.False(t, v.Rows[0].Editing)
	assert.True(t, v.Rows[1].Editing)
	assert.True(t, v.Rows[1].EditDisabled())
	assert.Empty(t, v.Empty)

	s.Filter = FilterActive
	s.Tasks = s.Tasks[1:]
	v = BuildView(s)
	assert.True(t, v.IsEmpty())
	assert.Equal(t, EmptyActiveMessage, v.Empty)
}
