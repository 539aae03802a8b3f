package storage

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBackend struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingBackend) Get(string) (string, bool, error) {
	return "", false, f.getErr
}

func (f *failingBackend) Set(string, string) error {
	f.sets++
	return f.setErr
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestSQLiteRoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todo.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, ok, err := s.Get(DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(DefaultKey, `[{"id":"a"}]`))
	require.NoError(t, s.Set(DefaultKey, `[{"id":"b"}]`))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get(DefaultKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"b"}]`, v)

	require.NoError(t, s.Delete(DefaultKey))
	_, ok, err = s.Get(DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteClosed(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "todo.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, _, err = s.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Set("k", "v"), ErrClosed)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:memdb?mode=memory", sqliteDSN("file:memdb?mode=memory"))
	dsn := sqliteDSN("/tmp/todo.db")
	assert.Contains(t, dsn, "file:///tmp/todo.db")
	assert.Contains(t, dsn, "mode=rwc")
}

func TestPersisterPrimary(t *testing.T) {
	mem := NewMemory()
	p := NewPersister(mem, "", quietLogger())
	assert.Equal(t, DefaultKey, p.Key())

	res := p.Load()
	assert.Equal(t, SourcePrimary, res.Source)
	assert.False(t, res.Found)

	res = p.Save("[]")
	assert.True(t, res.OK())
	assert.NoError(t, res.Err)

	res = p.Load()
	assert.True(t, res.Found)
	assert.Equal(t, "[]", res.Value)
	assert.Equal(t, SourcePrimary, res.Source)
}

func TestPersisterFallsBackOnSaveFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	primary := &failingBackend{setErr: boom, getErr: boom}
	p := NewPersister(primary, "k", quietLogger())

	res := p.Save(`["x"]`)
	assert.Equal(t, 1, primary.sets)
	assert.Equal(t, SourceFallback, res.Source)
	assert.ErrorIs(t, res.Err, boom)
	assert.True(t, res.OK())

	res = p.Load()
	assert.Equal(t, SourceFallback, res.Source)
	assert.True(t, res.Found)
	assert.Equal(t, `["x"]`, res.Value)
	assert.ErrorIs(t, res.Err, boom)
}

func TestPersisterLoadFailureWithEmptyFallback(t *testing.T) {
	p := NewPersister(&failingBackend{getErr: errors.New("locked")}, "k", quietLogger())
	res := p.Load()
	assert.False(t, res.Found)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Error(t, res.Err)
}

func TestPersisterWithoutPrimary(t *testing.T) {
	p := NewPersister(nil, "k", quietLogger())
	res := p.Save("blob")
	assert.Equal(t, SourceFallback, res.Source)
	assert.NoError(t, res.Err)
	assert.Equal(t, "blob", p.Load().Value)
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "primary", SourcePrimary.String())
	assert.Equal(t, "fallback", SourceFallback.String())
	assert.Equal(t, "none", SourceNone.String())
}
