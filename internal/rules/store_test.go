package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "nested", "rules.yaml"))
}

func TestListMissingFile(t *testing.T) {
	got, err := newStore(t).List()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAddListRemove(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Add("use imperative mood"))
	require.NoError(t, s.Add("  mention the ticket id  "))
	require.NoError(t, s.Add("Use Imperative Mood"))
	assert.ErrorIs(t, s.Add("   "), ErrEmptyRule)

	got, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"use imperative mood", "mention the ticket id"}, got)

	removed, err := s.Remove(0)
	require.NoError(t, err)
	assert.Equal(t, "use imperative mood", removed)

	_, err = s.Remove(5)
	assert.ErrorIs(t, err, ErrRuleNotFound)

	got, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"mention the ticket id"}, got)

	require.NoError(t, s.Clear())
	got, err = s.List()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileFormat(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Add("no emoji"))

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, "rules:\n    - no emoji\n", string(data))
}

func TestListSkipsBlankEntries(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path), 0o755))
	require.NoError(t, os.WriteFile(s.Path, []byte("rules:\n  - a\n  - ''\n  - ' b '\n"), 0o644))

	got, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestListInvalidYAML(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path), 0o755))
	require.NoError(t, os.WriteFile(s.Path, []byte("rules: [unterminated"), 0o644))

	_, err := s.List()
	assert.Error(t, err)
}
