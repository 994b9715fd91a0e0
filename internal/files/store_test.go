package files

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSanitizesName(t *testing.T) {
	store := NewStore(t.TempDir())

	name, err := store.Save(Photo, "my photo (1).png", strings.NewReader("img"))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d+-\d+-my_photo__1_.png$`), name)

	data, err := os.ReadFile(store.Path(Photo, name))
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))
}

func TestSaveRejectsPathTraversal(t *testing.T) {
	store := NewStore(t.TempDir())

	name, err := store.Save(Submission, "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, name, "/")
	assert.FileExists(t, filepath.Join(store.Root(), string(Submission), name))
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := NewStore(t.TempDir())
	name, err := store.Save(Timetable, "plan.csv", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(Timetable, name))
	require.NoError(t, store.Remove(Timetable, name))
}

func TestLatestOnMissingOrEmptyDir(t *testing.T) {
	store := NewStore(t.TempDir())

	name, err := store.Latest(Timetable)
	require.NoError(t, err)
	assert.Empty(t, name)

	require.NoError(t, os.MkdirAll(filepath.Join(store.Root(), string(Timetable)), 0o755))
	name, err = store.Latest(Timetable)
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestLatestPicksNewestAndSkipsDotfiles(t *testing.T) {
	store := NewStore(t.TempDir())

	older, err := store.Save(Timetable, "week1.csv", strings.NewReader("a"))
	require.NoError(t, err)
	newer, err := store.Save(Timetable, "week2.csv", strings.NewReader("b"))
	require.NoError(t, err)

	// pin mtimes so the ordering does not depend on clock resolution
	now := time.Now()
	require.NoError(t, os.Chtimes(store.Path(Timetable, older), now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(store.Path(Timetable, newer), now, now))

	dotfile := filepath.Join(store.Root(), string(Timetable), ".keep")
	require.NoError(t, os.WriteFile(dotfile, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(dotfile, now.Add(time.Hour), now.Add(time.Hour)))

	name, err := store.Latest(Timetable)
	require.NoError(t, err)
	assert.Equal(t, newer, name)
}

func TestOriginalName(t *testing.T) {
	assert.Equal(t, "report.pdf", OriginalName("1700000000000-42-report.pdf"))
	assert.Equal(t, "a-b.txt", OriginalName("1700000000000-42-a-b.txt"))
	assert.Equal(t, "plain.txt", OriginalName("plain.txt"))
}
