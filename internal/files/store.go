package files

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Category selects the subdirectory an upload lands in.
type Category string

const (
	Submission Category = "submission"
	Timetable  Category = "timetable"
	Photo      Category = "photo"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Store keeps uploaded files on local disk, one subdirectory per category.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Save writes an upload under a fresh collision-resistant name and returns
// that name. The name prefixes the sanitized original with a millisecond
// timestamp and a random integer.
func (s *Store) Save(cat Category, originalName string, src io.Reader) (string, error) {
	dir := filepath.Join(s.root, string(cat))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s dir: %w", cat, err)
	}

	name := fmt.Sprintf("%d-%d-%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), sanitize(originalName))
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	return name, nil
}

// Remove deletes a stored file; a missing file is not an error.
func (s *Store) Remove(cat Category, name string) error {
	if err := os.Remove(s.Path(cat, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// Latest returns the name of the most recently modified file in the
// category, or "" when the directory is empty or missing. Dotfiles and
// subdirectories are ignored.
func (s *Store) Latest(cat Category) (string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, string(cat)))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("list %s dir: %w", cat, err)
	}

	var newest string
	var newestAt time.Time
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestAt) {
			newest, newestAt = e.Name(), info.ModTime()
		}
	}
	return newest, nil
}

// Open opens a stored file for reading.
func (s *Store) Open(cat Category, name string) (*os.File, error) {
	return os.Open(s.Path(cat, name))
}

// Path returns the on-disk location of a stored name. The name is reduced
// to its base so a crafted value cannot escape the category directory.
func (s *Store) Path(cat Category, name string) string {
	return filepath.Join(s.root, string(cat), filepath.Base(name))
}

// Root exposes the store root, for static file serving.
func (s *Store) Root() string { return s.root }

// OriginalName strips the timestamp and random prefix from a stored name,
// recovering the sanitized name the file was uploaded with.
func OriginalName(stored string) string {
	if parts := strings.SplitN(stored, "-", 3); len(parts) == 3 {
		return parts[2]
	}
	return stored
}

func sanitize(name string) string {
	return unsafeChars.ReplaceAllString(filepath.Base(name), "_")
}
