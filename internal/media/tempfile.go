package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/johnathanacortesd/johnascriber-sub000/models"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ScopedFile is a transient copy of an upload on disk. It is owned by exactly
// one request and must be released on every exit path.
type ScopedFile struct {
	dir  string
	path string

	once sync.Once
	err  error
}

// Stage writes the media bytes into a fresh directory under baseDir
// (the system temp dir when empty), keeping the original file name so the
// remote API can infer the container from its extension.
func Stage(baseDir string, in models.MediaInput) (*ScopedFile, error) {
	dir, err := os.MkdirTemp(baseDir, "johnascriber-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	sf := &ScopedFile{dir: dir, path: filepath.Join(dir, SafeFilename(in.Filename))}
	if err := os.WriteFile(sf.path, in.Data, 0o600); err != nil {
		sf.Release()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	return sf, nil
}

// Path is the location of the staged file.
func (s *ScopedFile) Path() string {
	return s.path
}

// Release deletes the staged file. It is safe to call more than once.
func (s *ScopedFile) Release() error {
	s.once.Do(func() {
		if err := os.RemoveAll(s.dir); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.err = fmt.Errorf("remove temp dir %s: %w", s.dir, err)
		}
	})
	return s.err
}

// SafeFilename strips directories and characters that do not belong in a file name.
func SafeFilename(name string) string {
	name = filepath.Base(filepath.Clean("/" + name))
	name = unsafeNameChars.ReplaceAllString(name, "_")
	if name == "" || name == "_" || name[0] == '.' {
		name = "upload" + name
	}
	return name
}
