// Package artifact owns the files photopages produces: biography texts and
// JSON data files, written through an afero filesystem so tests can run
// against memory.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// State captures whether an output exists on disk.
type State string

const (
	StateMissing State = "missing"
	StateReady   State = "ready"
	StateInvalid State = "invalid"
)

// Store manages artifact IO rooted at a directory.
type Store struct {
	fs   afero.Fs
	root string
}

// NewStore builds a store over fsys rooted at root. Relative paths passed to
// the store resolve against root; absolute paths are used as given.
func NewStore(fsys afero.Fs, root string) *Store {
	return &Store{fs: fsys, root: filepath.Clean(root)}
}

// NewOsStore builds a store on the real filesystem.
func NewOsStore(root string) *Store {
	return NewStore(afero.NewOsFs(), root)
}

// Path resolves rel against the store root.
func (s *Store) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(s.root, rel)
}

// WriteBiography writes text to "<root>/<name>.txt". The name is used
// verbatim, so a later person with the same name replaces the file.
func (s *Store) WriteBiography(name, text string) error {
	return s.WriteFile(name+".txt", []byte(text))
}

// WriteFile writes data to rel, creating parent directories.
func (s *Store) WriteFile(rel string, data []byte) error {
	path := s.Path(rel)
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("artifact: ensure dir for %s: %w", path, err)
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("artifact: write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads rel from the store.
func (s *Store) ReadFile(rel string) ([]byte, error) {
	path := s.Path(rel)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("artifact: read %s: %w", path, err)
	}
	return data, nil
}

// Check reports whether rel exists as a regular file.
func (s *Store) Check(rel string) (State, error) {
	info, err := s.fs.Stat(s.Path(rel))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return StateMissing, nil
		}
		return StateInvalid, err
	}
	if info.IsDir() {
		return StateInvalid, fmt.Errorf("artifact: expected file got directory at %s", s.Path(rel))
	}
	return StateReady, nil
}
