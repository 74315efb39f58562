// Package storage persists the task collection as one JSON file.
//
// Every Load reads the whole file and every Save replaces it. Save writes
// to a temporary file in the target's directory and renames it over the
// target, so a reader sees either the old or the new content, never a
// partial write. There is no locking: two processes that load, modify and
// save concurrently race at the rename and the last writer wins.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/todo"
)

// FileMode is the permission of a saved task file.
const FileMode fs.FileMode = 0o644

// Store reads and writes the task file at a fixed path.
type Store struct {
	path   string
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a Store backed by path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns every task in file order. A missing file is the first-run
// state and yields an empty slice. A file that does not decode yields a
// *CorruptedError and is left as is.
func (s *Store) Load() ([]todo.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("task file not found, starting empty", "path", s.path)
			return []todo.Task{}, nil
		}
		return nil, &ReadError{Path: s.path, Err: err}
	}

	tasks, err := decode(data)
	if err != nil {
		return nil, &CorruptedError{Path: s.path, Err: err}
	}

	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks, nil
}

// Save replaces the task file with tasks. On failure the temporary file is
// removed and a *WriteError is returned; the previous file is unchanged.
func (s *Store) Save(tasks []todo.Task) error {
	data, err := encode(tasks)
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	if err := writeAtomic(s.path, data); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	s.logger.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

func decode(data []byte) ([]todo.Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("file is empty")
	}
	var tasks []todo.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []todo.Task{}
	}
	return tasks, nil
}

// encode renders tasks with 2-space indentation and a trailing newline.
// An empty collection is written as [] rather than null.
func encode(tasks []todo.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return buf.Bytes(), nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Chmod(FileMode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}
