package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSink appends log output to a file so a run can be inspected after the
// terminal is gone.
type FileSink struct {
	file *os.File
}

// OpenFileSink creates (or reuses) the log file at path, creating parent dirs.
func OpenFileSink(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &FileSink{file: f}, nil
}

// Write implements io.Writer.
func (s *FileSink) Write(p []byte) (int, error) {
	if s == nil || s.file == nil {
		return len(p), nil
	}
	return s.file.Write(p)
}

// Close releases the file handle.
func (s *FileSink) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

// Tee returns a writer that copies to both w and the sink. A nil sink yields w.
func (s *FileSink) Tee(w io.Writer) io.Writer {
	if s == nil || s.file == nil {
		return w
	}
	return io.MultiWriter(w, s.file)
}
