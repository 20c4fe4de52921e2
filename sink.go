package multiform

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
)

// FileSink stores the contents of uploaded files. Store allocates a new,
// uniquely named location, writes body to it and returns the location and
// the number of bytes stored. When the write fails Store should still return
// the location it allocated, if any.
//
// A FileSink is shared by every decode made with the same [Decoder] and must
// be safe for concurrent use.
type FileSink interface {
	Store(ctx context.Context, body []byte) (path string, size int64, err error)
}

// SinkFunc adapts an ordinary function to the [FileSink] interface.
type SinkFunc func(ctx context.Context, body []byte) (string, int64, error)

// Store calls f(ctx, body).
func (f SinkFunc) Store(ctx context.Context, body []byte) (string, int64, error) {
	return f(ctx, body)
}

// TempDirSink writes each upload to a new file created with [os.CreateTemp].
type TempDirSink struct {
	// Dir is the directory files are created in. If empty, the default
	// directory for temporary files is used.
	Dir string

	// Pattern is the file name pattern passed to os.CreateTemp.
	// Default: "multiform-*".
	Pattern string
}

// Store implements [FileSink].
func (s TempDirSink) Store(_ context.Context, body []byte) (string, int64, error) {
	pattern := s.Pattern
	if pattern == "" {
		pattern = "multiform-*"
	}

	f, err := os.CreateTemp(s.Dir, pattern)
	if err != nil {
		return "", 0, fmt.Errorf("multiform: create temp file: %w", err)
	}
	path := f.Name()

	n, err := f.Write(body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return path, 0, fmt.Errorf("multiform: write %s: %w", path, err)
	}
	return path, int64(n), nil
}

// Remove deletes a file previously returned by Store.
func (s TempDirSink) Remove(path string) error {
	return os.Remove(path)
}

// MemorySink keeps uploads in memory under paths of the form "mem://N". It
// is meant for tests and dry runs. The zero value is ready to use.
type MemorySink struct {
	mu    sync.Mutex
	next  int
	files map[string][]byte
}

// NewMemorySink returns an empty [MemorySink].
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// Store implements [FileSink]. The body is copied.
func (s *MemorySink) Store(ctx context.Context, body []byte) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.next++
	path := "mem://" + strconv.Itoa(s.next)
	s.files[path] = append([]byte(nil), body...)
	return path, int64(len(body)), nil
}

// Open returns the contents stored at path.
func (s *MemorySink) Open(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.files[path]
	return b, ok
}

// Remove forgets the contents stored at path.
func (s *MemorySink) Remove(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.files, path)
}

// Len returns the number of stored files.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.files)
}
