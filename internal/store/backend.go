package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// RecordName is the name of the single durable record holding the envelope.
// It is carried over from the storage key of the first release so existing
// data keeps working.
const RecordName = "ideas-para-app-storage"

// ErrNotExist is returned by Backend.Read when no envelope has been written
// yet. The store treats it as a cold start, not a failure.
var ErrNotExist = errors.New("store: no persisted state")

// Backend is the durable home of the serialized envelope. Write failures are
// reported to the caller but the in-memory state stays authoritative.
type Backend interface {
	// Read returns the last written envelope, or ErrNotExist.
	Read() ([]byte, error)
	// Write replaces the stored envelope.
	Write(data []byte) error
}

// FileBackend persists the envelope as a single JSON file.
type FileBackend struct {
	path string
}

// NewFileBackend creates a FileBackend at path, creating the parent directory
// if needed.
func NewFileBackend(path string) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileBackend{path: path}, nil
}

func (b *FileBackend) Read() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}
	return data, nil
}

func (b *FileBackend) Write(data []byte) error {
	if err := os.WriteFile(b.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

// Path returns the file the backend writes to.
func (b *FileBackend) Path() string {
	return b.path
}

// MemoryBackend keeps the envelope in memory. It exists for tests; WriteErr,
// when set, makes every Write fail so quota-style failures can be simulated.
type MemoryBackend struct {
	mu       sync.Mutex
	data     []byte
	WriteErr error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Read() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil, ErrNotExist
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, nil
}

func (b *MemoryBackend) Write(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.WriteErr != nil {
		return b.WriteErr
	}
	b.data = make([]byte, len(data))
	copy(b.data, data)
	return nil
}
