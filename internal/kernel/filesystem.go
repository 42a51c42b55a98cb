package kernel

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-miniso/miniso/internal/program"
)

// FileSystem is the in-memory stand-in for durable storage the loader
// reads programs from. It is a shared mutable resource the kernel (on Run
// and PAGE_FAULT) and the shell both touch, hence the mutex.
type FileSystem struct {
	mu      sync.RWMutex
	entries map[string]*program.Program
}

// NewFileSystem creates an empty file system.
func NewFileSystem() *FileSystem {
	return &FileSystem{entries: make(map[string]*program.Program)}
}

// Put registers a program under path, overwriting any existing entry.
func (fs *FileSystem) Put(path string, p *program.Program) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.entries[path] = p
}

// Get retrieves the program at path.
func (fs *FileSystem) Get(path string) (*program.Program, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	p, ok := fs.entries[path]
	if !ok {
		return nil, fmt.Errorf("kernel: filesystem: %w: %s", ErrNotFound, path)
	}

	return p, nil
}

// List returns every registered path, sorted.
func (fs *FileSystem) List() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	paths := make([]string, 0, len(fs.entries))
	for p := range fs.entries {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}
