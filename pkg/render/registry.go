package render

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrRendererNotFound is returned by Get when no renderer matches the name.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry stores renderers by name and by output file extension. It is safe
// for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	renderers   map[string]Renderer
	byExtension map[string]string
}

// Descriptor summarises a registered renderer.
type Descriptor struct {
	Name        string
	ContentType string
	Extension   string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers:   make(map[string]Renderer),
		byExtension: make(map[string]string),
	}
}

// Register adds a renderer by its Name(). Duplicate names, and a file
// extension already claimed by another renderer, return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	ext := extensionOf(renderer)
	if ext != "" {
		if owner, claimed := r.byExtension[ext]; claimed {
			return fmt.Errorf("render: extension %q already claimed by renderer %q", ext, owner)
		}
		r.byExtension[ext] = name
	}

	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrRendererNotFound, name, strings.Join(r.namesLocked(), ", "))
	}
	return renderer, nil
}

// MustGet panics if the renderer is missing.
func (r *Registry) MustGet(name string) Renderer {
	renderer, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return renderer
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[strings.TrimSpace(name)]
	return ok
}

// Describe lists every renderer sorted by name.
func (r *Registry) Describe() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.namesLocked()
	out := make([]Descriptor, 0, len(names))
	for _, name := range names {
		renderer := r.renderers[name]
		out = append(out, Descriptor{
			Name:        name,
			ContentType: renderer.ContentType(),
			Extension:   extensionOf(renderer),
		})
	}
	return out
}

// ForFile returns the renderer whose file extension matches path,
// case-insensitively.
func (r *Registry) ForFile(path string) (Renderer, bool) {
	ext := normalizeExtension(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.byExtension[ext]
	if !ok {
		return nil, false
	}
	return r.renderers[name], true
}

func extensionOf(renderer Renderer) string {
	fr, ok := renderer.(FileRenderer)
	if !ok {
		return ""
	}
	return normalizeExtension(fr.FileExtension())
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
