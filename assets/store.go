// Package assets caches renderable models by name: load once, instance many
// times. Entities hold a Handle, a weak reference that stays cheap to copy
// and degrades to "invalid" when the model is unloaded.
package assets

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sync"

	"github.com/plus3/thingbox/geom"
	"gopkg.in/yaml.v3"
)

// Handle is a weak reference to a model in a Store.
type Handle struct {
	Name string
}

// Valid reports whether the handle names a model. It does not check that the
// model is still loaded; Store.Bounds does.
func (h Handle) Valid() bool {
	return h.Name != ""
}

// Store holds loaded models. It is safe for concurrent use so a loader
// goroutine can add models while the frame loop instances them.
type Store struct {
	mu     sync.RWMutex
	models map[string]*Model
	logger *slog.Logger
}

// NewStore creates an empty store. A nil logger uses slog.Default().
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		models: make(map[string]*Model),
		logger: logger,
	}
}

// Load adds m under its name. Loading a name that already exists is a no-op
// that keeps the original model.
func (s *Store) Load(m *Model) bool {
	if m == nil || m.Name == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.models[m.Name]; ok {
		return true
	}
	s.models[m.Name] = m
	s.logger.Debug("model loaded", "name", m.Name, "shape", m.Shape, "bounds", m.Bounds)
	return true
}

// LoadDefs builds and loads every def. It keeps going past bad defs and
// returns the first error.
func (s *Store) LoadDefs(defs []ModelDef) error {
	var first error
	for _, def := range defs {
		m, err := def.Build()
		if err != nil {
			s.logger.Warn("skipping model", "err", err)
			if first == nil {
				first = err
			}
			continue
		}
		s.Load(m)
	}
	return first
}

type manifest struct {
	Models []ModelDef `yaml:"models"`
}

// LoadManifest reads a YAML file with a top-level models list.
func (s *Store) LoadManifest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var mf manifest
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return s.LoadDefs(mf.Models)
}

// Has reports whether a model with name is loaded.
func (s *Store) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.models[name]
	return ok
}

// Get returns the model or nil.
func (s *Store) Get(name string) *Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.models[name]
}

// Instance returns a handle to the named model, or an invalid handle if it
// is not loaded.
func (s *Store) Instance(name string) Handle {
	if !s.Has(name) {
		return Handle{}
	}
	return Handle{Name: name}
}

// Bounds returns the model-space bounds for h.
func (s *Store) Bounds(h Handle) (geom.AABB, bool) {
	m := s.Get(h.Name)
	if m == nil {
		return geom.AABB{}, false
	}
	return m.Bounds, true
}

// Names returns the loaded model names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.models))
	for name := range s.models {
		names = append(names, name)
	}
	s.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Count returns the number of loaded models.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.models)
}

// Unload drops a single model. Outstanding handles become invalid.
func (s *Store) Unload(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.models, name)
}

// UnloadAll drops every model.
func (s *Store) UnloadAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.models)
}
