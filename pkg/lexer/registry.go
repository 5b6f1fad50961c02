package lexer

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry is the lexer catalog hosts discover scanners through.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Module
	byID    map[int]Module
	aliases map[string]string // alias -> canonical name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Module),
		byID:    make(map[int]Module),
		aliases: make(map[string]string),
	}
}

// Register adds a module to the registry.
// If a module with the same name already exists, it is replaced.
func (r *Registry) Register(module Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[strings.ToLower(module.Name)] = module
	r.byID[module.ID] = module
}

// RegisterAlias maps an alias to a canonical module name.
func (r *Registry) RegisterAlias(alias, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[strings.ToLower(alias)] = strings.ToLower(name)
}

// Get retrieves a module by name or alias, case-insensitively.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := strings.ToLower(name)
	if module, ok := r.byName[key]; ok {
		return module, true
	}
	if target, ok := r.aliases[key]; ok {
		module, ok := r.byName[target]
		return module, ok
	}
	return Module{}, false
}

// GetByID retrieves a module by its numeric identifier.
func (r *Registry) GetByID(id int) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	module, ok := r.byID[id]
	return module, ok
}

// Lookup is Get with an error wrapping ErrUnknownLexer.
func (r *Registry) Lookup(name string) (Module, error) {
	module, ok := r.Get(name)
	if !ok {
		return Module{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownLexer, name, strings.Join(r.Names(), ", "))
	}
	return module, nil
}

// Modules returns all registered modules sorted by name.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Module, 0, len(r.byName))
	for _, module := range r.byName {
		result = append(result, module)
	}

	slices.SortFunc(result, func(a, b Module) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return result
}

// Names returns all registered module names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byName))
	for _, module := range r.byName {
		result = append(result, module.Name)
	}

	slices.Sort(result)
	return result
}

// DefaultRegistry is the global registry for built-in scanners.
// Scanners register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for lexer registration
var DefaultRegistry = NewRegistry()
