// Package catalog provides a thread-safe registry of known node class
// types. Validation consults a catalog to flag workflows that reference
// classes the hosting pipeline does not provide, before the workflow is
// ever submitted.
package catalog

import (
	"sort"
	"sync"
)

// Class describes one known node class type.
type Class struct {
	// Name is the class type tag (e.g. "KSampler").
	Name string

	// RequiredInputs lists input names a node of this class must carry.
	RequiredInputs []string
}

// Catalog is a thread-safe collection of known classes.
// The zero value is not usable; call New.
type Catalog struct {
	mu      sync.RWMutex
	classes map[string]Class
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		classes: make(map[string]Class),
	}
}

// Register adds or replaces a class.
func (c *Catalog) Register(class Class) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.classes[class.Name] = class
}

// RegisterMany adds or replaces multiple classes.
func (c *Catalog) RegisterMany(classes []Class) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, class := range classes {
		c.classes[class.Name] = class
	}
}

// Get returns the class with the given name and whether it exists.
func (c *Catalog) Get(name string) (Class, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	class, ok := c.classes[name]
	return class, ok
}

// Has reports whether the class name is known.
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.classes[name]
	return ok
}

// Names returns all registered class names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.classes))
	for name := range c.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered classes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.classes)
}

// Unregister removes a class by name. No-op if absent.
func (c *Catalog) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.classes, name)
}
