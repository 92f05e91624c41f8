// Package materials defines the absorption-material library contract the
// room builder resolves surfaces and objects through, with an in-memory
// implementation and a CSV file loader. A postgres-backed implementation
// lives in internal/repository/postgres.
package materials

import (
	"errors"
	"fmt"

	"github.com/resona-acoustics/resona/pkg/acoustics/bands"
)

// ErrMaterialNotFound indicates a lookup with an unknown material id.
var ErrMaterialNotFound = errors.New("materials: material not found")

// Material is one library entry: per-band absorption coefficients for a
// surface finish, or absorption units per item for countable objects.
type Material struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Coefficients bands.Curve `json:"-"`
}

// Library resolves material ids to absorption data.
type Library interface {
	Get(id string) (*Material, error)
}

// InMemory is a map-backed library, used for assembled designs and tests.
type InMemory struct {
	byID map[string]*Material
}

// NewInMemory builds a library from a list of materials.
func NewInMemory(mats []Material) *InMemory {
	lib := &InMemory{byID: make(map[string]*Material, len(mats))}
	for i := range mats {
		m := mats[i]
		lib.byID[m.ID] = &m
	}
	return lib
}

// Get returns the material with the given id.
func (l *InMemory) Get(id string) (*Material, error) {
	m, ok := l.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMaterialNotFound, id)
	}
	return m, nil
}

// Add registers or replaces a material.
func (l *InMemory) Add(m Material) {
	l.byID[m.ID] = &m
}

// List returns all materials in the library.
func (l *InMemory) List() []Material {
	out := make([]Material, 0, len(l.byID))
	for _, m := range l.byID {
		out = append(out, *m)
	}
	return out
}
