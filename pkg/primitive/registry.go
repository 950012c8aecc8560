package primitive

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Default is the name of the reference primitive.
const Default = "xtea"

//nolint:gochecknoglobals // read-only lookup table
var factories = map[string]Factory{
	"xtea":     NewXTEA,
	"tea":      NewTEA,
	"blowfish": NewBlowfish,
	"cast5":    NewCAST5,
}

// Lookup returns the factory registered under name (case-insensitive).
// An empty name selects Default.
func Lookup(name string) (Factory, error) {
	if name == "" {
		name = Default
	}

	factory, ok := factories[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknown, name, strings.Join(Names(), ", "))
	}

	return factory, nil
}

// Names returns the registered primitive names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(factories))
}
