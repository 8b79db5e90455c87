package registry

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/astrenok/unum/dim"
)

// systemsDoc is the YAML shape of a measurement-system file:
//
//	systems:
//	  mks: [meter, kilogram, second, newton, joule]
//	  imperial: [foot, pound, second]
type systemsDoc struct {
	Systems map[string][]string `yaml:"systems"`
}

// LoadSystems reads measurement-system preference tables from YAML and
// merges them into the registry. Every listed unit must resolve against
// the already-loaded definition table, so a systems file cannot
// introduce unknown vocabulary. Reloading a system name replaces its
// list.
func (r *Registry) LoadSystems(data []byte) error {
	var doc systemsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("registry: systems yaml: %w", err)
	}

	// Validate before mutating: all-or-nothing, like Load.
	for system, units := range doc.Systems {
		if len(units) == 0 {
			return fmt.Errorf("registry: system %q lists no units", system)
		}
		for _, name := range units {
			if _, _, err := r.Lookup(name); err != nil {
				return fmt.Errorf("registry: system %q: %w", system, err)
			}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for system, units := range doc.Systems {
		r.systems[system] = append([]string(nil), units...)
	}

	return nil
}

// Systems returns the names of the loaded measurement systems.
func (r *Registry) Systems() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.systems))
	for name := range r.systems {
		out = append(out, name)
	}

	return out
}

// Preferred returns the first unit in the named system whose
// dimensionality equals d: Preferred("imperial", lengthDim) → "foot".
// Fails with ErrUnknownSystem for unloaded systems and
// ErrNoPreferredUnit when the system lists nothing of that dimension.
func (r *Registry) Preferred(system string, d dim.Vector) (string, error) {
	r.mu.RLock()
	units, ok := r.systems[system]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSystem, system)
	}

	for _, name := range units {
		expr, err := r.ParseUnits(name)
		if err != nil {
			return "", err
		}
		ud, err := r.Dimensionality(expr)
		if err != nil {
			return "", err
		}
		if ud.Equal(d) {
			return name, nil
		}
	}

	return "", fmt.Errorf("%w: system %q, dimension %s", ErrNoPreferredUnit, system, strconv.Quote(d.String()))
}
