package registry

import (
	_ "embed"
	"sync"
)

// defaultDefinitions is the definition file every Default() registry is
// born with: SI base units and prefixes, common derived units, imperial
// units, and the affine temperature scales.
//
//go:embed default_units.txt
var defaultDefinitions string

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the lazily-created process-wide registry loaded with
// the embedded definition file. It is the only ambient registry this
// package provides; every other entry point takes an explicit instance.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = New()
		if err := defaultReg.Load(defaultDefinitions); err != nil {
			// The embedded file ships with the package; failing to load
			// it is a build defect, not a runtime condition.
			panic("registry: embedded default definitions are invalid: " + err.Error())
		}
	})

	return defaultReg
}

// DefaultDefinitions exposes the embedded definition text, so callers
// can seed independent registries with the stock vocabulary and extend
// them separately.
func DefaultDefinitions() string { return defaultDefinitions }
