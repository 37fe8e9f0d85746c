package cursorfx

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

type EffectId string

func makeEffectId() EffectId {
	return EffectId(uuid.NewString())
}

// EffectInfo describes one registered effect family. The module installs
// the family's pool, spawners and integrator when the app is built.
type EffectInfo struct {
	Id     EffectId
	Name   string
	Module Module
}

// EffectRegistry maps effect names to their modules. It stands in for the
// plugin loading boundary: discovery happens elsewhere, registration ends
// here.
type EffectRegistry struct {
	byName map[string]EffectInfo
}

func NewEffectRegistry() *EffectRegistry {
	return &EffectRegistry{byName: make(map[string]EffectInfo)}
}

func (r *EffectRegistry) Register(name string, module Module) (EffectId, error) {
	if _, exists := r.byName[name]; exists {
		return "", fmt.Errorf("effect %q already registered", name)
	}
	info := EffectInfo{
		Id:     makeEffectId(),
		Name:   name,
		Module: module,
	}
	r.byName[name] = info
	return info.Id, nil
}

func (r *EffectRegistry) Lookup(name string) (EffectInfo, bool) {
	info, ok := r.byName[name]
	return info, ok
}

func (r *EffectRegistry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Modules returns every registered module in name order, ready to hand to
// App.UseModules.
func (r *EffectRegistry) Modules() []Module {
	names := r.Names()
	modules := make([]Module, 0, len(names))
	for _, name := range names {
		modules = append(modules, r.byName[name].Module)
	}
	return modules
}

// BuiltinEffects registers the three shipped families.
func BuiltinEffects(seed int64) *EffectRegistry {
	r := NewEffectRegistry()
	// Distinct seeds keep the family streams independent under a fixed
	// root seed; zero stays zero so every family self-seeds from the clock.
	offset := func(k int64) int64 {
		if seed == 0 {
			return 0
		}
		return seed + k
	}
	r.Register("ripple", RippleModule{Seed: offset(0)})
	r.Register("petal", PetalModule{Seed: offset(1)})
	r.Register("laser", LaserModule{Seed: offset(2)})
	return r
}
