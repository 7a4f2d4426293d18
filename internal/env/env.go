// Package env implements the DSL's scoped environment: a stack of frames
// mapping names to values, per §4.7.
package env

import "github.com/dekarrin/fsmql/internal/value"

// Environment is a stack of frames. Lookup walks frames from innermost
// (the end of frames) outward; Let and assignment target the innermost
// frame only.
type Environment struct {
	frames []map[string]value.Value
}

// New returns an Environment with a single, empty top-level frame.
func New() *Environment {
	return &Environment{frames: []map[string]value.Value{{}}}
}

// Push adds a new innermost frame, used when entering a lambda call.
func (e *Environment) Push() {
	e.frames = append(e.frames, map[string]value.Value{})
}

// Pop removes the innermost frame, used when a lambda call returns.
func (e *Environment) Pop() {
	if len(e.frames) == 0 {
		return
	}
	e.frames = e.frames[:len(e.frames)-1]
}

// Let binds name to v in the innermost frame. Rebinding a name already bound
// in that frame replaces the prior binding, per §3.
func (e *Environment) Let(name string, v value.Value) {
	e.frames[len(e.frames)-1][name] = v
}

// Bind is an alias for Let satisfying value.Env.
func (e *Environment) Bind(name string, v value.Value) {
	e.Let(name, v)
}

// Lookup searches frames from innermost to outermost for name.
func (e *Environment) Lookup(name string) (value.Value, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if v, ok := e.frames[i][name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

// Snapshot returns a deep copy of e's current frame stack, for a lambda to
// capture at creation time. Later mutation of e (including rebinding names
// already present at snapshot time) must not be visible through the
// snapshot, per §5's resource-ownership note and §8's capture-snapshot test.
func (e *Environment) Snapshot() value.Env {
	cp := &Environment{frames: make([]map[string]value.Value, len(e.frames))}
	for i, frame := range e.frames {
		cpFrame := make(map[string]value.Value, len(frame))
		for k, v := range frame {
			cpFrame[k] = v
		}
		cp.frames[i] = cpFrame
	}
	return cp
}

// Clone returns an *Environment deep copy, used internally where the
// concrete type (rather than the value.Env interface) is needed.
func (e *Environment) Clone() *Environment {
	return e.Snapshot().(*Environment)
}
