// Package scope implements a scoped constant-binding stack: a stack of
// name->value maps pushed and popped in block-nesting order, consulted
// innermost-first. Re-assignment invalidates rather than updates a
// binding, since the AST cannot in general prove the new value stays
// constant. Styled after scope-depth bookkeeping in a typical compiler
// front end (scopeDepth/beginScope/endScope).
package scope

import "shadereval/internal/composite"

// Stack is a propagate.ConstLookup backed by nested declaration scopes.
type Stack struct {
	frames []map[string]composite.AnyValue
}

// New returns a Stack with a single (global) frame already pushed.
func New() *Stack {
	return &Stack{frames: []map[string]composite.AnyValue{{}}}
}

// Push opens a new nested scope, e.g. entering a block.
func (s *Stack) Push() {
	s.frames = append(s.frames, map[string]composite.AnyValue{})
}

// Pop closes the innermost scope, e.g. leaving a block. Popping the last
// remaining frame is a no-op: the global frame is never discarded.
func (s *Stack) Pop() {
	if len(s.frames) <= 1 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Declare installs name at the current (innermost) scope, for a
// declaration with a constant initializer.
func (s *Stack) Declare(name string, v composite.AnyValue) {
	s.frames[len(s.frames)-1][name] = v
}

// Invalidate removes any binding for name from whichever scope holds it, so
// later lookups see it as unknown again. Used on reassignment: the AST
// alone cannot prove the new value stays constant, so the conservative move
// is to forget the binding rather than attempt flow-sensitive tracking.
func (s *Stack) Invalidate(name string) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, ok := s.frames[i][name]; ok {
			delete(s.frames[i], name)
			return
		}
	}
}

// Lookup searches frames innermost-first, satisfying propagate.ConstLookup.
func (s *Stack) Lookup(name string) (composite.AnyValue, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v, true
		}
	}
	return composite.AnyValue{}, false
}
