package runtime

import (
	"maps"
	"slices"
)

// Scope maps identifiers to runtime values.
type Scope struct {
	values map[string]Value
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{values: make(map[string]Value)}
}

// Define inserts or replaces a binding.
func (s *Scope) Define(name string, value Value) {
	s.values[name] = value
}

// Get retrieves a binding from this scope only.
func (s *Scope) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Snapshot returns a shallow copy of the bindings. Lists and dicts stay
// shared with the original scope.
func (s *Scope) Snapshot() *Scope {
	return &Scope{values: maps.Clone(s.values)}
}

// Len reports the number of bindings.
func (s *Scope) Len() int {
	return len(s.values)
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (s *Scope) Keys() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// ScopeStack is the chain of scopes used for name resolution. The bottom entry
// is the global scope and is never popped.
type ScopeStack struct {
	scopes []*Scope
}

// NewScopeStack creates a stack holding only a fresh global scope.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{scopes: []*Scope{NewScope()}}
}

func (s *ScopeStack) Global() *Scope {
	return s.scopes[0]
}

func (s *ScopeStack) Top() *Scope {
	return s.scopes[len(s.scopes)-1]
}

// Depth is the number of scopes on the stack, including the global scope.
func (s *ScopeStack) Depth() int {
	return len(s.scopes)
}

func (s *ScopeStack) Push(scope *Scope) {
	s.scopes = append(s.scopes, scope)
}

// Pop removes the top scope. It reports false when only the global scope is
// left.
func (s *ScopeStack) Pop() bool {
	if len(s.scopes) <= 1 {
		return false
	}
	s.scopes[len(s.scopes)-1] = nil
	s.scopes = s.scopes[:len(s.scopes)-1]
	return true
}

// Lookup walks the stack from top to bottom and returns the first binding.
func (s *ScopeStack) Lookup(name string) (Value, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if v, ok := s.scopes[i].Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Assign binds name in the top scope.
func (s *ScopeStack) Assign(name string, value Value) {
	s.Top().Define(name, value)
}
