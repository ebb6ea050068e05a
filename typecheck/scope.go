package typecheck

import "github.com/pontaoski/huck/types"

// ScopeStack maps names to types, innermost scope last. A new stack holds a
// single empty scope; so does the zero value once something is defined.
type ScopeStack struct {
	names []map[string]types.ResolvedType
}

func NewScopeStack() *ScopeStack {
	return &ScopeStack{
		names: []map[string]types.ResolvedType{{}},
	}
}

func (s *ScopeStack) pushScope() {
	s.names = append(s.names, make(map[string]types.ResolvedType))
}

func (s *ScopeStack) popScope() {
	s.names = s.names[:len(s.names)-1]
}

func (s *ScopeStack) top() map[string]types.ResolvedType {
	if len(s.names) == 0 {
		s.pushScope()
	}
	return s.names[len(s.names)-1]
}

// Define binds name in the innermost scope, replacing any earlier binding
// of the same name in that scope.
func (s *ScopeStack) Define(name string, t types.ResolvedType) {
	s.top()[name] = t
}

// Lookup searches from the innermost scope outward; the first hit wins.
func (s *ScopeStack) Lookup(name string) (types.ResolvedType, bool) {
	for i := len(s.names) - 1; i >= 0; i-- {
		t, ok := s.names[i][name]
		if ok {
			return t, true
		}
	}

	return types.Unit, false
}

func (s *ScopeStack) Depth() int {
	return len(s.names)
}

// Snapshot is a copy of every scope on a stack at one point in time.
type Snapshot struct {
	names []map[string]types.ResolvedType
}

func copyScopes(from []map[string]types.ResolvedType) []map[string]types.ResolvedType {
	to := make([]map[string]types.ResolvedType, len(from))
	for i, scope := range from {
		to[i] = make(map[string]types.ResolvedType, len(scope))
		for name, t := range scope {
			to[i][name] = t
		}
	}
	return to
}

func (s *ScopeStack) Snapshot() Snapshot {
	return Snapshot{names: copyScopes(s.names)}
}

// Restore puts the stack back to the bindings recorded in snap. A snapshot
// can be restored more than once.
func (s *ScopeStack) Restore(snap Snapshot) {
	s.names = copyScopes(snap.names)
}
