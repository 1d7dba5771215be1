package vm

// Env holds name bindings for one section scope.
type Env struct {
	parent *Env
	vars   map[string]Value
}

// NewEnv constructs an environment, optionally inheriting from parent.
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, vars: make(map[string]Value)}
}

// Get returns the value for name, searching parents if needed.
func (e *Env) Get(name string) (Value, bool) {
	if e == nil {
		return Value{}, false
	}
	if v, ok := e.vars[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, false
}

// Set binds name in this environment.
func (e *Env) Set(name string, v Value) {
	if e == nil {
		return
	}
	if e.vars == nil {
		e.vars = make(map[string]Value)
	}
	e.vars[name] = v
}

// Store updates the nearest environment already binding name, or binds it
// here when no environment does.
func (e *Env) Store(name string, v Value) {
	for cur := e; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = v
			return
		}
	}
	e.Set(name, v)
}
