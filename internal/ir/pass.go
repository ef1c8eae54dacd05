package ir

// Pass is a single optimization transformation. RunOnFunction returns a new
// function and leaves its argument untouched.
type Pass interface {
	Name() string
	Description() string
	RunOnFunction(f *Function) *Function
}

// RunPass applies p to every function of m and returns the rebuilt module
func RunPass(p Pass, m *Module, parallel bool) *Module {
	return MapFunctions(m, p.RunOnFunction, parallel)
}
