package tool

// Runtime is the out-of-band key/value context supplied by the host
// application for one invocation. It is bound to handlers through their
// signature and is never visible to the model.
type Runtime struct {
	values map[string]any
}

// NewRuntime builds a runtime context from the caller-supplied values.
// A nil map yields an empty context.
func NewRuntime(values map[string]any) *Runtime {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Runtime{values: copied}
}

// Get returns the value for key and whether it is present.
func (r *Runtime) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// String returns the string value for key, or "" if absent or not a string.
func (r *Runtime) String(key string) string {
	v, _ := r.values[key].(string)
	return v
}

// Int returns the int value for key, or 0 if absent or not an int.
func (r *Runtime) Int(key string) int {
	v, _ := r.values[key].(int)
	return v
}

// Len returns the number of values in the context.
func (r *Runtime) Len() int {
	return len(r.values)
}
