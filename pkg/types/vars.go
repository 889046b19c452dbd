package types

import (
	"fmt"
	"sort"
)

// Vars maps variable names to values for template substitution and command
// environments. The core only reads Vars.
type Vars map[string]string

// Lookup returns the value for key and whether it was set
func (v Vars) Lookup(key string) (string, bool) {
	if v == nil {
		return "", false
	}
	val, ok := v[key]
	return val, ok
}

// Clone returns a copy that can be modified without affecting v
func (v Vars) Clone() Vars {
	out := make(Vars, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Merge returns a new table with other layered over v
func (v Vars) Merge(other Vars) Vars {
	out := v.Clone()
	for k, val := range other {
		out[k] = val
	}
	return out
}

// Keys returns the variable names in sorted order
func (v Vars) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Environ renders the table as KEY=value pairs, sorted by key
func (v Vars) Environ() []string {
	env := make([]string, 0, len(v))
	for _, k := range v.Keys() {
		env = append(env, fmt.Sprintf("%s=%s", k, v[k]))
	}
	return env
}
