package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/types"
	"github.com/arthur-debert/fastidious/pkg/vfile"
)

// Kind is the role of a scriptlet script
type Kind string

const (
	KindApply     Kind = "apply"
	KindIsApplied Kind = "is-applied"
)

// Resolver turns scriptlet names into scripts
type Resolver struct {
	cfg *Config
}

// NewResolver creates a resolver over cfg
func NewResolver(cfg *Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve returns the script of the given kind for name: the inline body
// from [scriptlets.<name>] when there is one, otherwise the file
// <script_dir>/<name>-<kind>.
func (r *Resolver) Resolve(name string, kind Kind) (*vfile.VirtualFile, error) {
	if s, ok := r.cfg.Scriptlets[name]; ok {
		body := s.Apply
		if kind == KindIsApplied {
			body = s.IsApplied
		}
		if body != "" {
			return vfile.InMemory(body), nil
		}
	}

	path := filepath.Join(r.cfg.ScriptDir, name+"-"+string(kind))
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Newf(errors.ErrScriptletNotFound, "no %s script for %s", kind, name).
			WithDetail("name", name).
			WithDetail("kind", string(kind)).
			WithDetail("path", path)
	}
	return vfile.FromPath(path), nil
}

// Vars returns the variables configured for name
func (r *Resolver) Vars(name string) types.Vars {
	s, ok := r.cfg.Scriptlets[name]
	if !ok {
		return types.Vars{}
	}
	return types.Vars(s.Vars).Clone()
}

// Names lists the scriptlets configured inline, sorted
func (r *Resolver) Names() []string {
	names := make([]string, 0, len(r.cfg.Scriptlets))
	for name := range r.cfg.Scriptlets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
