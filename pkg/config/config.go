package config

import (
	"time"
)

// Config is the effective configuration
type Config struct {
	ScriptDir  string               `koanf:"script_dir" toml:"script_dir"`
	Shell      string               `koanf:"shell" toml:"shell"`
	TempDir    string               `koanf:"temp_dir" toml:"temp_dir"`
	Timeout    Duration             `koanf:"timeout" toml:"timeout"`
	Diff       Tool                 `koanf:"diff" toml:"diff"`
	Merge      Tool                 `koanf:"merge" toml:"merge"`
	Output     Output               `koanf:"output" toml:"output"`
	Scriptlets map[string]Scriptlet `koanf:"scriptlets" toml:"scriptlets,omitempty"`
}

// Tool is an external program and the arguments placed before its operands
type Tool struct {
	Tool string   `koanf:"tool" toml:"tool"`
	Args []string `koanf:"args" toml:"args"`
}

// Output configures announcements
type Output struct {
	Format string `koanf:"format" toml:"format"`
}

// Scriptlet is a named pair of check and apply scripts. Empty bodies are
// looked up in the script directory instead.
type Scriptlet struct {
	Apply     string            `koanf:"apply" toml:"apply,omitempty"`
	IsApplied string            `koanf:"is-applied" toml:"is-applied,omitempty"`
	Vars      map[string]string `koanf:"vars" toml:"vars,omitempty"`
}

// Duration is a time.Duration written as "1m30s" in configuration files
type Duration time.Duration

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}
