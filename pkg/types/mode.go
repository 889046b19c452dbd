package types

import (
	"fmt"
	"strings"
)

// ExecutionMode decides whether a side effect is performed, confirmed first or only reported.
// It is decided once per invocation and passed down explicitly, never stored globally.
type ExecutionMode string

const (
	// ModeActive performs side effects for real
	ModeActive ExecutionMode = "active"

	// ModePassive only reports what would happen
	ModePassive ExecutionMode = "passive"

	// ModeInteractive asks the operator before each side effect
	ModeInteractive ExecutionMode = "interactive"
)

// String returns the mode name
func (m ExecutionMode) String() string {
	return string(m)
}

// Mutates reports whether the mode may change the system without asking
func (m ExecutionMode) Mutates() bool {
	return m == ModeActive
}

// ParseMode parses a mode name. The empty string is passive.
func ParseMode(s string) (ExecutionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "a":
		return ModeActive, nil
	case "passive", "p", "":
		return ModePassive, nil
	case "interactive", "i":
		return ModeInteractive, nil
	default:
		return ModePassive, fmt.Errorf("unknown execution mode: %s", s)
	}
}

// ModeFromFlags resolves the three mode flags. Active wins over interactive,
// and passive is the default when nothing is set.
func ModeFromFlags(active, passive, interactive bool) ExecutionMode {
	switch {
	case active:
		return ModeActive
	case interactive:
		return ModeInteractive
	default:
		return ModePassive
	}
}
