// Package executor performs or reports side effects according to an
// ExecutionMode.
//
// Two kinds of side effect exist: running a process and writing a rendered
// candidate over a destination file. For each, the mode decides what
// happens:
//
//	Active       perform it
//	Passive      report what would happen, never spawn or write
//	Interactive  ask the operator first
//
// File writes are gated by the diff engine: an unchanged destination is
// never rewritten, whatever the mode.
package executor
