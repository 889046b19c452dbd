// Package testutil provides utilities for testing fastidious components.
//
// Key components:
//   - RecordingReporter: captures announcements instead of printing them
//   - ScriptedPrompter: answers prompts from a fixed script
//   - MockRunner: testify mock of the process runner, for counting spawns
//   - NewTestFS: in-memory filesystem for the variable stores
//
// Usage guidelines:
//   - Passive-mode tests should use a MockRunner with no expectations so any
//     spawn fails the test
//   - Tests touching real files work under t.TempDir()
package testutil
