// Package types defines the core value types shared by fastidious packages.
// This includes the ExecutionMode threaded through every side effect, the
// Vars table used for templating, the DiffStatus produced by the diff engine
// and the ActionResult reported for each executed action.
package types
