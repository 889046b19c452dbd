package types

// ActionResult is the terminal outcome of one executed action. It is derived
// from the diff status or the process exit code, never set by the caller.
type ActionResult string

const (
	// ResultApplied means the side effect was performed
	ResultApplied ActionResult = "applied"

	// ResultSkipped means nothing was changed, either because the mode is
	// passive or because the operator declined
	ResultSkipped ActionResult = "skipped"

	// ResultAlreadyApplied means the system was already in the desired state
	ResultAlreadyApplied ActionResult = "already-applied"

	// ResultCreated means a new destination file was created
	ResultCreated ActionResult = "created"
)

// String returns the result name
func (r ActionResult) String() string {
	return string(r)
}

// Changed reports whether the result changed the system
func (r ActionResult) Changed() bool {
	return r == ResultApplied || r == ResultCreated
}
