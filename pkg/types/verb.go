package types

// Verb qualifies an announced action
type Verb string

const (
	// VerbWould announces an action that was only simulated
	VerbWould Verb = "WOULD"

	// VerbLive announces an action that is being performed
	VerbLive Verb = "LIVE"

	// VerbSkipped announces an action the operator declined
	VerbSkipped Verb = "SKIPPED"

	// VerbNoChange announces an action that had nothing to do
	VerbNoChange Verb = "NO CHANGE"
)
