package types

// DiffState classifies the comparison of a candidate file with its destination
type DiffState string

const (
	// DiffNoChanges means candidate and destination are byte-identical
	DiffNoChanges DiffState = "no-changes"

	// DiffNewFile means the destination does not exist yet
	DiffNewFile DiffState = "new-file"

	// DiffChanged means the files differ; Text holds the comparison output
	DiffChanged DiffState = "changed"

	// DiffUnsupported means the destination exists but is not a regular file
	DiffUnsupported DiffState = "unsupported"

	// DiffFailed means the comparison itself failed; Err holds the cause
	DiffFailed DiffState = "failed"
)

// DiffStatus is the result of one comparison. It is produced fresh on every
// comparison and never cached.
type DiffStatus struct {
	State DiffState

	// Text is the raw comparison output, only set when State is DiffChanged
	Text []byte

	// Err is the cause of a DiffFailed status
	Err error
}

// String returns the state name
func (s DiffStatus) String() string {
	return string(s.State)
}
