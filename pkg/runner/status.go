package runner

// Status classifies the outcome of one fuzz iteration. Anything other
// than StatusOk stops the fuzz loop and persists the triggering input.
type Status int

const (
	// StatusOk means every involved target behaved; the loop continues.
	StatusOk Status = iota

	// StatusFailed means the program under test exited with a non-zero code.
	StatusFailed

	// StatusPrimaryFailed means the primary solver of a comparison run failed.
	StatusPrimaryFailed

	// StatusSecondaryFailed means the secondary solver of a comparison run failed.
	StatusSecondaryFailed

	// StatusDifferentOutputs means both comparison solvers succeeded but
	// their outputs disagree token-wise.
	StatusDifferentOutputs

	// StatusVerifierFailed means the verifier rejected the program's output.
	StatusVerifierFailed
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusFailed:
		return "program exited with non-zero code"
	case StatusPrimaryFailed:
		return "primary solver exited with non-zero code"
	case StatusSecondaryFailed:
		return "secondary solver exited with non-zero code"
	case StatusDifferentOutputs:
		return "failed with different outputs"
	case StatusVerifierFailed:
		return "verifier rejected the output"
	default:
		return "unknown status"
	}
}
