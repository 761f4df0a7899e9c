package domain

import "fmt"

// SubmissionPhase is the explicit form of the request-carried "part" marker,
// so orchestrator branching is exhaustive instead of string-compared.
type SubmissionPhase int

const (
	// PhaseInitial creates (or resumes) a partial record and issues the
	// session token.
	PhaseInitial SubmissionPhase = iota + 1
	// PhaseFinal completes the record and ends the session.
	PhaseFinal
)

func (p SubmissionPhase) String() string {
	switch p {
	case PhaseInitial:
		return "1"
	case PhaseFinal:
		return "2"
	default:
		return fmt.Sprintf("SubmissionPhase(%d)", int(p))
	}
}

// ParsePhase converts the wire marker into a SubmissionPhase.
func ParsePhase(marker string) (SubmissionPhase, error) {
	switch marker {
	case "1":
		return PhaseInitial, nil
	case "2":
		return PhaseFinal, nil
	default:
		return 0, &ValidationError{Field: "part", Reason: fmt.Sprintf("unknown submission part %q", marker)}
	}
}
