package diag

// Severity ranks a finding. The labels double as SARIF result levels.
type Severity uint8

const (
	SevNote Severity = iota
	// SevWarning is what line checkers report.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevNote:
		return "note"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}
