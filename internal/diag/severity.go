package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo suggests a refactor without blocking generation.
	SevInfo Severity = iota
	// SevWarning flags a discouraged-but-working pattern; generation proceeds.
	SevWarning
	// SevError blocks generation for the offending item.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
