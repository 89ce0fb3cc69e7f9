package core

// ScanPhase represents the current phase of a scan
type ScanPhase int

const (
	PhaseScanning ScanPhase = iota
	PhaseComplete
	PhaseCancelled
)

// String returns a human-readable phase name
func (p ScanPhase) String() string {
	switch p {
	case PhaseScanning:
		return "Scanning folders"
	case PhaseComplete:
		return "Complete"
	case PhaseCancelled:
		return "Cancelled"
	default:
		return ""
	}
}
