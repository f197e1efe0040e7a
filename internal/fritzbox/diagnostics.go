package fritzbox

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/fritz-profiles/internal/logging"
)

// DiagnosticKind classifies a recoverable anomaly
type DiagnosticKind int

const (
	// DiagNoMatch: an assignment page row matched no known device
	DiagNoMatch DiagnosticKind = iota
	// DiagAmbiguousMatch: an assignment page row matched several devices
	DiagAmbiguousMatch
	// DiagUnknownDevice: a requested device key resolved to no device
	DiagUnknownDevice
	// DiagUnknownProfile: a requested profile key resolved to no profile
	DiagUnknownProfile
)

// String returns the kind name
func (k DiagnosticKind) String() string {
	switch k {
	case DiagNoMatch:
		return "no_match"
	case DiagAmbiguousMatch:
		return "ambiguous_match"
	case DiagUnknownDevice:
		return "unknown_device"
	case DiagUnknownProfile:
		return "unknown_profile"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// Diagnostic is a recoverable anomaly found during reconciliation or update.
// The offending row or pair is skipped; processing continues.
type Diagnostic struct {
	Kind DiagnosticKind
	// Key is the id involved: the secondary id of an assignment row, or the
	// unresolved device/profile key of a requested change.
	Key string
	// Name is the device name of an assignment row, if any
	Name string
	// Matches holds the primary ids of all candidates for DiagAmbiguousMatch
	Matches []string
}

// String returns a human-readable description
func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagNoMatch:
		return fmt.Sprintf("no match for %-16s %s", d.Key, d.Name)
	case DiagAmbiguousMatch:
		return fmt.Sprintf("multiple matches for %-16s %s", d.Key, d.Name)
	case DiagUnknownDevice:
		return fmt.Sprintf("cannot identify device %s", d.Key)
	case DiagUnknownProfile:
		return fmt.Sprintf("cannot identify profile %s", d.Key)
	default:
		return fmt.Sprintf("%s %s", d.Kind, d.Key)
	}
}

func logDiagnostic(d Diagnostic) {
	fields := []zap.Field{
		zap.Stringer("kind", d.Kind),
		zap.String("key", d.Key),
	}
	if d.Name != "" {
		fields = append(fields, zap.String("name", d.Name))
	}
	if len(d.Matches) > 0 {
		fields = append(fields, zap.Strings("matches", d.Matches))
	}
	logging.Warn(d.String(), fields...)
}
