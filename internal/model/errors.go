package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a core failure the way spec §7 does. It is not a
// Go error type itself — each kind below wraps it with a message and,
// where relevant, the offending identifier.
type ErrorKind int

const (
	// KindInvalidInput marks a malformed project: duplicate ids, dangling
	// references, non-finite coordinates. The caller should not retry.
	KindInvalidInput ErrorKind = iota
	// KindDegenerateInput marks an empty or trivially-sized request that
	// is not an error but also not worth optimizing.
	KindDegenerateInput
	// KindTopologyUnsupported marks a branch-topology component that the
	// analyzer cannot classify (degree ≥ 4, ambiguous spur, overlapping
	// intervals, too many sources/sinks, orientation mismatch).
	KindTopologyUnsupported
	// KindInternalInvariantFailure marks a bug: an invariant the optimizer
	// itself is supposed to guarantee was violated.
	KindInternalInvariantFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindDegenerateInput:
		return "degenerate_input"
	case KindTopologyUnsupported:
		return "topology_unsupported"
	case KindInternalInvariantFailure:
		return "internal_invariant_failure"
	default:
		return "unknown"
	}
}

// CoreError is the single error type the core returns. Offender names the
// station/edge/line id responsible, when there is one.
type CoreError struct {
	Kind     ErrorKind
	Offender string
	Cause    error
}

func (e *CoreError) Error() string {
	if e.Offender != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Cause, e.Offender)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
}

func (e *CoreError) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, model.ErrInvalidInput) work against the kind
// rather than a specific instance.
func (e *CoreError) Is(target error) bool {
	other, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func newError(kind ErrorKind, offender string, format string, args ...any) *CoreError {
	return &CoreError{Kind: kind, Offender: offender, Cause: fmt.Errorf(format, args...)}
}

// InvalidInput builds a KindInvalidInput error naming the offending id.
func InvalidInput(offender, format string, args ...any) *CoreError {
	return newError(KindInvalidInput, offender, format, args...)
}

// DegenerateInput builds a KindDegenerateInput error.
func DegenerateInput(format string, args ...any) *CoreError {
	return newError(KindDegenerateInput, "", format, args...)
}

// TopologyUnsupported builds a KindTopologyUnsupported error naming the
// offending station (if any).
func TopologyUnsupported(offender, format string, args ...any) *CoreError {
	return newError(KindTopologyUnsupported, offender, format, args...)
}

// InternalInvariantFailure builds a KindInternalInvariantFailure error.
// Callers that see this should treat it as a bug report, never retry.
func InternalInvariantFailure(format string, args ...any) *CoreError {
	return newError(KindInternalInvariantFailure, "", format, args...)
}

// Sentinel kind markers for errors.Is comparisons against a bare kind.
var (
	ErrInvalidInput            = &CoreError{Kind: KindInvalidInput, Cause: errors.New("invalid input")}
	ErrDegenerateInput          = &CoreError{Kind: KindDegenerateInput, Cause: errors.New("degenerate input")}
	ErrTopologyUnsupported      = &CoreError{Kind: KindTopologyUnsupported, Cause: errors.New("topology unsupported")}
	ErrInternalInvariantFailure = &CoreError{Kind: KindInternalInvariantFailure, Cause: errors.New("internal invariant failure")}
)
