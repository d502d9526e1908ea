package interp

import (
	"fmt"

	"github.com/zonkey-lang/zonkey/internal/lexer"
)

// RuntimeErrorKind tags one of the fixed runtime-failure variants spec.md
// §4.3's "Runtime errors" enumerates. Kept as a closed tag (mirroring the
// teacher's error-message catalog approach) rather than a free-form string
// so the host-facing ScriptError event and tests can switch on it.
type RuntimeErrorKind string

const (
	ErrDivisionByZero             RuntimeErrorKind = "DivisionByZero"
	ErrIndexOutOfRange            RuntimeErrorKind = "IndexOutOfRange"
	ErrPropertyNotInitialised     RuntimeErrorKind = "PropertyNotInitialised"
	ErrInsufficientPermissionLevel RuntimeErrorKind = "InsufficientPermissionLevel"
	ErrInstallFailed              RuntimeErrorKind = "InstallFailed"
	ErrSettingsFailed             RuntimeErrorKind = "SettingsFailed"
	ErrReadAddressFailed          RuntimeErrorKind = "ReadAddressFailed"
	ErrWriteAddressFailed         RuntimeErrorKind = "WriteAddressFailed"
	ErrFailedStringToIntegerCast  RuntimeErrorKind = "FailedStringToIntegerCast"
	ErrFailedStringToFloatCast    RuntimeErrorKind = "FailedStringToFloatCast"
	ErrInvalidHexColour           RuntimeErrorKind = "InvalidHexColour"
)

// RuntimeError is a script-terminating failure: it unwinds evaluation all
// the way out to Run, which reports it to the host as a ScriptError event
// rather than a Go panic (spec.md §5's host protocol never surfaces a Go
// stack trace across the channel boundary).
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Pos     lexer.Position
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Message)
}

func runtimeErrorf(kind RuntimeErrorKind, pos lexer.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}
