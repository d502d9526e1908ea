package parser

import (
	"fmt"

	"github.com/zonkey-lang/zonkey/internal/ast"
	"github.com/zonkey-lang/zonkey/internal/lexer"
)

// ErrorTag names one parse-diagnostic variant from spec.md §7's flat
// union. Kept as a short tag (mirroring the teacher's CompilerError,
// which carries a human message built at construction time) so the
// diagnostic formatter can key behavior off it without string matching.
type ErrorTag string

const (
	TagUnexpectedToken                    ErrorTag = "UnexpectedToken"
	TagMissingStart                       ErrorTag = "MissingStart"
	TagMultipleStart                      ErrorTag = "MultipleStartBlocks"
	TagRedeclaredName                     ErrorTag = "RedeclaredName"
	TagUndeclaredName                     ErrorTag = "UndeclaredName"
	TagComparisionInvalidForType          ErrorTag = "ComparisionInvalidForType"
	TagBinaryUnmatchingTypes              ErrorTag = "BinaryOperatorUnmatchingTypes"
	TagUnaryInvalidForType                ErrorTag = "UnaryOperatorInvalidForType"
	TagInvalidCast                        ErrorTag = "InvalidCast"
	TagArgumentCountMismatch              ErrorTag = "ArgumentCountMismatch"
	TagArgumentKindMismatch               ErrorTag = "ArgumentKindMismatch"
	TagVariableDeclarationExprEvalNone    ErrorTag = "VariableDeclarationExprEvalNone"
	TagSelfOutsideMethod                  ErrorTag = "SelfOutsideMethod"
	TagSelfRedeclared                     ErrorTag = "SelfDeclaredAsVariable"
	TagBreakOutsideLoop                   ErrorTag = "BreakOutsideLoop"
	TagContinueOutsideLoop                ErrorTag = "ContinueOutsideLoop"
	TagDeclarationDidNotReturnValue       ErrorTag = "DeclarationDidNotReturnValueInAllCases"
	TagReturnValueInVoidFunction          ErrorTag = "ReturnValueInVoidFunction"
	TagReturnMissingValue                ErrorTag = "ReturnMissingValue"
	TagSubExpressionLimit                 ErrorTag = "SubExpressionLimit"
	TagUnknownType                        ErrorTag = "UnknownType"
	TagAssignmentOperatorInvalidForType   ErrorTag = "AssignmentOperatorInvalidForType"
	TagUnknownMethod                      ErrorTag = "UnknownMethod"
	TagIndexRequiresArray                 ErrorTag = "IndexRequiresArray"
)

// SubExpressionLimit is the nesting cap spec.md §4.2 requires: depth 50
// parses, depth 51 fails with TagSubExpressionLimit.
const SubExpressionLimit = 50

// Error is one accumulated parse diagnostic.
type Error struct {
	Tag     ErrorTag
	Message string
	Pos     lexer.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Tag, e.Pos, e.Message)
}

func newError(tag ErrorTag, pos lexer.Position, format string, args ...any) *Error {
	return &Error{Tag: tag, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// recoveryMode tells the caller of a failed parse step whether to resume
// at the next synchronization point (Unwind) or give up on the enclosing
// block entirely (End), per spec.md §4.2 and Design Notes.
type recoveryMode int

const (
	unwind recoveryMode = iota
	end
)

func kindName(k ast.ValueKind) string { return k.String() }
