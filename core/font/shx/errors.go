package shx

import (
	"fmt"

	"github.com/npillmayer/engrave/core"
)

// ErrorKind discriminates the faults of SHX parsing and glyph
// interpretation. Container-level kinds render the font unusable;
// interpreter-level kinds abort a single render call but leave the
// parsed Font intact.
type ErrorKind int

const (
	// container level
	InvalidHeader ErrorKind = iota + 1
	UnknownVariant
	TruncatedFile
	// interpreter level
	DivideByZero
	StackOverflow
	StackUnderflow
	UnresolvedSubshape
	EmptyStream
	SubshapeLoop
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidHeader:
		return "invalid header"
	case UnknownVariant:
		return "unknown variant"
	case TruncatedFile:
		return "truncated file"
	case DivideByZero:
		return "divide by zero"
	case StackOverflow:
		return "stack overflow"
	case StackUnderflow:
		return "stack underflow"
	case UnresolvedSubshape:
		return "unresolved subshape"
	case EmptyStream:
		return "empty code stream"
	case SubshapeLoop:
		return "subshape loop"
	}
	return "shx error"
}

// Error is the unified error type for container parsing and glyph
// interpretation faults. It satisfies core.AppError.
type Error struct {
	Kind   ErrorKind
	detail string
}

func (e *Error) Error() string {
	if e.detail == "" {
		return "SHX font: " + e.Kind.String()
	}
	return fmt.Sprintf("SHX font: %s: %s", e.Kind, e.detail)
}

// ErrorCode maps the error to a general application error code.
func (e *Error) ErrorCode() int {
	return core.EINVALID
}

// UserMessage returns a message suitable for end users.
func (e *Error) UserMessage() string {
	return e.Error()
}

var _ core.AppError = &Error{}

func errShx(kind ErrorKind, format string, v ...interface{}) *Error {
	return &Error{Kind: kind, detail: fmt.Sprintf(format, v...)}
}

// KindOf returns the ErrorKind of err, or 0 if err is not an shx fault.
func KindOf(err error) ErrorKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return 0
}
