package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse   Phase = "parse"   // binary module decoding
	PhaseInspect Phase = "inspect" // compiled-module inspection
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidArgument     Kind = "invalid_argument"
	KindInvalidMagic        Kind = "invalid_magic"
	KindInvalidVersion      Kind = "invalid_version"
	KindUnexpectedEOF       Kind = "unexpected_eof"
	KindInvalidFuncTypeForm Kind = "invalid_func_type_form"
	KindUnknownValueType    Kind = "unknown_value_type"
	KindUnknownElementType  Kind = "unknown_element_type"
	KindUnknownImportKind   Kind = "unknown_import_kind"
	KindInvalidTypeIndex    Kind = "invalid_type_index"
	KindInvalidUTF8         Kind = "invalid_utf8"
	KindOverflow            Kind = "overflow"
	KindNotFound            Kind = "not_found"
	KindCompile             Kind = "compile"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Offset int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Offset > 0 {
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Offset sets the byte offset within the module binary
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidArgument creates an error for an unsupported input representation
func InvalidArgument(detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidArgument,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// InvalidMagic creates a header magic mismatch error
func InvalidMagic(offset int, got []byte) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidMagic,
		Offset: offset,
		Detail: fmt.Sprintf("magic bytes % x", got),
	}
}

// InvalidVersion creates a header version mismatch error
func InvalidVersion(offset int, got []byte) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidVersion,
		Offset: offset,
		Detail: fmt.Sprintf("version bytes % x", got),
	}
}

// UnexpectedEOF creates an error for a read or skip past end of input
func UnexpectedEOF(offset int, what string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnexpectedEOF,
		Offset: offset,
		Detail: fmt.Sprintf("truncated %s", what),
	}
}

// InvalidFuncTypeForm creates an error for a function type form byte other than 0x60
func InvalidFuncTypeForm(offset int, form byte) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidFuncTypeForm,
		Offset: offset,
		Detail: fmt.Sprintf("expected functype form 0x60, got 0x%02x", form),
		Value:  form,
	}
}

// UnknownValueType creates an error for an unmapped value type tag
func UnknownValueType(offset int, tag byte) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnknownValueType,
		Offset: offset,
		Detail: fmt.Sprintf("value type tag 0x%02x", tag),
		Value:  tag,
	}
}

// UnknownElementType creates an error for a table element type outside funcref/externref
func UnknownElementType(offset int, tag byte) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnknownElementType,
		Offset: offset,
		Detail: fmt.Sprintf("element type tag 0x%02x", tag),
		Value:  tag,
	}
}

// UnknownImportKind creates an error for an import kind outside func/table/memory/global
func UnknownImportKind(offset int, kind byte) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnknownImportKind,
		Offset: offset,
		Detail: fmt.Sprintf("import kind 0x%02x", kind),
		Value:  kind,
	}
}

// InvalidTypeIndex creates an error for a function import whose type index
// does not resolve into the decoded type list
func InvalidTypeIndex(offset int, idx uint32, length int) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidTypeIndex,
		Offset: offset,
		Detail: fmt.Sprintf("type index %d out of range (types decoded: %d)", idx, length),
		Value:  idx,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error for a name
func InvalidUTF8(offset int, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidUTF8,
		Offset: offset,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// Overflow creates an error for a LEB128 value exceeding its bit width
func Overflow(offset int, what string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindOverflow,
		Offset: offset,
		Detail: fmt.Sprintf("leb128 %s exceeds bit width", what),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s not found", what),
	}
}

// Compile wraps a host compilation failure
func Compile(cause error) *Error {
	return &Error{
		Phase:  PhaseInspect,
		Kind:   KindCompile,
		Detail: "compile module",
		Cause:  cause,
	}
}

// Wrap wraps an existing error with phase and kind context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
