// Package errors provides structured error types for the wasm-imports library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes the byte offset within the module binary
// where decoding stopped, plus a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindUnknownImportKind).
//		Offset(pos).
//		Detail("import kind 0x%02x", b).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnexpectedEOF(pos, "import name")
//	err := errors.InvalidTypeIndex(pos, idx, len(types))
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when Phase and Kind are equal, so
// callers can test for a category without constructing the exact message.
package errors
