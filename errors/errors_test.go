package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseParse,
				Kind:   KindUnknownImportKind,
				Offset: 17,
				Detail: "import kind 0x07",
			},
			contains: []string{"[parse]", "unknown_import_kind", "offset 17", "import kind 0x07"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseParse,
				Kind:  KindUnexpectedEOF,
			},
			contains: []string{"[parse]", "unexpected_eof"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseInspect,
				Kind:   KindCompile,
				Detail: "compile module",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[inspect]", "compile", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Compile(cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should match the wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestError_Is(t *testing.T) {
	a := UnknownImportKind(10, 0x07)
	b := &Error{Phase: PhaseParse, Kind: KindUnknownImportKind}
	c := &Error{Phase: PhaseParse, Kind: KindUnexpectedEOF}

	if !errors.Is(a, b) {
		t.Error("errors with same phase and kind should match")
	}
	if errors.Is(a, c) {
		t.Error("errors with different kinds should not match")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseParse, KindOverflow).
		Offset(42).
		Value(uint64(1) << 36).
		Detail("section size").
		Build()

	if err.Phase != PhaseParse {
		t.Errorf("Phase = %q, want %q", err.Phase, PhaseParse)
	}
	if err.Kind != KindOverflow {
		t.Errorf("Kind = %q, want %q", err.Kind, KindOverflow)
	}
	if err.Offset != 42 {
		t.Errorf("Offset = %d, want 42", err.Offset)
	}
	if err.Detail != "section size" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestBuilder_DetailFormatting(t *testing.T) {
	err := New(PhaseParse, KindUnknownValueType).Detail("tag 0x%02x", byte(0x5A)).Build()
	if err.Detail != "tag 0x5a" {
		t.Errorf("Detail = %q, want %q", err.Detail, "tag 0x5a")
	}
}

func TestInvalidUTF8_TruncatesPreview(t *testing.T) {
	data := make([]byte, 64)
	for i := range data {
		data[i] = 0xFF
	}
	err := InvalidUTF8(5, data)
	// 32 preview bytes hex-encoded is 64 chars
	if !strings.Contains(err.Detail, strings.Repeat("ff", 32)) {
		t.Errorf("preview missing: %q", err.Detail)
	}
	if strings.Contains(err.Detail, strings.Repeat("ff", 33)) {
		t.Errorf("preview not truncated: %q", err.Detail)
	}
}

func TestInvalidTypeIndex(t *testing.T) {
	err := InvalidTypeIndex(20, 5, 2)
	if err.Kind != KindInvalidTypeIndex {
		t.Errorf("Kind = %q", err.Kind)
	}
	if !strings.Contains(err.Error(), "type index 5") {
		t.Errorf("message = %q", err.Error())
	}
	if v, ok := err.Value.(uint32); !ok || v != 5 {
		t.Errorf("Value = %v", err.Value)
	}
}
