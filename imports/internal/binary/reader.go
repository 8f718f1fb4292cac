package binary

import (
	"errors"
	"unicode/utf8"
)

// Sentinel errors surfaced by the Reader. The imports package maps these onto
// its structured error taxonomy with offset context.
var (
	// ErrUnexpectedEOF is returned when a read or skip would pass the end of input.
	ErrUnexpectedEOF = errors.New("binary: unexpected end of input")

	// ErrOverflow is returned when a LEB128 value exceeds its maximum bit width.
	// 32-bit reads reject at the sixth group (shift >= 35), 64-bit reads at the
	// eleventh (shift >= 70). Non-minimal encodings below those bounds are accepted.
	ErrOverflow = errors.New("binary: leb128 overflow")

	// ErrInvalidUTF8 is returned by ReadName for names that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("binary: invalid utf-8 in name")

	// ErrMismatch is returned by Expect when the next bytes differ from the expected sequence.
	ErrMismatch = errors.New("binary: byte sequence mismatch")
)

// Reader is a forward-only cursor over an immutable byte slice with
// WASM-specific read methods. The zero offset is the start of the slice.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader over data. The slice is not copied; callers must
// not mutate it while the Reader is in use.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte offset.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// HasRemaining reports whether any unread bytes remain.
func (r *Reader) HasRemaining() bool {
	return r.pos < len(r.data)
}

// ReadByte reads a single byte and advances the offset.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes returns the next n bytes as a subslice of the underlying data and
// advances the offset. No copy is made.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.pos {
		return nil, ErrUnexpectedEOF
	}
	buf := r.data[r.pos : r.pos+n]
	r.pos += n
	return buf, nil
}

// Skip advances the offset by n bytes without interpreting them.
func (r *Reader) Skip(n int) error {
	if n < 0 || n > len(r.data)-r.pos {
		return ErrUnexpectedEOF
	}
	r.pos += n
	return nil
}

// Expect consumes len(want) bytes and verifies they match exactly.
// On mismatch or truncation the offset is left at the start of the sequence.
func (r *Reader) Expect(want []byte) error {
	if len(want) > len(r.data)-r.pos {
		return ErrUnexpectedEOF
	}
	got := r.data[r.pos : r.pos+len(want)]
	for i := range want {
		if got[i] != want[i] {
			return ErrMismatch
		}
	}
	r.pos += len(want)
	return nil
}

// Peek returns up to n bytes at the current offset without advancing.
// Used for error diagnostics.
func (r *Reader) Peek(n int) []byte {
	if rem := len(r.data) - r.pos; n > rem {
		n = rem
	}
	return r.data[r.pos : r.pos+n]
}

// ReadU32 reads an unsigned LEB128 encoded uint32.
func (r *Reader) ReadU32() (uint32, error) {
	var result uint32
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 35 {
			return 0, ErrOverflow
		}
	}
}

// ReadU64 reads an unsigned LEB128 encoded uint64.
func (r *Reader) ReadU64() (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 70 {
			return 0, ErrOverflow
		}
	}
}

// ReadName reads a UTF-8 encoded name (LEB128 length-prefixed byte sequence).
// Invalid UTF-8 is rejected, never substituted.
func (r *Reader) ReadName() (string, error) {
	length, err := r.ReadU32()
	if err != nil {
		return "", err
	}
	data, err := r.ReadBytes(int(length))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}
	return string(data), nil
}
