package imports

import (
	"bytes"
	stderrors "errors"
	"io"

	"github.com/wippyai/wasm-imports/errors"
	"github.com/wippyai/wasm-imports/imports/internal/binary"
)

// ParseImports decodes the ordered import list of a WebAssembly binary
// module from any byte-buffer-like source: []byte, string, *bytes.Buffer, or
// io.Reader. Any other source type fails with an invalid_argument error.
// Identical bytes yield structurally equal results regardless of the source
// representation.
func ParseImports(source any) ([]Import, error) {
	data, err := normalize(source)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// normalize flattens an accepted source representation to a byte slice.
func normalize(source any) ([]byte, error) {
	switch src := source.(type) {
	case []byte:
		return src, nil
	case string:
		return []byte(src), nil
	case *bytes.Buffer:
		// Checked before io.Reader so the buffer is not drained.
		if src == nil {
			return nil, errors.InvalidArgument("source is a nil *bytes.Buffer")
		}
		return src.Bytes(), nil
	case io.Reader:
		data, err := io.ReadAll(src)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidArgument, err, "read source")
		}
		return data, nil
	case nil:
		return nil, errors.InvalidArgument("source is nil")
	default:
		return nil, errors.InvalidArgument("unsupported source type %T", source)
	}
}

// Parse decodes the ordered import list from module bytes.
//
// The scan verifies the header, accumulates function types from any type
// section it passes, and returns as soon as the import section has been
// decoded; bytes after it are never examined. A module without an import
// section decodes to an empty list after scanning to the end of input.
func Parse(data []byte) ([]Import, error) {
	r := binary.NewReader(data)

	if err := parseHeader(r); err != nil {
		return nil, err
	}

	// Function types accumulated in byte order; function imports resolve
	// type indices against this list.
	var types []FuncType

	for r.HasRemaining() {
		id, err := r.ReadByte()
		if err != nil {
			return nil, fail(r, "section id", err)
		}
		size, err := r.ReadU32()
		if err != nil {
			return nil, fail(r, "section size", err)
		}

		switch id {
		case sectionType:
			types, err = parseTypeSection(r, types)
			if err != nil {
				return nil, err
			}
		case sectionImport:
			return parseImportSection(r, types)
		default:
			// The declared size is trusted only for skipping; recognized
			// sections are decoded in place and never cross-checked against it.
			if err := r.Skip(int(size)); err != nil {
				return nil, fail(r, "section body", err)
			}
		}
	}

	return nil, nil
}

// fail maps a cursor sentinel error onto the structured taxonomy with the
// current offset attached.
func fail(r *binary.Reader, what string, err error) error {
	pos := r.Position()
	switch {
	case stderrors.Is(err, binary.ErrOverflow):
		return errors.Overflow(pos, what)
	case stderrors.Is(err, binary.ErrInvalidUTF8):
		return errors.New(errors.PhaseParse, errors.KindInvalidUTF8).
			Offset(pos).
			Detail(what).
			Cause(err).
			Build()
	default:
		return errors.UnexpectedEOF(pos, what)
	}
}

func parseHeader(r *binary.Reader) error {
	if err := r.Expect(headerMagic); err != nil {
		return errors.InvalidMagic(r.Position(), r.Peek(len(headerMagic)))
	}
	if err := r.Expect(headerVersion); err != nil {
		return errors.InvalidVersion(r.Position(), r.Peek(len(headerVersion)))
	}
	return nil
}

func parseTypeSection(r *binary.Reader, types []FuncType) ([]FuncType, error) {
	count, err := r.ReadU32()
	if err != nil {
		return nil, fail(r, "type count", err)
	}
	for i := uint32(0); i < count; i++ {
		ft, err := parseFuncType(r)
		if err != nil {
			return nil, err
		}
		types = append(types, ft)
	}
	return types, nil
}

func parseFuncType(r *binary.Reader) (FuncType, error) {
	form, err := r.ReadByte()
	if err != nil {
		return FuncType{}, fail(r, "functype form", err)
	}
	if form != funcTypeForm {
		return FuncType{}, errors.InvalidFuncTypeForm(r.Position()-1, form)
	}
	params, err := parseValTypes(r, "parameter")
	if err != nil {
		return FuncType{}, err
	}
	results, err := parseValTypes(r, "result")
	if err != nil {
		return FuncType{}, err
	}
	return FuncType{Params: params, Results: results}, nil
}

func parseValTypes(r *binary.Reader, what string) ([]ValType, error) {
	count, err := r.ReadU32()
	if err != nil {
		return nil, fail(r, what+" count", err)
	}
	out := make([]ValType, count)
	for i := range out {
		out[i], err = parseValType(r)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseValType(r *binary.Reader) (ValType, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, fail(r, "value type", err)
	}
	switch ValType(b) {
	case ValI32, ValI64, ValF32, ValF64, ValV128, ValFuncRef, ValExtern:
		return ValType(b), nil
	default:
		return 0, errors.UnknownValueType(r.Position()-1, b)
	}
}

// parseLimits decodes a limits record. Flags: bit 0 has-maximum, bit 1
// shared, bit 2 64-bit index. Field widths follow the index flag. The record
// doubles as a MemoryType; table decoding discards the memory-only fields.
// min > max is not rejected here.
func parseLimits(r *binary.Reader) (MemoryType, error) {
	flags, err := r.ReadByte()
	if err != nil {
		return MemoryType{}, fail(r, "limits flags", err)
	}
	m := MemoryType{
		Shared:   flags&limitsShared != 0,
		Memory64: flags&limitsMemory64 != 0,
	}

	if m.Memory64 {
		m.Min, err = r.ReadU64()
		if err != nil {
			return MemoryType{}, fail(r, "limits minimum", err)
		}
		if flags&limitsHasMax != 0 {
			maxVal, err := r.ReadU64()
			if err != nil {
				return MemoryType{}, fail(r, "limits maximum", err)
			}
			m.Max = &maxVal
		}
	} else {
		minVal, err := r.ReadU32()
		if err != nil {
			return MemoryType{}, fail(r, "limits minimum", err)
		}
		m.Min = uint64(minVal)
		if flags&limitsHasMax != 0 {
			maxVal, err := r.ReadU32()
			if err != nil {
				return MemoryType{}, fail(r, "limits maximum", err)
			}
			max64 := uint64(maxVal)
			m.Max = &max64
		}
	}

	return m, nil
}

func parseTableType(r *binary.Reader) (TableType, error) {
	elem, err := r.ReadByte()
	if err != nil {
		return TableType{}, fail(r, "element type", err)
	}
	if elem != byte(ValFuncRef) && elem != byte(ValExtern) {
		return TableType{}, errors.UnknownElementType(r.Position()-1, elem)
	}
	// shared/memory64 flag bits are memory-only and ignored for tables
	limits, err := parseLimits(r)
	if err != nil {
		return TableType{}, err
	}
	t := TableType{Elem: ValType(elem), Min: uint32(limits.Min)}
	if limits.Max != nil {
		max32 := uint32(*limits.Max)
		t.Max = &max32
	}
	return t, nil
}

func parseGlobalType(r *binary.Reader) (GlobalType, error) {
	val, err := parseValType(r)
	if err != nil {
		return GlobalType{}, err
	}
	mut, err := r.ReadByte()
	if err != nil {
		return GlobalType{}, fail(r, "mutability", err)
	}
	// 1 means mutable; any other value decodes as immutable
	return GlobalType{Val: val, Mutable: mut == 1}, nil
}

func parseImportSection(r *binary.Reader, types []FuncType) ([]Import, error) {
	count, err := r.ReadU32()
	if err != nil {
		return nil, fail(r, "import count", err)
	}
	out := make([]Import, count)
	for i := uint32(0); i < count; i++ {
		out[i], err = parseImport(r, types)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseImport(r *binary.Reader, types []FuncType) (Import, error) {
	module, err := r.ReadName()
	if err != nil {
		return Import{}, fail(r, "import module name", err)
	}
	name, err := r.ReadName()
	if err != nil {
		return Import{}, fail(r, "import name", err)
	}
	kind, err := r.ReadByte()
	if err != nil {
		return Import{}, fail(r, "import kind", err)
	}

	imp := Import{Module: module, Name: name, Kind: Kind(kind)}

	switch imp.Kind {
	case KindFunc:
		idx, err := r.ReadU32()
		if err != nil {
			return Import{}, fail(r, "type index", err)
		}
		// Also catches an import section appearing before any type section.
		if uint64(idx) >= uint64(len(types)) {
			return Import{}, errors.InvalidTypeIndex(r.Position(), idx, len(types))
		}
		ft := types[idx]
		imp.Func = &ft
	case KindTable:
		table, err := parseTableType(r)
		if err != nil {
			return Import{}, err
		}
		imp.Table = &table
	case KindMemory:
		memory, err := parseLimits(r)
		if err != nil {
			return Import{}, err
		}
		imp.Memory = &memory
	case KindGlobal:
		global, err := parseGlobalType(r)
		if err != nil {
			return Import{}, err
		}
		imp.Global = &global
	default:
		return Import{}, errors.UnknownImportKind(r.Position()-1, kind)
	}

	return imp, nil
}
