package imports

import (
	"encoding/json"
)

// ValType represents a WebAssembly value type. The decoder recognizes the
// closed set below; any other tag byte fails decoding.
type ValType byte

// Value type encodings as defined in the WebAssembly binary format.
const (
	ValI32     ValType = 0x7F // 32-bit integer
	ValI64     ValType = 0x7E // 64-bit integer
	ValF32     ValType = 0x7D // 32-bit float
	ValF64     ValType = 0x7C // 64-bit float
	ValV128    ValType = 0x7B // 128-bit vector (SIMD)
	ValFuncRef ValType = 0x70 // Function reference
	ValExtern  ValType = 0x6F // External reference
)

func (v ValType) String() string {
	switch v {
	case ValI32:
		return "i32"
	case ValI64:
		return "i64"
	case ValF32:
		return "f32"
	case ValF64:
		return "f64"
	case ValV128:
		return "v128"
	case ValFuncRef:
		return "funcref"
	case ValExtern:
		return "externref"
	default:
		return "unknown"
	}
}

// MarshalText encodes the value type as its textual name, so JSON output
// carries "i32" rather than a raw tag byte.
func (v ValType) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Kind identifies what an import entry brings into the module.
type Kind byte

// Import kind discriminants as encoded in the import section.
const (
	KindFunc   Kind = 0 // Function import
	KindTable  Kind = 1 // Table import
	KindMemory Kind = 2 // Memory import
	KindGlobal Kind = 3 // Global import
)

func (k Kind) String() string {
	switch k {
	case KindFunc:
		return "function"
	case KindTable:
		return "table"
	case KindMemory:
		return "memory"
	case KindGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind as its textual name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// FuncType is a function signature with parameter and result types.
// Immutable once decoded.
type FuncType struct {
	Params  []ValType `json:"parameters"`
	Results []ValType `json:"results"`
}

// TableType describes a table with element type and size limits.
type TableType struct {
	Max  *uint32 `json:"maximum,omitempty"`
	Elem ValType `json:"element"`
	Min  uint32  `json:"minimum"`
}

// MemoryType describes a linear memory with size limits. The same record is
// produced for the bare limits form used by memory imports. Memory64 reports
// a 64-bit address space; Min and Max are page counts.
type MemoryType struct {
	Max      *uint64
	Min      uint64
	Shared   bool
	Memory64 bool
}

// Index returns the memory's address index type, "i64" for memory64
// memories and "i32" otherwise.
func (m MemoryType) Index() string {
	if m.Memory64 {
		return "i64"
	}
	return "i32"
}

// MarshalJSON encodes the memory type with its index type spelled out.
func (m MemoryType) MarshalJSON() ([]byte, error) {
	type wire struct {
		Max    *uint64 `json:"maximum,omitempty"`
		Min    uint64  `json:"minimum"`
		Shared bool    `json:"shared"`
		Index  string  `json:"index"`
	}
	return json.Marshal(wire{Max: m.Max, Min: m.Min, Shared: m.Shared, Index: m.Index()})
}

// GlobalType describes an imported global's value type and mutability.
type GlobalType struct {
	Val     ValType `json:"value"`
	Mutable bool    `json:"mutable"`
}

// Import is one decoded import entry. Kind selects which type field is set;
// exactly the field matching Kind is non-nil.
type Import struct {
	Func   *FuncType
	Table  *TableType
	Memory *MemoryType
	Global *GlobalType
	Module string
	Name   string
	Kind   Kind
}

// Type returns the kind-specific type record, or nil for an entry with an
// unrecognized kind (which Parse never produces).
func (i Import) Type() any {
	switch i.Kind {
	case KindFunc:
		return i.Func
	case KindTable:
		return i.Table
	case KindMemory:
		return i.Memory
	case KindGlobal:
		return i.Global
	default:
		return nil
	}
}

// MarshalJSON encodes the entry as {module, name, kind, type} with the
// kind-specific type record and no extraneous fields.
func (i Import) MarshalJSON() ([]byte, error) {
	type wire struct {
		Module string `json:"module"`
		Name   string `json:"name"`
		Kind   Kind   `json:"kind"`
		Type   any    `json:"type"`
	}
	return json.Marshal(wire{Module: i.Module, Name: i.Name, Kind: i.Kind, Type: i.Type()})
}
