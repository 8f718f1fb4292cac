// Package imports decodes the import section of a WebAssembly binary module.
//
// The decoder reads only what it needs: the fixed 8-byte header, the type
// section (to resolve function-import signatures), and the import section
// itself. It stops at the end of the import section and never examines the
// rest of the module. Nothing is executed or validated beyond the byte
// layouts of those sections, so the decoder is useful for learning the shape
// of a module's required imports before instantiation without a full
// compiler or runtime.
//
// # Parsing
//
// Decode imports from module bytes:
//
//	data, _ := os.ReadFile("module.wasm")
//	entries, err := imports.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, imp := range entries {
//	    fmt.Printf("%s.%s (%s)\n", imp.Module, imp.Name, imp.Kind)
//	}
//
// ParseImports additionally accepts any byte-buffer-like source (a string,
// *bytes.Buffer, or io.Reader) and normalizes it before decoding:
//
//	entries, err := imports.ParseImports(bytes.NewReader(data))
//
// A module with no import section decodes to an empty entry list.
//
// # Import entries
//
// Each entry is a tagged union: Kind selects which of the Func, Table,
// Memory, or Global fields is set, and exactly that one is non-nil. Entries
// preserve declaration order and are never mutated after Parse returns.
// Entries marshal to JSON as {module, name, kind, type} with a kind-specific
// type record.
//
// # Permissiveness
//
// Decoding is deliberately lenient where the binary format does not demand
// strictness: non-minimal LEB128 encodings are accepted, global mutability
// bytes other than 1 decode as immutable, and the shared/memory64 limits
// flag bits are ignored for tables. Names must be valid UTF-8. Every decode
// failure aborts the whole call with a structured error from the errors
// package; there is no partial-result mode.
package imports
