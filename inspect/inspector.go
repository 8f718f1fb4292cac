package inspect

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-imports/errors"
	"github.com/wippyai/wasm-imports/imports"
)

// Inspector pairs a wazero runtime with a side-table of decoded import
// lists, keyed by compiled-module handle. Safe for concurrent use.
type Inspector struct {
	runtime wazero.Runtime
	mu      sync.Mutex
	entries map[wazero.CompiledModule][]imports.Import
}

// New creates an Inspector with its own wazero runtime.
func New(ctx context.Context) *Inspector {
	return NewWithRuntime(wazero.NewRuntime(ctx))
}

// NewWithRuntime creates an Inspector over an existing runtime. The caller
// retains ownership of the runtime; Close will still close it.
func NewWithRuntime(rt wazero.Runtime) *Inspector {
	return &Inspector{
		runtime: rt,
		entries: make(map[wazero.CompiledModule][]imports.Import),
	}
}

// Compile compiles wasmBytes and stores the decoded import list keyed to the
// returned handle. The exact bytes given to the compiler are the bytes
// decoded, so the stored list matches what the host saw. A decode failure
// does not fail compilation; such handles are served by the native fallback.
func (i *Inspector) Compile(ctx context.Context, wasmBytes []byte) (wazero.CompiledModule, error) {
	cm, err := i.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Compile(err)
	}

	entries, err := imports.Parse(wasmBytes)
	if err != nil {
		Logger().Warn("import decode failed, native reflection will serve this module",
			zap.String("module", cm.Name()),
			zap.Error(err))
		return cm, nil
	}

	i.mu.Lock()
	i.entries[cm] = entries
	i.mu.Unlock()

	Logger().Debug("imports recorded",
		zap.String("module", cm.Name()),
		zap.Int("count", len(entries)))
	return cm, nil
}

// Imports returns the import list stored for cm. When no stored entry exists
// it falls back to the host's native import reflection.
func (i *Inspector) Imports(cm wazero.CompiledModule) []imports.Import {
	i.mu.Lock()
	entries, ok := i.entries[cm]
	i.mu.Unlock()
	if ok {
		return entries
	}
	return NativeImports(cm)
}

// Release forgets the stored import list for cm and closes the handle.
func (i *Inspector) Release(ctx context.Context, cm wazero.CompiledModule) error {
	i.mu.Lock()
	delete(i.entries, cm)
	i.mu.Unlock()
	return cm.Close(ctx)
}

// Close drops all stored lists and closes the underlying runtime, which
// closes every compiled module it produced.
func (i *Inspector) Close(ctx context.Context) error {
	i.mu.Lock()
	i.entries = make(map[wazero.CompiledModule][]imports.Import)
	i.mu.Unlock()
	return i.runtime.Close(ctx)
}

// HasNativeReflection reports whether the host exposes import reflection for
// cm. wazero reflects imported functions and memories on every compiled
// module, but not tables or globals, so a true result still means a narrower
// view than a stored decoded list.
func HasNativeReflection(cm wazero.CompiledModule) bool {
	return cm != nil
}

// NativeImports builds an import list from the host's own reflection
// surface. Only function and memory imports are visible this way, grouped by
// kind rather than in declaration order.
func NativeImports(cm wazero.CompiledModule) []imports.Import {
	if cm == nil {
		return nil
	}

	var out []imports.Import
	for _, def := range cm.ImportedFunctions() {
		module, name, ok := def.Import()
		if !ok {
			continue
		}
		out = append(out, imports.Import{
			Module: module,
			Name:   name,
			Kind:   imports.KindFunc,
			Func: &imports.FuncType{
				Params:  valTypes(def.ParamTypes()),
				Results: valTypes(def.ResultTypes()),
			},
		})
	}
	for _, def := range cm.ImportedMemories() {
		module, name, ok := def.Import()
		if !ok {
			continue
		}
		mt := &imports.MemoryType{Min: uint64(def.Min())}
		if max, hasMax := def.Max(); hasMax {
			max64 := uint64(max)
			mt.Max = &max64
		}
		out = append(out, imports.Import{
			Module: module,
			Name:   name,
			Kind:   imports.KindMemory,
			Memory: mt,
		})
	}
	return out
}

// valTypes converts wazero value types, which use the same binary-format
// encoding as the decoder's ValType.
func valTypes(vs []api.ValueType) []imports.ValType {
	out := make([]imports.ValType, len(vs))
	for i, v := range vs {
		out[i] = imports.ValType(v)
	}
	return out
}
