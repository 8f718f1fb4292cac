package inspect_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tetratelabs/wazero"

	werrors "github.com/wippyai/wasm-imports/errors"
	"github.com/wippyai/wasm-imports/imports"
	"github.com/wippyai/wasm-imports/inspect"
)

// Header plus an import section with one memory import (env.mem, min=1).
var memoryImportModule = []byte{
	0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00,
	0x02, 0x0C, 0x01,
	0x03, 'e', 'n', 'v',
	0x03, 'm', 'e', 'm',
	0x02, 0x00, 0x01,
}

// Header, a type section with one nullary signature, and an import section
// with one function import (env.log) referencing type 0.
var functionImportModule = []byte{
	0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00,
	0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
	0x02, 0x0B, 0x01,
	0x03, 'e', 'n', 'v',
	0x03, 'l', 'o', 'g',
	0x00, 0x00,
}

func TestCompileStoresImports(t *testing.T) {
	ctx := context.Background()
	insp := inspect.New(ctx)
	defer insp.Close(ctx)

	cm, err := insp.Compile(ctx, memoryImportModule)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	entries := insp.Imports(cm)
	if len(entries) != 1 {
		t.Fatalf("expected 1 import, got %d", len(entries))
	}
	imp := entries[0]
	if imp.Module != "env" || imp.Name != "mem" {
		t.Errorf("names: %q.%q", imp.Module, imp.Name)
	}
	if imp.Kind != imports.KindMemory || imp.Memory == nil || imp.Memory.Min != 1 {
		t.Errorf("entry: %+v", imp)
	}
}

func TestImportsNativeFallback(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	insp := inspect.NewWithRuntime(rt)
	defer insp.Close(ctx)

	// Compiled outside the Inspector, so nothing is stored for the handle.
	cm, err := rt.CompileModule(ctx, functionImportModule)
	if err != nil {
		t.Fatalf("CompileModule: %v", err)
	}

	entries := insp.Imports(cm)
	if len(entries) != 1 {
		t.Fatalf("expected 1 import via fallback, got %d", len(entries))
	}
	imp := entries[0]
	if imp.Module != "env" || imp.Name != "log" {
		t.Errorf("names: %q.%q", imp.Module, imp.Name)
	}
	if imp.Kind != imports.KindFunc || imp.Func == nil {
		t.Fatalf("entry: %+v", imp)
	}
	if len(imp.Func.Params) != 0 || len(imp.Func.Results) != 0 {
		t.Errorf("signature: %+v", imp.Func)
	}
}

func TestCompileInvalidBytes(t *testing.T) {
	ctx := context.Background()
	insp := inspect.New(ctx)
	defer insp.Close(ctx)

	_, err := insp.Compile(ctx, []byte{0x00, 0x61, 0x73})
	if err == nil {
		t.Fatal("expected compile error")
	}
	if !errors.Is(err, &werrors.Error{Phase: werrors.PhaseInspect, Kind: werrors.KindCompile}) {
		t.Errorf("expected compile error kind, got %v", err)
	}
}

func TestRelease(t *testing.T) {
	ctx := context.Background()
	insp := inspect.New(ctx)
	defer insp.Close(ctx)

	cm, err := insp.Compile(ctx, memoryImportModule)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if err := insp.Release(ctx, cm); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestNativeImportsNilHandle(t *testing.T) {
	if got := inspect.NativeImports(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
	if inspect.HasNativeReflection(nil) {
		t.Error("nil handle should not report native reflection")
	}
}
