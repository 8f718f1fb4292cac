// Package inspect attaches decoded import lists to compiled wazero modules.
//
// An Inspector compiles module bytes through a wazero runtime and stores the
// imports.Parse result keyed to the compiled-module handle. Asking for a
// handle's imports returns the stored list, or falls back to wazero's native
// import reflection when nothing was stored (for example when the module was
// compiled elsewhere, or its import section failed to decode).
//
//	insp := inspect.New(ctx)
//	defer insp.Close(ctx)
//
//	cm, err := insp.Compile(ctx, wasmBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, imp := range insp.Imports(cm) {
//	    fmt.Printf("%s.%s (%s)\n", imp.Module, imp.Name, imp.Kind)
//	}
//
// The native fallback is narrower than the decoder: wazero reflects imported
// functions and memories only, and reports them grouped by kind rather than
// in declaration order. Stored lists are always complete and ordered.
package inspect
