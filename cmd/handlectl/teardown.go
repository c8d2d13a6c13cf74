package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/wippyai/nativeref/binding/wasm"
)

// reportTeardown instantiates bin and releases the module, its compiled
// code and the runtime in that order, printing each step.
func reportTeardown(ctx context.Context, w io.Writer, bin []byte) error {
	rt := wasm.NewRuntime(ctx)
	defer rt.Release()

	compiled, err := rt.Compile(ctx, bin)
	if err != nil {
		return err
	}
	defer compiled.Release()

	mod, err := rt.Instantiate(ctx, compiled, "main")
	if err != nil {
		return err
	}

	raw := mod.Get()
	defs := compiled.Get().ExportedFunctions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "instantiated %q\n", raw.Name())
	for _, name := range names {
		fmt.Fprintf(w, "  export %s\n", name)
	}

	mod.Release()
	fmt.Fprintf(w, "teardown 1: module %q closed=%t\n", raw.Name(), raw.IsClosed())
	compiled.Release()
	fmt.Fprintln(w, "teardown 2: compiled module")
	rt.Release()
	fmt.Fprintln(w, "teardown 3: runtime")
	return nil
}
