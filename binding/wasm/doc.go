// Package wasm binds wazero runtimes, compiled modules and module instances
// as owned handles.
//
// None of these resources are reference counted: each is destroyed by an
// explicit Close(ctx), so all three use the alternate-teardown strategy.
// Closing a runtime also closes everything it created; releasing a module
// afterwards is harmless.
//
//	rt := wasm.NewRuntime(ctx)
//	defer rt.Release()
//
//	compiled, err := rt.Compile(ctx, bin)
//	...
//	defer compiled.Release()
//
//	mod, err := rt.Instantiate(ctx, compiled, "calc")
//	...
//	defer mod.Release()
//
// Runtime.Module looks up an instance by name. The lookup grants no
// ownership, so it yields a borrow.
package wasm
