package wasm

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/nativeref/errors"
	"github.com/wippyai/nativeref/ownership"
)

// closer is satisfied by every wazero resource handled here.
type closer interface {
	Close(ctx context.Context) error
}

// closeOps tears a resource down with a background context; Unref has no
// context of its own.
type closeOps[H interface {
	comparable
	closer
}] struct{}

func (closeOps[H]) Teardown(h H) {
	if err := h.Close(context.Background()); err != nil {
		Logger().Warn("wasm: close failed", zap.Error(err))
		return
	}
	if ce := Logger().Check(zap.DebugLevel, "wasm: closed"); ce != nil {
		ce.Write(zap.String("type", typeName(h)))
	}
}

func typeName(h any) string {
	switch v := h.(type) {
	case api.Module:
		return "module " + v.Name()
	case wazero.CompiledModule:
		return "compiled module " + v.Name()
	case wazero.Runtime:
		return "runtime"
	}
	return "resource"
}

// Strategies for the wazero resource types.
type (
	RuntimeStrategy  = ownership.AlternateTeardown[wazero.Runtime, closeOps[wazero.Runtime]]
	CompiledStrategy = ownership.AlternateTeardown[wazero.CompiledModule, closeOps[wazero.CompiledModule]]
	ModuleStrategy   = ownership.AlternateTeardown[api.Module, closeOps[api.Module]]
)

// Option configures NewRuntime.
type Option func(*options)

type options struct {
	config wazero.RuntimeConfig
}

// WithRuntimeConfig replaces the default interpreter configuration.
func WithRuntimeConfig(cfg wazero.RuntimeConfig) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// Runtime owns a wazero runtime.
type Runtime struct {
	ownership.Handle[wazero.Runtime, RuntimeStrategy]
}

// CompiledModule owns compiled module code.
type CompiledModule struct {
	ownership.Handle[wazero.CompiledModule, CompiledStrategy]
}

// Module owns an instantiated module.
type Module struct {
	ownership.Handle[api.Module, ModuleStrategy]
}

// NewRuntime creates a runtime. The interpreter is used unless another
// configuration is given, so results do not depend on the host CPU.
func NewRuntime(ctx context.Context, opts ...Option) *Runtime {
	o := options{config: wazero.NewRuntimeConfigInterpreter()}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Runtime{}
	r.Assign(wazero.NewRuntimeWithConfig(ctx, o.config), ownership.ModeNone)
	return r
}

// Compile compiles a binary module.
func (r *Runtime) Compile(ctx context.Context, bin []byte) (*CompiledModule, error) {
	rt := r.Get()
	if rt == nil {
		return nil, errors.Closed(errors.PhaseLoad, "runtime")
	}
	compiled, err := rt.CompileModule(ctx, bin)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}
	c := &CompiledModule{}
	c.Assign(compiled, ownership.ModeNone)
	return c, nil
}

// Instantiate creates a named instance of compiled.
func (r *Runtime) Instantiate(ctx context.Context, compiled *CompiledModule, name string) (*Module, error) {
	rt := r.Get()
	if rt == nil {
		return nil, errors.Closed(errors.PhaseRuntime, "runtime")
	}
	if compiled == nil || !compiled.Valid() {
		return nil, errors.InvalidInput(errors.PhaseRuntime, "compiled module is empty")
	}
	mod, err := rt.InstantiateModule(ctx, compiled.Get(), wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, errors.Instantiation(err)
	}
	m := &Module{}
	m.Assign(mod, ownership.ModeNone)
	return m, nil
}

// Module returns a borrow of the instance registered under name.
func (r *Runtime) Module(name string) (*ownership.Borrowed[api.Module, ModuleStrategy], error) {
	rt := r.Get()
	if rt == nil {
		return nil, errors.Closed(errors.PhaseLookup, "runtime")
	}
	mod := rt.Module(name)
	if mod == nil {
		return nil, errors.NotFound(errors.PhaseLookup, "module", name)
	}
	return ownership.Borrow[api.Module, ModuleStrategy](mod), nil
}

// Call invokes an exported function.
func (m *Module) Call(ctx context.Context, name string, params ...uint64) ([]uint64, error) {
	mod := m.Get()
	if mod == nil {
		return nil, errors.Closed(errors.PhaseRuntime, "module")
	}
	fn := mod.ExportedFunction(name)
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseRuntime, "function", name)
	}
	res, err := fn.Call(ctx, params...)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindCallFailed, err, "call "+name)
	}
	return res, nil
}
