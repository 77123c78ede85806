package engine

import (
	"context"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/tensor-runtime/errors"
	"github.com/wippyai/tensor-runtime/runtime"
)

// Engine owns a wazero runtime and loads compiled modules into it.
type Engine struct {
	runtime wazero.Runtime
}

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages sets the maximum memory per module in pages (64KB each).
	// 0 means the wazero default.
	MemoryLimitPages uint32
}

// New creates an engine with default configuration.
func New(ctx context.Context) (*Engine, error) {
	return NewWithConfig(ctx, nil)
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(ctx context.Context, cfg *Config) (*Engine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	return &Engine{
		runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
	}, nil
}

// Close releases the engine and every module loaded through it. Descriptors
// produced by Load must not be invoked afterwards.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Load compiles and instantiates a wasm binary, binds every function in
// specs against the module's exports, and returns the resulting descriptor.
func (e *Engine) Load(ctx context.Context, wasmBytes []byte, specs []FuncSpec) (*runtime.ModuleDescriptor, error) {
	mod, err := e.runtime.Instantiate(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Load("instantiate module", err)
	}

	name := mod.Name()
	if name == "" {
		name = "module"
	}
	desc := runtime.NewDescriptor(name)

	for _, spec := range specs {
		fn, err := e.bind(mod, spec)
		if err != nil {
			_ = mod.Close(ctx)
			return nil, err
		}
		if err := desc.Register(spec.Name, int32(len(spec.Inputs)), int32(len(spec.Outputs)), fn); err != nil {
			_ = mod.Close(ctx)
			return nil, err
		}
	}

	return desc, nil
}
