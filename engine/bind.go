package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	tensorruntime "github.com/wippyai/tensor-runtime"
	"github.com/wippyai/tensor-runtime/errors"
	"github.com/wippyai/tensor-runtime/runtime"
	"github.com/wippyai/tensor-runtime/tensor"
	"github.com/wippyai/tensor-runtime/value"
)

// guestAllocator adapts a module's exported malloc/free pair. free is
// optional; modules compiled with a bump allocator simply leak within their
// own memory.
type guestAllocator struct {
	malloc api.Function
	free   api.Function
}

var _ tensorruntime.Allocator = (*guestAllocator)(nil)

func (a *guestAllocator) Alloc(size uint32) (uint32, error) {
	results, err := a.malloc.Call(context.Background(), uint64(size))
	if err != nil {
		return 0, err
	}
	return uint32(results[0]), nil
}

func (a *guestAllocator) Free(ptr uint32) {
	if a.free == nil {
		return
	}
	_, _ = a.free.Call(context.Background(), uint64(ptr))
}

// bind resolves one spec against the module's exports and produces the entry
// point registered with the descriptor.
func (e *Engine) bind(mod api.Module, spec FuncSpec) (runtime.InvokeFunc, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	fn := mod.ExportedFunction(spec.Name)
	if fn == nil {
		return nil, errors.MissingExport(spec.Name, spec.Name)
	}

	var mem tensorruntime.Memory
	var alloc tensorruntime.Allocator
	if spec.usesMemory() {
		malloc := mod.ExportedFunction("malloc")
		if malloc == nil {
			return nil, errors.MissingExport(spec.Name, "malloc")
		}
		if mod.Memory() == nil {
			return nil, errors.MissingExport(spec.Name, "memory")
		}
		mem = mod.Memory()
		alloc = &guestAllocator{malloc: malloc, free: mod.ExportedFunction("free")}
	}

	wantParams, wantResults := spec.wasmSignature()
	def := fn.Definition()
	if !sameTypes(def.ParamTypes(), wantParams) {
		return nil, errors.TypeMismatch(spec.Name,
			fmt.Sprintf("expected params (%s), module has (%s)", typeNames(wantParams), typeNames(def.ParamTypes())))
	}
	if !sameTypes(def.ResultTypes(), wantResults) {
		return nil, errors.TypeMismatch(spec.Name,
			fmt.Sprintf("expected results (%s), module has (%s)", typeNames(wantResults), typeNames(def.ResultTypes())))
	}

	Logger().Debug("bound function",
		zap.String("function", spec.Name),
		zap.Int("inputs", len(spec.Inputs)),
		zap.Int("outputs", len(spec.Outputs)))

	return func(inputs, outputs []value.Value) {
		invokeBound(fn, spec, mem, alloc, inputs, outputs)
	}, nil
}

// invokeBound implements the boundary ABI for one call. Failures here are
// contract violations or resource exhaustion and panic; invocation has no
// error channel.
func invokeBound(fn api.Function, spec FuncSpec, mem tensorruntime.Memory,
	alloc tensorruntime.Allocator, inputs, outputs []value.Value) {
	ctx := context.Background()

	stack := make([]uint64, 0, len(spec.Inputs)+2*len(spec.Outputs))
	var staged []uint32

	// Lower inputs.
	for i, k := range spec.Inputs {
		switch k {
		case ParamBool:
			if inputs[i].AsBool() {
				stack = append(stack, 1)
			} else {
				stack = append(stack, 0)
			}
		case ParamInt:
			stack = append(stack, uint64(inputs[i].AsInt()))
		case ParamFloat:
			stack = append(stack, math.Float64bits(inputs[i].AsFloat()))
		case ParamTensor:
			h := inputs[i].AsTensor()
			t := h.Get()
			ptr := stageTensor(spec.Name, mem, alloc, t)
			stack = append(stack, uint64(ptr), uint64(uint32(t.NumElements())))
			staged = append(staged, ptr)
			h.Release()
		}
	}

	// Allocate guest buffers for tensor outputs.
	outPtrs := make([]uint32, len(spec.Outputs))
	for j, out := range spec.Outputs {
		if out.Kind != ParamTensor {
			continue
		}
		size := uint32(tensor.ByteSize(out.ElementType, out.Extents))
		ptr, err := alloc.Alloc(size)
		if err != nil {
			panic(errors.AllocationFailed(spec.Name, size, err))
		}
		count := size / uint32(out.ElementType.ByteSize())
		stack = append(stack, uint64(ptr), uint64(count))
		outPtrs[j] = ptr
	}

	results, err := fn.Call(ctx, stack...)
	if err != nil {
		panic(errors.Trap(spec.Name, err))
	}

	// Lift outputs.
	ri := 0
	for j, out := range spec.Outputs {
		switch out.Kind {
		case ParamBool:
			outputs[j] = value.FromBool(results[ri] != 0)
			ri++
		case ParamInt:
			outputs[j] = value.FromInt(int64(results[ri]))
			ri++
		case ParamFloat:
			outputs[j] = value.FromFloat(math.Float64frombits(results[ri]))
			ri++
		case ParamTensor:
			size := uint32(tensor.ByteSize(out.ElementType, out.Extents))
			data, ok := mem.Read(outPtrs[j], size)
			if !ok {
				panic(fmt.Sprintf("engine: output %d of %q escapes module memory", j, spec.Name))
			}
			outputs[j] = value.FromTensor(tensor.Create(out.Extents, out.ElementType, data))
			alloc.Free(outPtrs[j])
		}
	}

	for _, ptr := range staged {
		alloc.Free(ptr)
	}
}

// stageTensor copies a tensor's bytes into guest memory and returns the
// guest pointer.
func stageTensor(function string, mem tensorruntime.Memory, alloc tensorruntime.Allocator, t *tensor.Tensor) uint32 {
	size := uint32(t.DataByteSize())
	ptr, err := alloc.Alloc(size)
	if err != nil {
		panic(errors.AllocationFailed(function, size, err))
	}
	if size > 0 && !mem.Write(ptr, t.Data()) {
		panic(fmt.Sprintf("engine: tensor argument of %q escapes module memory", function))
	}
	return ptr
}
