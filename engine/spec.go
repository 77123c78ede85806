package engine

import (
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/tensor-runtime/errors"
	"github.com/wippyai/tensor-runtime/tensor"
)

// ParamKind classifies one slot of a function's call contract.
type ParamKind int32

const (
	ParamBool ParamKind = iota
	ParamInt
	ParamFloat
	ParamTensor
)

// String returns a human-readable name for the kind.
func (k ParamKind) String() string {
	switch k {
	case ParamBool:
		return "bool"
	case ParamInt:
		return "int"
	case ParamFloat:
		return "float"
	case ParamTensor:
		return "tensor"
	default:
		return "unknown"
	}
}

// ResultSpec describes one output slot. Tensor outputs declare their element
// type and extents so the engine can allocate the guest buffer before the
// call.
type ResultSpec struct {
	Extents     []int32
	Kind        ParamKind
	ElementType tensor.ElementType
}

// FuncSpec describes the call contract of one exported function. Core wasm
// binaries carry no tensor-level metadata, so the loader relies on the spec
// and validates it against the export's actual wasm signature.
type FuncSpec struct {
	Name    string
	Inputs  []ParamKind
	Outputs []ResultSpec
}

// validate checks internal consistency before any module is consulted.
func (s FuncSpec) validate() error {
	if s.Name == "" {
		return errors.InvalidInput(errors.PhaseLoad, "function spec has no name")
	}

	scalarOuts := 0
	for i, out := range s.Outputs {
		if out.Kind != ParamTensor {
			scalarOuts++
			continue
		}
		for d, e := range out.Extents {
			if e < 0 {
				return errors.InvalidInput(errors.PhaseLoad,
					fmt.Sprintf("function %q output %d has negative extent at dimension %d", s.Name, i, d))
			}
		}
	}
	if scalarOuts > 1 {
		return errors.InvalidInput(errors.PhaseLoad,
			fmt.Sprintf("function %q declares %d scalar outputs; the ABI lifts at most one wasm result", s.Name, scalarOuts))
	}
	return nil
}

// usesMemory reports whether any slot crosses through guest memory.
func (s FuncSpec) usesMemory() bool {
	for _, k := range s.Inputs {
		if k == ParamTensor {
			return true
		}
	}
	for _, out := range s.Outputs {
		if out.Kind == ParamTensor {
			return true
		}
	}
	return false
}

// wasmSignature returns the parameter and result types the spec lowers to.
func (s FuncSpec) wasmSignature() (params, results []api.ValueType) {
	for _, k := range s.Inputs {
		params = append(params, lowerKind(k)...)
	}
	for _, out := range s.Outputs {
		if out.Kind == ParamTensor {
			params = append(params, api.ValueTypeI32, api.ValueTypeI32)
		}
	}
	for _, out := range s.Outputs {
		if out.Kind != ParamTensor {
			results = append(results, lowerKind(out.Kind)...)
		}
	}
	return params, results
}

func lowerKind(k ParamKind) []api.ValueType {
	switch k {
	case ParamBool:
		return []api.ValueType{api.ValueTypeI32}
	case ParamInt:
		return []api.ValueType{api.ValueTypeI64}
	case ParamFloat:
		return []api.ValueType{api.ValueTypeF64}
	case ParamTensor:
		return []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}
	default:
		panic(fmt.Sprintf("engine: unknown param kind %d", int32(k)))
	}
}

func sameTypes(a, b []api.ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func typeNames(types []api.ValueType) string {
	names := make([]byte, 0, len(types)*4)
	for i, t := range types {
		if i > 0 {
			names = append(names, ',', ' ')
		}
		names = append(names, api.ValueTypeName(t)...)
	}
	return string(names)
}
