package main

import (
	"encoding/json"
	"fmt"

	"github.com/wippyai/tensor-runtime/engine"
	"github.com/wippyai/tensor-runtime/tensor"
)

// The spec file is a JSON list of function contracts:
//
//	[
//	  {"name": "add", "inputs": ["int", "int"], "outputs": [{"kind": "int"}]},
//	  {"name": "copy", "inputs": ["tensor"],
//	   "outputs": [{"kind": "tensor", "elementType": "f32", "extents": [2, 3]}]}
//	]
type funcSpecJSON struct {
	Name    string           `json:"name"`
	Inputs  []string         `json:"inputs"`
	Outputs []outputSpecJSON `json:"outputs"`
}

type outputSpecJSON struct {
	Kind        string  `json:"kind"`
	ElementType string  `json:"elementType,omitempty"`
	Extents     []int32 `json:"extents,omitempty"`
}

func parseSpecs(data []byte) ([]engine.FuncSpec, error) {
	var raw []funcSpecJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse spec file: %w", err)
	}

	specs := make([]engine.FuncSpec, 0, len(raw))
	for _, fn := range raw {
		spec := engine.FuncSpec{Name: fn.Name}
		for i, in := range fn.Inputs {
			kind, err := parseKind(in)
			if err != nil {
				return nil, fmt.Errorf("function %q input %d: %w", fn.Name, i, err)
			}
			spec.Inputs = append(spec.Inputs, kind)
		}
		for i, out := range fn.Outputs {
			kind, err := parseKind(out.Kind)
			if err != nil {
				return nil, fmt.Errorf("function %q output %d: %w", fn.Name, i, err)
			}
			rs := engine.ResultSpec{Kind: kind}
			if kind == engine.ParamTensor {
				et, err := parseElementType(out.ElementType)
				if err != nil {
					return nil, fmt.Errorf("function %q output %d: %w", fn.Name, i, err)
				}
				rs.ElementType = et
				rs.Extents = out.Extents
			}
			spec.Outputs = append(spec.Outputs, rs)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseKind(s string) (engine.ParamKind, error) {
	switch s {
	case "bool":
		return engine.ParamBool, nil
	case "int":
		return engine.ParamInt, nil
	case "float":
		return engine.ParamFloat, nil
	case "tensor":
		return engine.ParamTensor, nil
	default:
		return 0, fmt.Errorf("unknown kind %q (want bool, int, float, or tensor)", s)
	}
}

func parseElementType(s string) (tensor.ElementType, error) {
	switch s {
	case "", "f32":
		return tensor.F32, nil
	default:
		return 0, fmt.Errorf("unknown element type %q", s)
	}
}
