package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/tensor-runtime/engine"
	"github.com/wippyai/tensor-runtime/runtime"
	"github.com/wippyai/tensor-runtime/tensor"
	"github.com/wippyai/tensor-runtime/value"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to compiled module")
		specFile    = flag.String("spec", "", "Path to JSON function spec file")
		funcName    = flag.String("func", "", "Function to invoke")
		argsStr     = flag.String("args", "", "Arguments, semicolon-separated (tensors as 2x3:1,2,3,4,5,6)")
		list        = flag.Bool("list", false, "List functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *wasmFile == "" || *specFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: nrt -wasm <file.wasm> -spec <specs.json> -func name [-args a;b;c]")
		fmt.Fprintln(os.Stderr, "       nrt -wasm <file.wasm> -spec <specs.json> -list")
		fmt.Fprintln(os.Stderr, "       nrt -wasm <file.wasm> -spec <specs.json> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			runtime.SetLogger(logger)
			engine.SetLogger(logger)
		}
	}

	if *interactive {
		if err := runInteractive(*wasmFile, *specFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*wasmFile, *specFile, *funcName, *argsStr, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(wasmFile, specFile, funcName, argsStr string, listOnly bool) error {
	ctx := context.Background()

	wasmBytes, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read module: %w", err)
	}
	specBytes, err := os.ReadFile(specFile)
	if err != nil {
		return fmt.Errorf("read spec: %w", err)
	}
	specs, err := parseSpecs(specBytes)
	if err != nil {
		return err
	}

	eng, err := engine.New(ctx)
	if err != nil {
		return err
	}
	defer eng.Close(ctx)

	desc, err := eng.Load(ctx, wasmBytes, specs)
	if err != nil {
		return err
	}

	if listOnly || funcName == "" {
		fmt.Printf("Module: %s\n\nFunctions:\n", wasmFile)
		for _, name := range desc.Functions() {
			meta, _ := runtime.GetMetadata(desc, name)
			fmt.Printf("  %s  (%d in, %d out)\n", formatSignature(name, specs), meta.NumInputs, meta.NumOutputs)
		}
		return nil
	}

	spec, ok := findSpec(specs, funcName)
	if !ok {
		return fmt.Errorf("function %q not in spec file", funcName)
	}
	meta, err := runtime.GetMetadata(desc, funcName)
	if err != nil {
		return err
	}

	inputs, err := parseArgs(spec, argsStr)
	if err != nil {
		return err
	}
	defer value.ReleaseAll(inputs)

	outputs := make([]value.Value, meta.NumOutputs)
	if err := runtime.InvokeChecked(desc, funcName, inputs, outputs); err != nil {
		return err
	}
	defer value.ReleaseAll(outputs)

	for i := range outputs {
		fmt.Printf("out[%d] = %s\n", i, formatValue(outputs[i]))
	}
	return nil
}

func findSpec(specs []engine.FuncSpec, name string) (engine.FuncSpec, bool) {
	for _, s := range specs {
		if s.Name == name {
			return s, true
		}
	}
	return engine.FuncSpec{}, false
}

func formatSignature(name string, specs []engine.FuncSpec) string {
	spec, ok := findSpec(specs, name)
	if !ok {
		return name
	}
	ins := make([]string, len(spec.Inputs))
	for i, k := range spec.Inputs {
		ins[i] = k.String()
	}
	outs := make([]string, len(spec.Outputs))
	for i, o := range spec.Outputs {
		outs[i] = o.Kind.String()
	}
	return fmt.Sprintf("%s(%s) -> (%s)", name, strings.Join(ins, ", "), strings.Join(outs, ", "))
}

// parseArgs converts semicolon-separated argument text to input values,
// typed by the function spec.
func parseArgs(spec engine.FuncSpec, argsStr string) ([]value.Value, error) {
	var parts []string
	if argsStr != "" {
		parts = strings.Split(argsStr, ";")
	}
	if len(parts) != len(spec.Inputs) {
		return nil, fmt.Errorf("function %q takes %d arguments, got %d", spec.Name, len(spec.Inputs), len(parts))
	}

	inputs := make([]value.Value, len(parts))
	for i, part := range parts {
		v, err := parseArg(spec.Inputs[i], strings.TrimSpace(part))
		if err != nil {
			value.ReleaseAll(inputs[:i])
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		inputs[i] = v
	}
	return inputs, nil
}

func parseArg(kind engine.ParamKind, text string) (value.Value, error) {
	switch kind {
	case engine.ParamBool:
		switch text {
		case "true", "1":
			return value.FromBool(true), nil
		case "false", "0":
			return value.FromBool(false), nil
		}
		return value.None(), fmt.Errorf("invalid bool %q", text)
	case engine.ParamInt:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return value.None(), fmt.Errorf("invalid int %q", text)
		}
		return value.FromInt(n), nil
	case engine.ParamFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return value.None(), fmt.Errorf("invalid float %q", text)
		}
		return value.FromFloat(f), nil
	case engine.ParamTensor:
		return parseTensorArg(text)
	default:
		return value.None(), fmt.Errorf("unsupported argument kind %s", kind)
	}
}

// parseTensorArg reads a tensor literal of the form "2x3:1,2,3,4,5,6".
// A leading ":" gives a rank-0 tensor with one element.
func parseTensorArg(text string) (value.Value, error) {
	shapeStr, dataStr, found := strings.Cut(text, ":")
	if !found {
		return value.None(), fmt.Errorf("tensor literal %q needs the form EXTENTSxEXTENTS:v,v,...", text)
	}

	var extents []int32
	if shapeStr != "" {
		for _, dim := range strings.Split(shapeStr, "x") {
			n, err := strconv.ParseInt(strings.TrimSpace(dim), 10, 32)
			if err != nil || n < 0 {
				return value.None(), fmt.Errorf("invalid extent %q", dim)
			}
			extents = append(extents, int32(n))
		}
	}

	var values []float32
	if dataStr != "" {
		for _, item := range strings.Split(dataStr, ",") {
			f, err := strconv.ParseFloat(strings.TrimSpace(item), 32)
			if err != nil {
				return value.None(), fmt.Errorf("invalid element %q", item)
			}
			values = append(values, float32(f))
		}
	}

	want := int32(1)
	for _, e := range extents {
		want *= e
	}
	if int32(len(values)) != want {
		return value.None(), fmt.Errorf("shape %v needs %d elements, got %d", extents, want, len(values))
	}

	return value.FromTensor(tensor.FromFloat32s(extents, values)), nil
}

func formatValue(v value.Value) string {
	if !v.IsTensor() {
		return v.String()
	}
	h := v.AsTensor()
	defer h.Release()
	t := h.Get()

	dims := make([]string, t.Rank())
	for i := range dims {
		dims[i] = strconv.Itoa(int(t.Extent(int32(i))))
	}
	return fmt.Sprintf("tensor %sx%s %v", strings.Join(dims, "x"), t.ElementType(), t.Float32s())
}
