package engine

// Test fixtures are hand-assembled core wasm binaries. The tiny section
// builder below keeps the length prefixes honest so the fixtures stay
// readable as opcode sequences.

type wasmBuilder struct {
	types    [][]byte
	funcs    []uint32
	bodies   [][]byte
	exports  [][]byte
	memories int
	globals  [][]byte
}

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			return out
		}
	}
}

func cat(chunks ...[]byte) []byte {
	var out []byte
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

// funcType encodes 0x60 with the given param and result value types.
func funcType(params, results []byte) []byte {
	return cat([]byte{0x60}, uleb(uint32(len(params))), params, uleb(uint32(len(results))), results)
}

// addFunc registers a function with its type and body opcodes (without the
// locals declaration, which is always empty here) and returns its index.
func (b *wasmBuilder) addFunc(ft []byte, ops []byte) uint32 {
	typeIdx := uint32(len(b.types))
	b.types = append(b.types, ft)
	idx := uint32(len(b.funcs))
	b.funcs = append(b.funcs, typeIdx)
	body := cat(uleb(0), ops) // zero locals
	b.bodies = append(b.bodies, cat(uleb(uint32(len(body))), body))
	return idx
}

func (b *wasmBuilder) exportFunc(name string, idx uint32) {
	b.exports = append(b.exports, cat(uleb(uint32(len(name))), []byte(name), []byte{0x00}, uleb(idx)))
}

func (b *wasmBuilder) exportMemory(name string) {
	b.memories = 1
	b.exports = append(b.exports, cat(uleb(uint32(len(name))), []byte(name), []byte{0x02}, uleb(0)))
}

// addGlobal registers a mutable i32 global with the given init value.
func (b *wasmBuilder) addGlobal(init uint32) {
	// i32.const takes a signed LEB; small positive values encode the same
	// either way.
	initExpr := cat([]byte{0x41}, uleb(init), []byte{0x0b})
	b.globals = append(b.globals, cat([]byte{0x7f, 0x01}, initExpr))
}

func vec(items [][]byte) []byte {
	out := uleb(uint32(len(items)))
	for _, item := range items {
		out = append(out, item...)
	}
	return out
}

func section(id byte, payload []byte) []byte {
	return cat([]byte{id}, uleb(uint32(len(payload))), payload)
}

func (b *wasmBuilder) build() []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	out = append(out, section(1, vec(b.types))...)

	var funcIdxs [][]byte
	for _, ti := range b.funcs {
		funcIdxs = append(funcIdxs, uleb(ti))
	}
	out = append(out, section(3, vec(funcIdxs))...)

	if b.memories > 0 {
		// One memory, min 1 page, no max.
		out = append(out, section(5, vec([][]byte{{0x00, 0x01}}))...)
	}
	if len(b.globals) > 0 {
		out = append(out, section(6, vec(b.globals))...)
	}
	out = append(out, section(7, vec(b.exports))...)
	out = append(out, section(10, vec(b.bodies))...)
	return out
}

const (
	tI32 = 0x7f
	tI64 = 0x7e
	tF64 = 0x7c
)

// scalarWasm builds a module exporting:
//
//	add(a: i64, b: i64) -> i64
//	mul(a: f64, b: f64) -> f64
//	not(a: i32) -> i32
//	boom() traps via unreachable
func scalarWasm() []byte {
	b := &wasmBuilder{}

	add := b.addFunc(funcType([]byte{tI64, tI64}, []byte{tI64}),
		[]byte{0x20, 0x00, 0x20, 0x01, 0x7c, 0x0b}) // local.get 0; local.get 1; i64.add
	mul := b.addFunc(funcType([]byte{tF64, tF64}, []byte{tF64}),
		[]byte{0x20, 0x00, 0x20, 0x01, 0xa2, 0x0b}) // local.get 0; local.get 1; f64.mul
	not := b.addFunc(funcType([]byte{tI32}, []byte{tI32}),
		[]byte{0x20, 0x00, 0x45, 0x0b}) // local.get 0; i32.eqz
	boom := b.addFunc(funcType(nil, nil),
		[]byte{0x00, 0x0b}) // unreachable

	b.exportFunc("add", add)
	b.exportFunc("mul", mul)
	b.exportFunc("not", not)
	b.exportFunc("boom", boom)
	return b.build()
}

// tensorWasm builds a module with exported memory and a bump allocator:
//
//	malloc(size: i32) -> i32
//	copy(src: i32, srcN: i32, dst: i32, dstN: i32)    bulk-copies srcN f32s
//	first(ptr: i32, n: i32) -> f64                    loads element 0
func tensorWasm() []byte {
	b := &wasmBuilder{}
	b.addGlobal(1024) // heap pointer, global 0

	malloc := b.addFunc(funcType([]byte{tI32}, []byte{tI32}), []byte{
		0x23, 0x00, // global.get 0 (old heap pointer, returned)
		0x23, 0x00, 0x20, 0x00, 0x6a, // global.get 0; local.get 0; i32.add
		0x24, 0x00, // global.set 0
		0x0b,
	})
	cp := b.addFunc(funcType([]byte{tI32, tI32, tI32, tI32}, nil), []byte{
		0x20, 0x02, // local.get 2 (dst ptr)
		0x20, 0x00, // local.get 0 (src ptr)
		0x20, 0x01, 0x41, 0x04, 0x6c, // local.get 1; i32.const 4; i32.mul (byte length)
		0xfc, 0x0a, 0x00, 0x00, // memory.copy
		0x0b,
	})
	first := b.addFunc(funcType([]byte{tI32, tI32}, []byte{tF64}), []byte{
		0x20, 0x00, // local.get 0
		0x2a, 0x02, 0x00, // f32.load align=4
		0xbb, // f64.promote_f32
		0x0b,
	})

	b.exportMemory("memory")
	b.exportFunc("malloc", malloc)
	b.exportFunc("copy", cp)
	b.exportFunc("first", first)
	return b.build()
}
