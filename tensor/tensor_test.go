package tensor

import (
	"math"
	"testing"
)

func f32Bytes(values ...float32) []byte {
	out := make([]byte, 0, len(values)*4)
	for _, v := range values {
		bits := math.Float32bits(v)
		out = append(out, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	}
	return out
}

func TestCreate2x3(t *testing.T) {
	h := Create([]int32{2, 3}, F32, f32Bytes(1, 2, 3, 4, 5, 6))
	defer h.Release()
	tn := h.Get()

	if got := tn.Rank(); got != 2 {
		t.Fatalf("expected rank 2, got %d", got)
	}
	if tn.Extent(0) != 2 || tn.Extent(1) != 3 {
		t.Fatalf("expected extents [2 3], got [%d %d]", tn.Extent(0), tn.Extent(1))
	}
	if got := tn.DataByteSize(); got != 24 {
		t.Fatalf("expected 24 data bytes, got %d", got)
	}
	if got := tn.ElementType(); got != F32 {
		t.Fatalf("expected element type f32, got %s", got)
	}

	want := []float32{1, 2, 3, 4, 5, 6}
	got := tn.Float32s()
	if len(got) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestCreateCopiesSource(t *testing.T) {
	src := f32Bytes(1, 2)
	h := Create([]int32{2}, F32, src)
	defer h.Release()

	src[0] = 0xFF
	if h.Get().Float32s()[0] != 1 {
		t.Fatal("tensor data aliases the caller's buffer")
	}
}

func TestCreateRankZero(t *testing.T) {
	h := Create(nil, F32, f32Bytes(7))
	defer h.Release()
	tn := h.Get()

	if tn.Rank() != 0 {
		t.Fatalf("expected rank 0, got %d", tn.Rank())
	}
	// A rank-0 tensor holds one element.
	if tn.DataByteSize() != 4 {
		t.Fatalf("expected 4 bytes, got %d", tn.DataByteSize())
	}
	if tn.Float32s()[0] != 7 {
		t.Fatalf("expected scalar 7, got %v", tn.Float32s()[0])
	}
}

func TestCreateZeroExtent(t *testing.T) {
	h := Create([]int32{0, 3}, F32, nil)
	defer h.Release()
	if got := h.Get().DataByteSize(); got != 0 {
		t.Fatalf("expected 0 bytes, got %d", got)
	}
}

func TestCreateShortDataPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for short source data")
		}
	}()
	Create([]int32{2, 3}, F32, f32Bytes(1, 2, 3))
}

func TestCreateNegativeExtentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative extent")
		}
	}()
	Create([]int32{2, -1}, F32, nil)
}

func TestExtentOutOfRangePanics(t *testing.T) {
	h := Create([]int32{2}, F32, f32Bytes(1, 2))
	defer h.Release()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range dimension")
		}
	}()
	h.Get().Extent(1)
}

func TestExtentsIsACopy(t *testing.T) {
	h := Create([]int32{2, 3}, F32, f32Bytes(1, 2, 3, 4, 5, 6))
	defer h.Release()
	tn := h.Get()

	ext := tn.Extents()
	ext[0] = 99
	if tn.Extent(0) != 2 {
		t.Fatal("mutating the returned extents changed the tensor")
	}
	if tn.DataByteSize() != 24 {
		t.Fatalf("byte size drifted to %d", tn.DataByteSize())
	}
}

func TestFromFloat32s(t *testing.T) {
	h := FromFloat32s([]int32{3}, []float32{1.5, -2.5, 3.25})
	defer h.Release()

	got := h.Get().Float32s()
	want := []float32{1.5, -2.5, 3.25}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestDestroyReleasesData(t *testing.T) {
	h := Create([]int32{2}, F32, f32Bytes(1, 2))
	tn := h.Get()
	h.Release()

	if tn.Data() != nil {
		t.Fatal("expected data buffer to be dropped at destroy")
	}
}

func TestSharedOwnership(t *testing.T) {
	h := Create([]int32{2}, F32, f32Bytes(1, 2))
	c := h.Clone()

	if h.Count() != 2 {
		t.Fatalf("expected count 2, got %d", h.Count())
	}

	h.Release()
	if c.Get().Data() == nil {
		t.Fatal("data dropped while a handle is still live")
	}
	c.Release()
}

func TestElementTypeByteSize(t *testing.T) {
	if got := F32.ByteSize(); got != 4 {
		t.Fatalf("expected f32 byte size 4, got %d", got)
	}
	if got := F32.String(); got != "f32" {
		t.Fatalf("expected name f32, got %q", got)
	}
}
