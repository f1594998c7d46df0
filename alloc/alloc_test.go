package alloc_test

import (
	"testing"

	"github.com/funny-falcon/memcalls/alloc"
	"github.com/funny-falcon/memcalls/mem"
	"github.com/stretchr/testify/require"
)

func TestSimpleAlloc(t *testing.T) {
	var a alloc.Simple
	defer a.Release()

	p1 := a.Alloc(10)
	require.Equal(t, alloc.Ptr(8), p1)

	p2 := a.Alloc(20)
	require.Equal(t, alloc.Ptr(20), p2)

	// 4-byte alignment
	p3 := a.Alloc(1)
	require.Equal(t, alloc.Ptr(40), p3)
	p4 := a.Alloc(1)
	require.Equal(t, alloc.Ptr(44), p4)
}

func TestSimpleGet(t *testing.T) {
	var a alloc.Simple
	defer a.Release()

	type pair struct {
		A, B uint32
	}

	ref := a.Alloc(8)
	var p *pair
	a.Get(ref, &p)
	p.A, p.B = 7, 9

	var q *pair
	a.Get(ref, &q)
	require.Equal(t, uint32(7), q.A)
	require.Equal(t, uint32(9), q.B)
	require.Equal(t, a.GetPtr(ref), a.GetPtr(ref))
}

func TestSimpleExtend(t *testing.T) {
	var a alloc.Simple
	defer a.Release()

	a.Alloc(16)
	require.Equal(t, 1, len(a.Chunks))

	// burn through the first chunk so a second gets mapped
	for i := 0; i < alloc.ChunkSize/1024+1; i++ {
		a.Alloc(1024)
	}
	require.True(t, len(a.Chunks) >= 2)

	ref := a.Alloc(4)
	var p *uint32
	a.Get(ref, &p)
	*p = 0xdeadbeef
	var q *uint32
	a.Get(ref, &q)
	require.Equal(t, uint32(0xdeadbeef), *q)
}

func TestSimpleRelease(t *testing.T) {
	var a alloc.Simple
	a.Alloc(64)
	require.Equal(t, 1, len(a.Chunks))

	a.Release()
	require.Equal(t, 0, len(a.Chunks))
	require.Equal(t, uint32(0), a.CurOff)

	// reusable after release
	p := a.Alloc(4)
	require.Equal(t, alloc.Ptr(8), p)
	a.Release()
}

func TestWriteThroughRaw(t *testing.T) {
	var a alloc.Simple
	defer a.Release()

	s := "chunk bytes"
	ref := a.Alloc(len(s))
	copy(mem.RawBytes(uintptr(a.GetPtr(ref)), len(s)), s)
	got := string(mem.RawBytes(uintptr(a.GetPtr(ref)), len(s)))
	require.Equal(t, s, got)
}
