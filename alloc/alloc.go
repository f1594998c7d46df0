// Package alloc is a bump allocator over anonymous mappings. It hands
// out compact uint32 handles into chunk memory, so structures built on
// it stay invisible to the garbage collector.
package alloc

import (
	"unsafe"

	"github.com/modern-go/reflect2"
)

type Ptr uint32

type Allocator interface {
	Get(ref Ptr, ptr interface{})
	Alloc(ln int) Ptr
	Dealloc(ptr Ptr)
}

type Base struct {
	Chunks []*[ChunkSize]byte
	CurEnd uint32
}

// Get points the *T that ptr references at the memory behind ref.
func (b *Base) Get(ref Ptr, ptr interface{}) {
	*(*unsafe.Pointer)(reflect2.PtrOf(ptr)) = b.GetPtr(ref)
}

func (b *Base) GetPtr(ref Ptr) unsafe.Pointer {
	chunkn, off := ref>>ChunkSizeShift, ref&(ChunkSize-1)
	return unsafe.Pointer(&b.Chunks[chunkn][off])
}

func (b *Base) ExtendChunks() uint32 {
	b.Chunks = append(b.Chunks, ChunkGenerator.Gen())
	b.CurEnd = ChunkSize * uint32(len(b.Chunks))
	return b.LastChunk()
}

func (b *Base) LastChunk() uint32 {
	return uint32(len(b.Chunks)-1) * ChunkSize
}
