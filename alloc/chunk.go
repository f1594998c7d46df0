package alloc

import (
	"log"
	"unsafe"

	"github.com/funny-falcon/memcalls/mem"
)

const SlabSize = 1 << 24
const ChunkSizeShift = 18
const ChunkSize = 1 << 18

// ChunkGen carves fixed-size chunks out of large anonymous slabs so
// allocators don't pay a syscall per chunk. A slab that cannot be
// mapped is fatal: allocator memory has no fallback.
type ChunkGen struct {
	CurSlab []byte
}

func (g *ChunkGen) Gen() (res *[ChunkSize]byte) {
	if len(g.CurSlab) == 0 {
		slab, err := mem.MapBytes(SlabSize)
		if err != nil {
			log.Fatal(err)
		}
		g.CurSlab = slab.Data
	}
	*(*unsafe.Pointer)(unsafe.Pointer(&res)) = unsafe.Pointer(&g.CurSlab[0])
	g.CurSlab = g.CurSlab[ChunkSize:]
	return res
}

var ChunkGenerator ChunkGen
