package alloc

import (
	"log"
	"sync"

	"github.com/funny-falcon/memcalls/mem"
)

// Simple never reuses freed space; Dealloc is a no-op and the whole
// arena is returned to the system at once with Release. Offset 0 is
// reserved so the zero Ptr stays a null handle.
type Simple struct {
	Base
	sync.Mutex
	CurOff uint32
}

func (s *Simple) Alloc(ln int) Ptr {
	s.Lock()
	defer s.Unlock()
	return s.alloc(ln)
}

func (s *Simple) alloc(ln int) Ptr {
	if ln <= 0 || uint32(ln) >= ChunkSize-12 {
		panic("no")
	}
	if s.CurOff == 0 {
		s.CurOff = 8
		s.ExtendChunks()
	}
	n := uint32(ln)
	if (s.CurOff+n+3)&^3 >= s.CurEnd {
		s.CurOff = 8 + s.ExtendChunks()
	}
	res := s.CurOff
	s.CurOff = (s.CurOff + n + 3) &^ 3
	if s.CurOff >= s.CurEnd {
		s.CurOff = 8 + s.ExtendChunks()
	}
	return Ptr(res)
}

func (s *Simple) Dealloc(ptr Ptr) {
	// nothing
}

// Release unmaps every chunk the arena acquired. The arena is reset
// to its zero state and may be reused afterwards.
func (s *Simple) Release() {
	s.Lock()
	defer s.Unlock()
	for _, chunk := range s.Chunks {
		if err := mem.Unmap(chunk[:]); err != nil {
			log.Print(err)
		}
	}
	s.Chunks = nil
	s.CurEnd = 0
	s.CurOff = 0
}
