// Package mem wraps the memory management syscalls behind an owned
// Region type. Regions are anonymous private mappings; every Region
// returned by Map must be released with Unmap (or Release) exactly once.
package mem

import (
	"log"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// PageSize is the system page size, fixed at startup.
var PageSize = syscall.Getpagesize()

// Region owns a single anonymous mapping. Methods apply to the whole
// mapping. After Unmap the region must not be touched.
type Region struct {
	Data []byte
}

// Map allocates pages*PageSize bytes as an anonymous private
// read-write mapping.
func Map(pages int) (*Region, error) {
	return MapBytes(pages * PageSize)
}

// MapBytes is Map for sizes that are not a whole number of pages.
// The kernel rounds the mapping up to a page boundary anyway.
func MapBytes(size int) (*Region, error) {
	if size <= 0 {
		return nil, unix.EINVAL
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	return &Region{Data: data}, nil
}

func (r *Region) Size() int { return len(r.Data) }

// SetString stores s at the start of the region, NUL-terminated.
func (r *Region) SetString(s string) {
	n := copy(r.Data, s)
	if n < len(r.Data) {
		r.Data[n] = 0
	}
}

// String reads the NUL-terminated string at the start of the region.
func (r *Region) String() string {
	for i, c := range r.Data {
		if c == 0 {
			return string(r.Data[:i])
		}
	}
	return string(r.Data)
}

// Protect changes access protection for the whole region.
func (r *Region) Protect(prot int) error {
	return unix.Mprotect(r.Data, prot)
}

// ReadOnly drops write access, leaving the region readable.
func (r *Region) ReadOnly() error {
	return r.Protect(unix.PROT_READ)
}

// Advise tells the kernel the expected access pattern for the region.
func (r *Region) Advise(advice int) error {
	return unix.Madvise(r.Data, advice)
}

// Lock pins the region's pages in physical memory.
func (r *Region) Lock() error {
	return unix.Mlock(r.Data)
}

// Unlock undoes Lock.
func (r *Region) Unlock() error {
	return unix.Munlock(r.Data)
}

// Unmap returns the region's pages to the system. Unmapping an
// already-unmapped region is a no-op.
func (r *Region) Unmap() error {
	if r.Data == nil {
		return nil
	}
	err := unix.Munmap(r.Data)
	r.Data = nil
	return err
}

// Release satisfies Releaser. An unmap failure at release time leaves
// nothing to recover, so it is only logged.
func (r *Region) Release() {
	if err := r.Unmap(); err != nil {
		log.Print(err)
	}
}

// Unmap returns the pages backing b to the system. b must start and
// end on page boundaries, as slices carved from a Region do.
func Unmap(b []byte) error {
	return unix.Munmap(b)
}

// RawBytes exposes n bytes of mapped memory starting at addr. The
// caller guarantees the range is mapped and writable.
func RawBytes(addr uintptr, n int) []byte {
	return (*[1 << 30]byte)(unsafe.Pointer(addr))[:n:n]
}

// Releaser frees a resource that survives past a single call.
type Releaser interface {
	Release()
}

// ReleaseHolder collects Releasers so one deferred call cleans up
// everything acquired along the way. A nil holder is usable.
type ReleaseHolder struct {
	R []Releaser
}

func (r *ReleaseHolder) Add(rr Releaser) {
	if r == nil {
		return
	}
	r.R = append(r.R, rr)
}

func (r *ReleaseHolder) Release() {
	if r == nil {
		return
	}
	for _, rr := range r.R {
		rr.Release()
	}
}
