// +build linux

package mem

import (
	"golang.org/x/sys/unix"
)

// Brk sets the program break to addr and returns the resulting break.
// Linux brk(2) does not report failure through errno: when the request
// cannot be satisfied the kernel just returns the unchanged break.
// Brk(0) queries the current break.
func Brk(addr uintptr) (uintptr, error) {
	brk, _, errno := unix.Syscall(unix.SYS_BRK, addr, 0, 0)
	if errno != 0 {
		return 0, errno
	}
	return brk, nil
}

// Sbrk adjusts the program break by incr bytes and returns the
// previous break, mirroring sbrk(3). Sbrk(0) returns the current
// break without moving it. The Go heap lives in its own mappings, so
// moving the break does not disturb the runtime.
func Sbrk(incr int) (uintptr, error) {
	cur, err := Brk(0)
	if err != nil {
		return 0, err
	}
	if incr == 0 {
		return cur, nil
	}
	want := uintptr(int64(cur) + int64(incr))
	got, err := Brk(want)
	if err != nil {
		return 0, err
	}
	if got != want {
		return 0, unix.ENOMEM
	}
	return cur, nil
}
