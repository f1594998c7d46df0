// +build !linux

package mem

import (
	"golang.org/x/sys/unix"
)

// The break only exists as a manipulable resource on Linux.

func Brk(addr uintptr) (uintptr, error) {
	return 0, unix.ENOSYS
}

func Sbrk(incr int) (uintptr, error) {
	return 0, unix.ENOSYS
}
