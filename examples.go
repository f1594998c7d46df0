package main

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"

	"github.com/funny-falcon/memcalls/alloc"
	"github.com/funny-falcon/memcalls/mem"
)

const sbrkBytes = 100

var examples = []struct {
	name string
	run  func(io.Writer) Result
}{
	{"mmap and munmap", exampleMmap},
	{"mprotect", exampleMprotect},
	{"sbrk", exampleSbrk},
	{"madvise", exampleMadvise},
	{"mlock and munlock", exampleMlock},
	{"mmap-backed arena", exampleArena},
}

// RunAll executes every example once, in order. Examples share no
// state; a failing one only prints its diagnostic and moves on.
func RunAll(w io.Writer) Report {
	var rep Report
	for i, ex := range examples {
		fmt.Fprintf(w, "\n--- Example %d: %s ---\n", i+1, ex.name)
		rep.Results = append(rep.Results, ex.run(w))
	}
	return rep
}

func exampleMmap(w io.Writer) Result {
	res := Result{Name: "mmap"}
	r, err := mem.Map(1)
	if err != nil {
		res.fail(w, "mmap", err)
		return res
	}
	res.ok("mmap")

	r.SetString("Hello from mmap!")
	res.Content = r.String()
	fmt.Fprintf(w, "memory content: %s\n", res.Content)

	if err := r.Unmap(); err != nil {
		res.fail(w, "munmap", err)
		return res
	}
	res.ok("munmap")
	return res
}

func exampleMprotect(w io.Writer) Result {
	res := Result{Name: "mprotect"}
	r, err := mem.Map(1)
	if err != nil {
		res.fail(w, "mmap", err)
		return res
	}
	res.ok("mmap")

	r.SetString("Testing mprotect")
	fmt.Fprintf(w, "before mprotect: %s\n", r.String())

	if err := r.ReadOnly(); err != nil {
		res.fail(w, "mprotect", err)
		r.Release()
		return res
	}
	res.ok("mprotect")

	res.Content = r.String()
	fmt.Fprintf(w, "after mprotect: still readable: %s\n", res.Content)

	if err := r.Unmap(); err != nil {
		res.fail(w, "munmap", err)
		return res
	}
	res.ok("munmap")
	return res
}

func exampleSbrk(w io.Writer) Result {
	res := Result{Name: "sbrk"}
	start, err := mem.Sbrk(sbrkBytes)
	if err != nil {
		res.fail(w, "sbrk", err)
		return res
	}
	res.ok("sbrk")

	end, err := mem.Sbrk(0)
	if err != nil {
		res.fail(w, "sbrk", err)
		return res
	}
	fmt.Fprintf(w, "sbrk moved break from %#x to %#x\n", start, end)

	buf := mem.RawBytes(start, sbrkBytes)
	n := copy(buf, "Memory via sbrk")
	res.Content = string(buf[:n])
	fmt.Fprintf(w, "content: %s\n", res.Content)

	if _, err := mem.Sbrk(-sbrkBytes); err != nil {
		res.fail(w, "sbrk", err)
		return res
	}
	res.ok("sbrk restore")
	return res
}

func exampleMadvise(w io.Writer) Result {
	res := Result{Name: "madvise"}
	r, err := mem.Map(4)
	if err != nil {
		res.fail(w, "mmap", err)
		return res
	}
	res.ok("mmap")

	if err := r.Advise(unix.MADV_RANDOM); err != nil {
		res.fail(w, "madvise", err)
	} else {
		res.ok("madvise")
		fmt.Fprintln(w, "madvise applied: MADV_RANDOM")
	}

	if err := r.Unmap(); err != nil {
		res.fail(w, "munmap", err)
		return res
	}
	res.ok("munmap")
	return res
}

func exampleMlock(w io.Writer) Result {
	res := Result{Name: "mlock"}
	r, err := mem.Map(1)
	if err != nil {
		res.fail(w, "mmap", err)
		return res
	}
	res.ok("mmap")

	if err := r.Lock(); err != nil {
		res.fail(w, "mlock", err)
	} else {
		res.ok("mlock")
		fmt.Fprintln(w, "memory locked")
	}

	r.SetString("Locked memory")
	res.Content = r.String()
	fmt.Fprintf(w, "content: %s\n", res.Content)

	// only unlock what was actually locked
	if res.call("mlock") {
		if err := r.Unlock(); err != nil {
			res.fail(w, "munlock", err)
		} else {
			res.ok("munlock")
			fmt.Fprintln(w, "memory unlocked")
		}
	}

	if err := r.Unmap(); err != nil {
		res.fail(w, "munmap", err)
		return res
	}
	res.ok("munmap")
	return res
}

type arenaHeader struct {
	Words uint32
	Bytes uint32
}

func exampleArena(w io.Writer) Result {
	res := Result{Name: "arena"}
	var rel mem.ReleaseHolder

	arena := &alloc.Simple{}
	rel.Add(arena)

	href := arena.Alloc(8)
	var hdr *arenaHeader
	arena.Get(href, &hdr)
	res.ok("alloc")

	words := []string{"strings", "stored", "in", "anonymous", "pages"}
	refs := make([]alloc.Ptr, len(words))
	for i, s := range words {
		refs[i] = arena.Alloc(len(s))
		copy(mem.RawBytes(uintptr(arena.GetPtr(refs[i])), len(s)), s)
		hdr.Words++
		hdr.Bytes += uint32(len(s))
	}

	out := ""
	for i, ref := range refs {
		if i > 0 {
			out += " "
		}
		out += string(mem.RawBytes(uintptr(arena.GetPtr(ref)), len(words[i])))
	}
	res.Content = out
	fmt.Fprintf(w, "arena content: %s\n", out)
	fmt.Fprintf(w, "arena header: %d words, %d bytes, %d chunk(s)\n",
		hdr.Words, hdr.Bytes, len(arena.Chunks))

	rel.Release()
	res.ok("release")
	return res
}
