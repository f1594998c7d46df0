package main

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var config = jsoniter.Config{
	OnlyTaggedField: true,
	CaseSensitive:   true,
}.Froze()

// Call records one syscall attempt inside an example.
type Call struct {
	Op  string `json:"op"`
	Err string `json:"err,omitempty"`
}

// Result is the outcome of one example: the calls it made in order,
// the content it read back from its region, and whether anything
// failed. A failed example never fails the process.
type Result struct {
	Name    string `json:"name"`
	Calls   []Call `json:"calls"`
	Content string `json:"content,omitempty"`
	Failed  bool   `json:"failed"`
}

type Report struct {
	Results []Result `json:"results"`
}

func (r *Result) ok(op string) {
	r.Calls = append(r.Calls, Call{Op: op})
}

func (r *Result) fail(w io.Writer, op string, err error) {
	r.Calls = append(r.Calls, Call{Op: op, Err: err.Error()})
	r.Failed = true
	fmt.Fprintf(w, "%s: %s\n", op, err)
}

func (r *Result) call(op string) bool {
	for _, c := range r.Calls {
		if c.Op == op && c.Err == "" {
			return true
		}
	}
	return false
}
