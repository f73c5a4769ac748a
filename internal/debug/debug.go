// Package debug provides opt-in trace logging for the combinators whose
// control flow is least obvious (Then, TakeWhile, Join): a package-level
// boolean gates every call, so tracing costs nothing when disabled.
package debug

import "fmt"

// Enabled gates Printf. Off by default; flip it on in a test or a calling
// program to trace combinator decisions.
var Enabled = false

// Printf prints a trace line when Enabled is true.
func Printf(format string, args ...any) {
	if !Enabled {
		return
	}
	fmt.Printf(format+"\n", args...)
}
