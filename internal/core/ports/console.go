package ports

import "io"

// Console is the report output surface. Implementations fan every write out
// to all attached sinks (terminal plus transcript buffer), so report text is
// captured in exactly the order it was printed. Diagnostics that should not
// appear in the transcript belong on the Logger instead.
type Console interface {
	io.Writer
	Printf(format string, args ...any)
	Println(args ...any)
}
