package transcript

import (
	"bytes"
	"fmt"
	"io"
)

// Console fans every write out to all attached sinks plus an in-memory
// buffer, so the transcript reflects exactly the interleaved print order of
// the run. Single-goroutine use only, matching the sequential pipeline.
type Console struct {
	sinks []io.Writer
	buf   bytes.Buffer
}

// NewConsole attaches the given sinks (typically os.Stdout). The capture
// buffer is always attached.
func NewConsole(sinks ...io.Writer) *Console {
	return &Console{sinks: sinks}
}

func (c *Console) Write(p []byte) (int, error) {
	for _, sink := range c.sinks {
		// A broken terminal must not lose the transcript copy.
		_, _ = sink.Write(p)
	}
	return c.buf.Write(p)
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c, format, args...)
}

func (c *Console) Println(args ...any) {
	fmt.Fprintln(c, args...)
}

// Contents returns everything printed so far.
func (c *Console) Contents() string {
	return c.buf.String()
}
