package logging

import (
	"io"

	"go.uber.org/multierr"
)

// teeWriter writes every log line to all of its writers. A failing writer does not
// stop the others; all write errors are returned combined.
type teeWriter struct {
	writers []io.Writer
}

func newTeeWriter(writers ...io.Writer) *teeWriter {
	return &teeWriter{writers: writers}
}

func (tw *teeWriter) Write(p []byte) (int, error) {
	var err error
	for _, w := range tw.writers {
		n, werr := w.Write(p)
		if werr == nil && n < len(p) {
			werr = io.ErrShortWrite
		}
		err = multierr.Append(err, werr)
	}
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
