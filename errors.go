package hview

import "fmt"

// FormatError means a byte stream is not a valid hierarchical container.
// It is fatal to the request that tried to open the stream; the session
// needs a fresh upload.
type FormatError struct {
	Format string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("not a valid %s container: %s", e.Format, e.Reason)
}

// SelectionError means a requested channel name does not resolve against
// the known channel list. It rejects one extraction; the session remains
// usable and the user can reselect.
type SelectionError struct {
	Name string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("channel %q is not in the channel list", e.Name)
}

// NonPlottableError means a selected dataset holds data that cannot be
// charted (wrong kind or rank). Callers show an informational message and a
// raw-value fallback rather than treating this as a hard failure.
type NonPlottableError struct {
	Path string
}

func (e *NonPlottableError) Error() string {
	return fmt.Sprintf("dataset %q is not plottable", e.Path)
}
