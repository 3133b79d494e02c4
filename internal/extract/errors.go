package extract

import "fmt"

// ParseError reports that the format-specific decoder failed on the input
// (corrupt or unsupported internal structure). The dispatcher falls back
// to the plain-text extractor exactly once when it sees one.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: cannot parse file: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// EmptyResultError reports that extraction succeeded mechanically but
// produced no usable text. Kept distinct from ParseError so the caller can
// tell "file has no readable text" apart from "file corrupt".
type EmptyResultError struct {
	Format string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%s: file contains no readable text", e.Format)
}

// ContainerError reports that every bundle cascade strategy was exhausted
// without recovering text. Never converted into an empty success.
type ContainerError struct {
	Kind   string
	Reason string
}

func (e *ContainerError) Error() string {
	return fmt.Sprintf("%s bundle: %s", e.Kind, e.Reason)
}
