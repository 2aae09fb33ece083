package tolino

import (
	"errors"
	"fmt"
)

// Rejections. The block is not a supported annotation and callers skip it.
var (
	ErrEmptyInput            = errors.New("empty note block")
	ErrIncompleteBlock       = errors.New("note block has no creation date line")
	ErrUnsupportedLanguage   = errors.New("unsupported note language")
	ErrUnparsableContentType = errors.New("unparsable note content type")
)

// IsSkippable reports whether err is a rejection rather than corrupt data.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrIncompleteBlock) ||
		errors.Is(err, ErrUnsupportedLanguage) ||
		errors.Is(err, ErrUnparsableContentType)
}

// MalformedDateError is returned when a recognized date line does not match
// the language's layout.
type MalformedDateError struct {
	Value  string
	Layout string
	Err    error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed date %q (layout %q): %v", e.Value, e.Layout, e.Err)
}

func (e *MalformedDateError) Unwrap() error {
	return e.Err
}

// MalformedPageError is returned when the location header does not end in a
// page number.
type MalformedPageError struct {
	Header string
	Err    error
}

func (e *MalformedPageError) Error() string {
	return fmt.Sprintf("malformed page number in %q: %v", e.Header, e.Err)
}

func (e *MalformedPageError) Unwrap() error {
	return e.Err
}
