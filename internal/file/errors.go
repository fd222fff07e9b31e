package file

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNotFound matches any NotFoundError via errors.Is.
	ErrNotFound = errors.New("configuration file not found")

	// ErrNoExtensions is returned when a lookup is attempted without any
	// candidate extension.
	ErrNoExtensions = errors.New("no candidate extensions given")

	// ErrInvalidUTF8 is wrapped by an IOError when a located file is not
	// valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
)

// NotFoundError reports that no candidate file exists between the working
// directory and the filesystem root.
type NotFoundError struct {
	// Name is the searched base name, including the subdirectory and
	// excluding any extension.
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("configuration file %q not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IOError wraps an operating system failure hit while locating or reading a
// file. The underlying error is kept as is.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	var pathErr *fs.PathError
	if e.Path == "" || errors.As(e.Err, &pathErr) {
		return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the file is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsIO reports whether err is an environmental failure rather than a missing
// file.
func IsIO(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
