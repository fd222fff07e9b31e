package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/abey/findconf/internal/file"
)

type ExitCode int

const (
	ExitSuccess ExitCode = 0
	// general error
	ExitGeneral ExitCode = 1
	// configuration error
	ExitConfig ExitCode = 2
	// no configuration file between the working directory and the root
	ExitNotFound ExitCode = 3
	// filesystem error
	ExitIO ExitCode = 4
)

// ErrConfig marks failures caused by findconf's own settings or arguments.
var ErrConfig = stderrors.New("configuration error")

// ExitCodeFor maps an error returned by a command to the process exit code.
func ExitCodeFor(err error) ExitCode {
	switch {
	case err == nil:
		return ExitSuccess
	case file.IsNotFound(err):
		return ExitNotFound
	case file.IsIO(err):
		return ExitIO
	case stderrors.Is(err, ErrConfig), stderrors.Is(err, file.ErrNoExtensions):
		return ExitConfig
	default:
		return ExitGeneral
	}
}

func FatalError(code ExitCode, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(int(code))
}
