package main

import (
	"github.com/abey/findconf/internal/cli"
	"github.com/abey/findconf/internal/errors"
)

func main() {
	cmd := cli.NewRootCmd("findconf", cli.Description, `Find a configuration file by walking up from the current directory,
the way git finds its repository root.

Within each directory the candidate extensions are tried in order; the
first regular file found wins and nearer directories win over ancestors.
The file's contents are printed, preceded by its path relative to the
current directory when output goes to a terminal.`)

	if err := cmd.Execute(); err != nil {
		errors.FatalError(errors.ExitCodeFor(err), "%v", err)
	}
}
