// Package file locates configuration files by walking up from the working
// directory, the way git finds its repository root.
package file

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/abey/findconf/internal/format"
)

// Locator describes a configuration file to search for. A Locator is a value
// and is never modified once built, so it can be shared between goroutines.
type Locator struct {
	name         string
	subdirectory string
}

// Result is a located configuration file.
type Result struct {
	// DisplayPath is Path relative to the working directory, or Path itself
	// when no relative form exists.
	DisplayPath string
	Path        string
	Contents    string
}

// New returns a Locator for the base name (without extension) name.
func New(name string) Locator {
	return Locator{name: name}
}

// In returns a copy of l that searches for name inside subdirectory of every
// visited directory.
func (l Locator) In(subdirectory string) Locator {
	l.subdirectory = subdirectory
	return l
}

// Basename is the searched path relative to each visited directory, without
// extension.
func (l Locator) Basename() string {
	if l.subdirectory == "" {
		return l.name
	}
	return filepath.Join(l.subdirectory, l.name)
}

// Find walks up from the working directory and returns the absolute path of
// the first regular file named Basename() plus one of extensions. Within a
// directory the extensions are tried in order; nearer directories win.
func (l Locator) Find(extensions []string) (string, error) {
	if len(extensions) == 0 {
		return "", ErrNoExtensions
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", &IOError{Op: "get working directory", Err: err}
	}

	return l.findFrom(cwd, extensions)
}

// Locate finds the file like Find does, then reads it as UTF-8 text.
func (l Locator) Locate(extensions []string) (Result, error) {
	if len(extensions) == 0 {
		return Result{}, ErrNoExtensions
	}

	cwd, err := os.Getwd()
	if err != nil {
		return Result{}, &IOError{Op: "get working directory", Err: err}
	}

	found, err := l.findFrom(cwd, extensions)
	if err != nil {
		return Result{}, err
	}

	display, ok := Relativize(found, cwd)
	if !ok {
		display = found
	}

	contents, err := readText(found)
	if err != nil {
		return Result{}, err
	}

	return Result{
		DisplayPath: display,
		Path:        found,
		Contents:    contents,
	}, nil
}

// Resolve locates the file using the extensions registered for f.
func (l Locator) Resolve(f format.Format) (Result, error) {
	return l.Locate(f.Extensions())
}

func (l Locator) findFrom(dir string, extensions []string) (string, error) {
	basename := l.Basename()

	for {
		for _, ext := range extensions {
			candidate := filepath.Join(dir, withExtension(basename, ext))
			if isRegularFile(candidate) {
				slog.Debug("found configuration file", "path", candidate)
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			slog.Debug("reached filesystem root", "name", basename)
			return "", &NotFoundError{Name: basename}
		}

		dir = parent
	}
}

func withExtension(basename, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return basename
	}
	return basename + "." + ext
}

// isRegularFile follows symlinks, so a link to a file matches and a link to a
// directory does not.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func readText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", &IOError{Op: "read", Path: path, Err: err}
	}

	if !utf8.Valid(data) {
		return "", &IOError{Op: "decode", Path: path, Err: ErrInvalidUTF8}
	}

	return string(data), nil
}
