package file

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	curDir    = "."
	parentDir = ".."
)

// Relativize computes the path of target relative to base without touching
// the filesystem. Symlinks are not resolved and neither path has to exist.
//
// The boolean result is false when no relative path can be computed: target
// is relative while base is absolute, or base steps into a ".." component at
// the point where the two paths diverge. An absolute target against a
// relative base is returned unchanged.
func Relativize(target, base string) (string, bool) {
	targetAbs, baseAbs := filepath.IsAbs(target), filepath.IsAbs(base)
	if targetAbs != baseAbs {
		if targetAbs {
			return target, true
		}
		return "", false
	}

	tc, bc := components(target), components(base)
	var out []string
	i, j := 0, 0

	for {
		switch {
		case i == len(tc) && j == len(bc):
			return joinComponents(out), true
		case j == len(bc):
			// target is a descendant of base
			out = append(out, tc[i:]...)
			return joinComponents(out), true
		case i == len(tc):
			out = append(out, parentDir)
			j++
		case len(out) == 0 && tc[i] == bc[j]:
			i++
			j++
		case bc[j] == curDir:
			out = append(out, tc[i])
			i++
			j++
		case bc[j] == parentDir:
			return "", false
		default:
			for ; j < len(bc); j++ {
				out = append(out, parentDir)
			}
			out = append(out, tc[i:]...)
			return joinComponents(out), true
		}
	}
}

// components splits p into its volume, root and named segments. Empty
// segments and interior "." segments are dropped; a leading "." of a relative
// path is kept.
func components(p string) []string {
	var comps []string

	vol := filepath.VolumeName(p)
	rest := p[len(vol):]
	if vol != "" {
		comps = append(comps, vol)
	}
	if rest != "" && os.IsPathSeparator(rest[0]) {
		comps = append(comps, string(filepath.Separator))
	}

	segments := strings.FieldsFunc(rest, func(r rune) bool {
		return r < 0x80 && os.IsPathSeparator(uint8(r))
	})
	for n, seg := range segments {
		if seg == curDir && (n > 0 || len(comps) > 0) {
			continue
		}
		comps = append(comps, seg)
	}

	return comps
}

func joinComponents(comps []string) string {
	return strings.Join(comps, string(filepath.Separator))
}
