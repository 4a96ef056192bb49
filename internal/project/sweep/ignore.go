package sweep

import (
	"path"
	"strings"
)

// Ignore holds gitignore-style patterns matched against paths relative to
// the sweep root. Supported forms:
//   - *.stderr        any file named like that at any depth
//   - /build/         the build directory at the root only
//   - **/auxiliary/** any path with an auxiliary component
//   - !keep.rs        re-include a previously ignored path
//
// Later patterns override earlier ones.
type Ignore struct {
	rules []rule
}

type rule struct {
	glob    string
	negate  bool
	dirOnly bool
	rooted  bool
}

// NewIgnore compiles patterns. Blank entries and comments are skipped.
func NewIgnore(patterns ...string) *Ignore {
	ig := &Ignore{}
	for _, p := range patterns {
		ig.Add(p)
	}
	return ig
}

// Add appends one pattern.
func (ig *Ignore) Add(pattern string) {
	pattern = strings.TrimRight(pattern, " \t")
	if pattern == "" || strings.HasPrefix(pattern, "#") {
		return
	}

	var r rule
	if strings.HasPrefix(pattern, "!") {
		r.negate = true
		pattern = pattern[1:]
	}
	if strings.HasSuffix(pattern, "/") {
		r.dirOnly = true
		pattern = strings.TrimSuffix(pattern, "/")
	}
	if strings.HasPrefix(pattern, "/") {
		r.rooted = true
		pattern = pattern[1:]
	}
	if pattern == "" {
		return
	}
	r.glob = pattern
	ig.rules = append(ig.rules, r)
}

// Len returns the number of patterns.
func (ig *Ignore) Len() int {
	return len(ig.rules)
}

// Match reports whether rel, a slash-separated path relative to the sweep
// root, is ignored.
func (ig *Ignore) Match(rel string, isDir bool) bool {
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	ignored := false
	for _, r := range ig.rules {
		if r.dirOnly && !isDir {
			continue
		}
		if r.match(rel) {
			ignored = !r.negate
		}
	}
	return ignored
}

func (r rule) match(rel string) bool {
	parts := strings.Split(rel, "/")

	if strings.Contains(r.glob, "**") {
		return matchDoubleStar(r.glob, parts)
	}
	if r.rooted {
		if strings.Contains(r.glob, "/") {
			return glob(r.glob, rel)
		}
		return glob(r.glob, parts[0])
	}
	if !strings.Contains(r.glob, "/") {
		return glob(r.glob, parts[len(parts)-1])
	}
	for i := range parts {
		if glob(r.glob, strings.Join(parts[i:], "/")) {
			return true
		}
	}
	return false
}

// matchDoubleStar handles **/name, **/name/** and prefix/**/suffix.
func matchDoubleStar(pattern string, parts []string) bool {
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		if middle, ok := strings.CutSuffix(rest, "/**"); ok {
			for _, p := range parts {
				if glob(middle, p) {
					return true
				}
			}
			return false
		}
		for i := range parts {
			if glob(rest, strings.Join(parts[i:], "/")) {
				return true
			}
		}
		return false
	}

	prefix, suffix, _ := strings.Cut(pattern, "**")
	prefix = strings.TrimSuffix(prefix, "/")
	suffix = strings.TrimPrefix(suffix, "/")
	rel := strings.Join(parts, "/")
	if prefix != "" && rel != prefix && !strings.HasPrefix(rel, prefix+"/") {
		return false
	}
	if suffix == "" {
		return true
	}
	for i := range parts {
		if glob(suffix, strings.Join(parts[i:], "/")) {
			return true
		}
	}
	return false
}

func glob(pattern, name string) bool {
	ok, _ := path.Match(pattern, name)
	return ok
}
