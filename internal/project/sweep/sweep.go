// Package sweep walks a directory tree and hands every eligible file to a
// callback, collecting what happened in a Report.
//
// Hidden entries, ignore-pattern matches, vendored paths and binary files
// are skipped. What happens when the callback fails is chosen by Policy.
package sweep

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/tliron/commonlog"

	"github.com/dshills/stabilize/internal/logging"
	"github.com/dshills/stabilize/internal/project/vfs"
)

// Policy selects how per-file errors are handled.
type Policy int

const (
	// AbortOnError stops the sweep at the first failing file.
	AbortOnError Policy = iota
	// ContinueOnError records failures and keeps going.
	ContinueOnError
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case AbortOnError:
		return "abort"
	case ContinueOnError:
		return "continue"
	default:
		return "unknown"
	}
}

// VisitFunc processes one file and reports whether it changed it.
type VisitFunc func(path string) (changed bool, err error)

// Options configures a Scanner.
type Options struct {
	Policy     Policy
	Ignore     []string
	SkipBinary bool
	SkipVendor bool
}

// Scanner walks directory trees on a file system.
type Scanner struct {
	fs     vfs.FS
	opts   Options
	ignore *Ignore
	log    commonlog.Logger
}

// New creates a Scanner.
func New(fsys vfs.FS, opts Options) *Scanner {
	return &Scanner{
		fs:     fsys,
		opts:   opts,
		ignore: NewIgnore(opts.Ignore...),
		log:    logging.Logger("sweep"),
	}
}

// WithLogger replaces the scanner's logger.
func (s *Scanner) WithLogger(log commonlog.Logger) *Scanner {
	s.log = log
	return s
}

// Scan visits every eligible file under root in lexical order.
//
// Under AbortOnError the first failure ends the walk and is returned as a
// *FileError along with the partial report. Under ContinueOnError failures
// are recorded and Scan returns ErrPartialFailure once the walk is done.
func (s *Scanner) Scan(root string, fn VisitFunc) (*Report, error) {
	report := &Report{Root: root, Policy: s.opts.Policy}
	s.log.Infof("sweeping %s (%s on error)", root, s.opts.Policy)

	var abort error
	fail := func(p string, err error) error {
		report.Failed = append(report.Failed, Failure{Path: p, Err: err})
		s.log.Errorf("%s: %s", p, err)
		if s.opts.Policy == AbortOnError {
			abort = &FileError{Path: p, Err: err}
			return vfs.SkipAll
		}
		return nil
	}

	err := s.fs.WalkDir(root, func(p string, d vfs.DirEntry, err error) error {
		if err != nil {
			return fail(p, err)
		}

		rel := s.relative(root, p)
		if d.IsDir() {
			if rel != "." && s.skipDir(rel) {
				report.Skipped = append(report.Skipped, p)
				s.log.Debugf("skipping directory %s", p)
				return vfs.SkipDir
			}
			return nil
		}

		skip, err := s.skipFile(p, rel)
		if err != nil {
			return fail(p, err)
		}
		if skip {
			report.Skipped = append(report.Skipped, p)
			s.log.Debugf("skipping %s", p)
			return nil
		}

		report.Visited = append(report.Visited, p)
		changed, err := fn(p)
		if err != nil {
			return fail(p, err)
		}
		if changed {
			report.Changed = append(report.Changed, p)
		}
		return nil
	})
	if abort != nil {
		return report, abort
	}
	if err != nil && !errors.Is(err, vfs.SkipAll) {
		return report, fmt.Errorf("sweep %s: %w", root, err)
	}

	s.log.Infof("swept %s: %d visited, %d changed, %d skipped, %d failed",
		root, len(report.Visited), len(report.Changed), len(report.Skipped), len(report.Failed))
	if !report.OK() {
		return report, ErrPartialFailure
	}
	return report, nil
}

func (s *Scanner) relative(root, p string) string {
	rel, err := s.fs.Rel(root, p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(rel)
}

func (s *Scanner) skipDir(rel string) bool {
	if enry.IsDotFile(rel) {
		return true
	}
	if s.opts.SkipVendor && enry.IsVendor(rel+"/") {
		return true
	}
	return s.ignore.Match(rel, true)
}

func (s *Scanner) skipFile(p, rel string) (bool, error) {
	if enry.IsDotFile(rel) || s.ignore.Match(rel, false) {
		return true, nil
	}
	if s.opts.SkipVendor && enry.IsVendor(rel) {
		return true, nil
	}
	if !s.opts.SkipBinary {
		return false, nil
	}
	data, err := s.fs.ReadFile(p)
	if err != nil {
		return false, err
	}
	return enry.IsBinary(data), nil
}

// Summary returns a one-line description of r.
func Summary(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d visited, %d changed", len(r.Visited), len(r.Changed))
	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, ", %d skipped", len(r.Skipped))
	}
	if len(r.Failed) > 0 {
		fmt.Fprintf(&b, ", %d failed", len(r.Failed))
	}
	return b.String()
}
