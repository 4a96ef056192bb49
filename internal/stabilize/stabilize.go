package stabilize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dshills/stabilize/internal/config"
	"github.com/dshills/stabilize/internal/engine/anchor"
	"github.com/dshills/stabilize/internal/engine/block"
	"github.com/dshills/stabilize/internal/logging"
	"github.com/dshills/stabilize/internal/plugin/lua"
	"github.com/dshills/stabilize/internal/project/document"
	"github.com/dshills/stabilize/internal/project/sweep"
	"github.com/dshills/stabilize/internal/project/vfs"
)

// versionToken matches the first double-quoted field of a table entry.
var versionToken = regexp.MustCompile(`"[^"]*"`)

// Stabilizer applies the configured edits for one feature.
type Stabilizer struct {
	fs      vfs.FS
	base    string
	feature string
	cfg     *config.Config
	prompt  Prompter
	log     commonlog.Logger
}

// Option configures a Stabilizer.
type Option func(*Stabilizer)

// WithPrompter asks p before each workflow.
func WithPrompter(p Prompter) Option {
	return func(s *Stabilizer) {
		s.prompt = p
	}
}

// WithLogger replaces the default logger.
func WithLogger(log commonlog.Logger) Option {
	return func(s *Stabilizer) {
		s.log = log
	}
}

// Promotion describes a completed PromoteFeature.
type Promotion struct {
	File    string
	Landed  block.Block
	Version string
}

// Result collects what Start did. A nil field means that workflow was
// disabled or declined.
type Result struct {
	Promotion *Promotion
	Sweep     *sweep.Report
}

// New creates a Stabilizer for feature. Paths in cfg are resolved against
// base. cfg is expanded for feature and validated.
func New(fsys vfs.FS, base string, cfg *config.Config, feature string, opts ...Option) (*Stabilizer, error) {
	expanded, err := cfg.Expand(feature)
	if err != nil {
		return nil, err
	}
	if err := expanded.Validate(); err != nil {
		return nil, err
	}

	s := &Stabilizer{
		fs:      fsys,
		base:    base,
		feature: feature,
		cfg:     expanded,
		prompt:  AutoConfirm{},
		log:     logging.Logger("stabilize"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Feature returns the feature name.
func (s *Stabilizer) Feature() string {
	return s.feature
}

// Start runs the enabled workflows, promotion first. The result holds
// whatever completed, even when an error is returned.
func (s *Stabilizer) Start() (*Result, error) {
	res := &Result{}

	if s.cfg.Promote.Enabled {
		ok, err := s.confirm(fmt.Sprintf("Promote %s in %s?", s.feature, s.cfg.Promote.File))
		if err != nil {
			return res, err
		}
		if ok {
			if res.Promotion, err = s.PromoteFeature(); err != nil {
				return res, err
			}
		}
	}

	if s.cfg.Sweep.Enabled {
		ok, err := s.confirm(fmt.Sprintf("Remove %s from %s?", s.cfg.Sweep.Marker, s.cfg.Sweep.Dir))
		if err != nil {
			return res, err
		}
		if ok {
			res.Sweep, err = s.RemoveFeatureGate()
			if err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

func (s *Stabilizer) confirm(question string) (bool, error) {
	ok, err := s.prompt.Confirm(question)
	if err != nil {
		return false, fmt.Errorf("prompt: %w", err)
	}
	if !ok {
		s.log.Noticef("skipped: %s", question)
	}
	return ok, nil
}

// PromoteFeature moves the feature entry after the last accepted entry and
// rewrites it as accepted, copying the version of the entry above it.
func (s *Stabilizer) PromoteFeature() (*Promotion, error) {
	p := s.cfg.Promote
	path := s.fs.Join(s.base, p.File)
	log := logging.WithPath(s.log, path)

	dir, err := p.ParsedDirection()
	if err != nil {
		return nil, err
	}

	doc, err := document.Load(s.fs, path)
	if err != nil {
		return nil, err
	}

	var opts []document.MoveOption
	if p.CollapseBlankLines {
		opts = append(opts, document.WithNormalizer(block.CollapseBlankLines))
	}
	if p.Normalizer != "" {
		norm, err := lua.LoadNormalizer(s.fs, s.fs.Join(s.base, p.Normalizer))
		if err != nil {
			return nil, err
		}
		defer norm.Close()
		opts = append(opts, document.WithNormalizer(norm.Func()))
	}

	version, err := s.versionFor(doc.Lines(), dir)
	if err != nil {
		return nil, fmt.Errorf("promote %s: %w", s.feature, err)
	}

	landed, err := doc.MoveNLinesTo(anchor.Literal(p.Destination), anchor.Literal(p.Entry), p.DocLines, dir, opts...)
	if err != nil {
		return nil, fmt.Errorf("promote %s: %w", s.feature, err)
	}
	log.Infof("moved %s to %v", s.feature, landed)

	entry := landed.End
	if dir == block.Below {
		entry = landed.Start
	}
	line, err := doc.Line(entry)
	if err != nil {
		return nil, err
	}
	if err := doc.ReplaceWholeLineAt(entry, accept(line, p.FromState, p.ToState, version)); err != nil {
		return nil, err
	}

	log.Infof("promoted %s with version %s", s.feature, version)
	return &Promotion{File: path, Landed: landed, Version: version}, nil
}

// versionFor checks the table before anything is moved and returns the
// version token of the line the promoted block will land under. The entry
// line must carry a version token of its own to be replaced.
func (s *Stabilizer) versionFor(ls []string, dir block.Direction) (string, error) {
	p := s.cfg.Promote
	idx, err := anchor.LocateFirst(ls, anchor.Literal(p.Entry))
	if err != nil {
		return "", err
	}
	blk, err := block.Around(idx, p.DocLines, dir, len(ls))
	if err != nil {
		return "", err
	}
	dst, err := anchor.LocateLast(ls, anchor.Literal(p.Destination))
	if err != nil {
		return "", err
	}
	if !versionToken.MatchString(ls[idx]) {
		return "", fmt.Errorf("%w in %q", ErrNoVersion, ls[idx])
	}

	// Forward moves land right under the destination line, backward moves
	// take its place.
	above := blk.Start - 1
	switch {
	case dst > blk.End:
		above = dst
	case dst < blk.Start:
		above = dst - 1
	}
	if above < 0 {
		return "", ErrNothingAbove
	}

	version := versionToken.FindString(ls[above])
	if version == "" {
		return "", fmt.Errorf("%w in %q", ErrNoVersion, ls[above])
	}
	return version, nil
}

// accept rewrites a table entry from one state to another and stamps it
// with version.
func accept(line, from, to, version string) string {
	line = strings.Replace(line, from, to, 1)
	loc := versionToken.FindStringIndex(line)
	if loc == nil {
		return line
	}
	return line[:loc[0]] + version + line[loc[1]:]
}

// RemoveFeatureGate deletes the marker line from every file under the
// sweep directory.
func (s *Stabilizer) RemoveFeatureGate() (*sweep.Report, error) {
	sw := s.cfg.Sweep
	policy := sweep.AbortOnError
	if sw.KeepGoing {
		policy = sweep.ContinueOnError
	}

	scanner := sweep.New(s.fs, sweep.Options{
		Policy:     policy,
		Ignore:     sw.Ignore,
		SkipBinary: sw.SkipBinary,
		SkipVendor: sw.SkipVendor,
	})
	marker := anchor.Literal(sw.Marker)

	return scanner.Scan(s.fs.Join(s.base, sw.Dir), func(path string) (bool, error) {
		doc, err := document.Load(s.fs, path)
		if err != nil {
			return false, err
		}
		n, err := doc.DeleteLinesContaining(marker)
		if err != nil {
			return false, err
		}
		if n > 0 {
			s.log.Infof("%s: removed %d gate line(s)", path, n)
		}
		return n > 0, nil
	})
}
