package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"

	"github.com/dshills/stabilize/internal/config"
	"github.com/dshills/stabilize/internal/engine/anchor"
	"github.com/dshills/stabilize/internal/logging"
	"github.com/dshills/stabilize/internal/project/sweep"
	"github.com/dshills/stabilize/internal/project/vfs"
	"github.com/dshills/stabilize/internal/stabilize"
)

// Options holds command-line settings for a run.
type Options struct {
	// Feature is the feature to stabilize. Empty means nothing to do.
	Feature string

	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// Root overrides the configured source tree root.
	Root string

	// Verbosity is the commonlog verbosity.
	Verbosity int

	// LogPath sends logs to a file instead of stderr.
	LogPath string

	// KeepGoing continues the sweep past failing files.
	KeepGoing bool

	// ReportPath receives the sweep report as JSON.
	ReportPath string

	// Confirm asks on Stdin before each workflow.
	Confirm bool

	Stdin  io.Reader
	Stdout io.Writer

	// FS is the file system to work on. Nil means the OS.
	FS vfs.FS

	// NoChdir resolves paths against Root instead of changing into it.
	NoChdir bool

	// Getenv looks up environment overrides. Nil means os.LookupEnv.
	Getenv func(string) (string, bool)
}

// Application is one configured run.
type Application struct {
	opts  Options
	fs    vfs.FS
	cfg   *config.Config
	runID string
	log   commonlog.Logger
}

// New loads configuration and sets up logging for a run.
func New(opts Options) (*Application, error) {
	a := &Application{opts: opts}
	if err := a.bootstrap(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Application) bootstrap() error {
	logging.Configure(a.opts.Verbosity, a.opts.LogPath)
	a.runID = logging.NewRunID()
	a.log = logging.WithRun(logging.Logger("app"), a.runID)

	a.fs = a.opts.FS
	if a.fs == nil {
		a.fs = vfs.NewOSFS()
	}
	if a.opts.Stdin == nil {
		a.opts.Stdin = os.Stdin
	}
	if a.opts.Stdout == nil {
		a.opts.Stdout = os.Stdout
	}
	getenv := a.opts.Getenv
	if getenv == nil {
		getenv = os.LookupEnv
	}

	cfg, err := config.Load(a.fs, a.opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitialization, NewOperationError("load-config", a.opts.ConfigPath, err))
	}
	if err := config.ApplyEnv(cfg, getenv); err != nil {
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	if a.opts.Root != "" {
		cfg.Root = a.opts.Root
	}
	if a.opts.KeepGoing {
		cfg.Sweep.KeepGoing = true
	}
	a.cfg = cfg

	a.log.Debugf("configuration loaded (root %s)", cfg.Root)
	return nil
}

// Config returns the effective configuration.
func (a *Application) Config() *config.Config {
	return a.cfg
}

// RunID returns the identifier attached to this run's log lines.
func (a *Application) RunID() string {
	return a.runID
}

// Run stabilizes the feature. Without a feature it does nothing.
func (a *Application) Run() error {
	if a.opts.Feature == "" {
		a.log.Infof("no feature given, nothing to do")
		return nil
	}

	reportPath := a.opts.ReportPath
	base := a.cfg.Root
	if !a.opts.NoChdir {
		if reportPath != "" {
			abs, err := filepath.Abs(reportPath)
			if err != nil {
				return NewOperationError("write-report", reportPath, err)
			}
			reportPath = abs
		}
		if err := os.Chdir(a.cfg.Root); err != nil {
			return NewOperationError("chdir", a.cfg.Root, err)
		}
		base = "."
	}

	opts := []stabilize.Option{
		stabilize.WithLogger(logging.WithRun(logging.Logger("stabilize"), a.runID)),
	}
	if a.opts.Confirm {
		opts = append(opts, stabilize.WithPrompter(stabilize.NewLinePrompter(a.opts.Stdin, a.opts.Stdout)))
	}

	s, err := stabilize.New(a.fs, base, a.cfg, a.opts.Feature, opts...)
	if err != nil {
		return NewOperationError("stabilize", a.opts.Feature, err)
	}

	a.log.Infof("stabilizing %s in %s", s.Feature(), a.cfg.Root)
	res, runErr := s.Start()
	if anchor.IsNotFound(runErr) {
		a.log.Warningf("%s has no entry in %s, is it already stabilized?", s.Feature(), a.cfg.Promote.File)
	}

	if reportPath != "" && res != nil && res.Sweep != nil {
		if err := a.writeReport(reportPath, res.Sweep); err != nil {
			if runErr == nil {
				return err
			}
			a.log.Errorf("%s", err)
		}
	}
	if runErr != nil {
		return NewOperationError("stabilize", a.opts.Feature, runErr)
	}

	if res.Sweep != nil {
		a.log.Infof("sweep: %s", sweep.Summary(res.Sweep))
	}
	return nil
}

func (a *Application) writeReport(path string, r *sweep.Report) error {
	data, err := r.JSON()
	if err != nil {
		return NewOperationError("write-report", path, err)
	}

	f, err := a.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return NewOperationError("write-report", path, err)
	}
	if _, err := io.WriteString(f, data+"\n"); err != nil {
		f.Close()
		return NewOperationError("write-report", path, err)
	}
	if err := f.Close(); err != nil {
		return NewOperationError("write-report", path, err)
	}
	a.log.Debugf("report written to %s", path)
	return nil
}
