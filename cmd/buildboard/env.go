package main

import (
	"errors"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/waabox/buildboard/internal/config"
	"github.com/waabox/buildboard/internal/domain"
	"github.com/waabox/buildboard/internal/git"
	"github.com/waabox/buildboard/internal/logging"
	"github.com/waabox/buildboard/internal/provider"
	"github.com/waabox/buildboard/internal/publisher"
)

const (
	retryAttempts = 3
	retryBackoff  = 500 * time.Millisecond
)

type globalOptions struct {
	configPath string
	apiURL     string
	debug      bool
}

// env is the loaded configuration shared by commands.
type env struct {
	cfg  config.Config
	log  *zap.Logger
	repo domain.Repository
}

// load reads config, builds the logger and detects the git repository.
// The TUI owns the terminal, so it logs to a file only; other commands
// log to stderr.
func (g *globalOptions) load(interactive bool) (*env, error) {
	cfg, err := config.LoadFrom(g.configPath)
	if err != nil {
		return nil, err
	}
	if g.apiURL != "" {
		cfg.API.URL = g.apiURL
	}

	opts := logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}
	if g.debug {
		opts.Level = "debug"
	}
	if interactive {
		if opts.File == "" {
			opts.File = config.DefaultLogPath()
		}
	} else {
		opts.Console = os.Stderr
		if opts.Level == "" {
			opts.Level = "warn"
		}
	}
	log, err := logging.New(opts)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, log: log}
	if cwd, err := os.Getwd(); err == nil {
		repo, err := git.DetectRepository(cwd)
		switch {
		case err == nil:
			e.repo = repo
		case errors.Is(err, git.ErrNoRepository):
			log.Debug("no git repository", zap.String("dir", cwd))
		default:
			log.Warn("could not detect git repository", zap.Error(err))
		}
	}
	return e, nil
}

// source picks the publisher for the current repository and wraps it
// with retries and the optional repository filter. It also returns the
// base URL in use.
func (e *env) source() (domain.PipelineSource, string, error) {
	timeout := e.cfg.Timeout()
	fallback := publisher.NewClient(e.cfg.API.URL, timeout, e.log)
	reg := provider.NewRegistry(fallback)
	for _, s := range e.cfg.Servers {
		reg.Register(s.Match, publisher.NewClient(s.URL, timeout, e.log))
	}

	src, err := reg.Detect(e.repo.RemoteURL)
	if err != nil {
		return nil, "", err
	}
	server := fallback.BaseURL()
	if c, ok := src.(*publisher.Client); ok {
		server = c.BaseURL()
	}
	e.log.Debug("publisher selected", zap.String("server", server), zap.String("remote", e.repo.RemoteURL))

	src = provider.NewRetryingSource(src, retryAttempts, retryBackoff, e.log)
	if e.cfg.FilterByRepo {
		src = provider.NewFilteredSource(src, e.repo)
	}
	return src, server, nil
}
