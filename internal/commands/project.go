package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/spendcat/internal/config"
	"github.com/cleared-dev/spendcat/internal/gitops"
	"github.com/cleared-dev/spendcat/internal/logger"
)

// project is an opened spendcat repo.
type project struct {
	root   string
	cfg    *config.Config
	logger zerolog.Logger
}

// open loads spendcat.yaml from --repo and builds the logger. The logger is
// also attached to the command context.
func (o *rootOptions) open(cmd *cobra.Command) (*project, error) {
	root, err := filepath.Abs(o.repo)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s is not a spendcat project (run spendcat init)", root)
		}
		return nil, err
	}
	cfg.ApplyEnv()

	p := &project{root: root, cfg: cfg, logger: o.newLogger(cmd, cfg)}
	cmd.SetContext(logger.WithContext(cmd.Context(), p.logger))
	return p, nil
}

// newLogger builds a stderr logger from cfg, or from defaults and the
// environment when cfg is nil. --log-level wins over both.
func (o *rootOptions) newLogger(cmd *cobra.Command, cfg *config.Config) zerolog.Logger {
	if cfg == nil {
		cfg = config.Default("")
		cfg.ApplyEnv()
	}
	level := cfg.Log.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	return logger.New(level, cfg.Log.Format, cmd.ErrOrStderr())
}

// commit records paths in git when auto_commit is on and the project is a
// git checkout. Failures are logged, not returned.
func (p *project) commit(message string, paths ...string) {
	if !p.cfg.Git.AutoCommit || !gitops.IsRepo(p.root) {
		return
	}

	var existing []string
	for _, path := range paths {
		if _, err := os.Stat(filepath.Join(p.root, path)); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return
	}

	author := gitops.Author{Name: p.cfg.Git.AuthorName, Email: p.cfg.Git.AuthorEmail}
	hash, err := gitops.Commit(p.root, message, author, existing...)
	switch {
	case errors.Is(err, gitops.ErrNothingToCommit):
	case err != nil:
		p.logger.Warn().Err(err).Msg("git commit failed")
	default:
		p.logger.Debug().Str("commit", hash).Str("message", message).Msg("committed")
	}
}
