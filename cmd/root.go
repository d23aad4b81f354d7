// Package cmd is the portfolio command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/preethi-chalasani/portfolio/internal/config"
	"github.com/preethi-chalasani/portfolio/internal/content"
	"github.com/preethi-chalasani/portfolio/internal/logging"
	"github.com/preethi-chalasani/portfolio/internal/reveal"
	"github.com/preethi-chalasani/portfolio/internal/site"
)

// app is the state shared by every subcommand once the root has run.
type app struct {
	cfg    config.Config
	logger *zap.Logger

	contentPath string
	logLevel    string
	threshold   float64
	rootMargin  string
	repeat      bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	defaults := reveal.DefaultOptions()

	root := &cobra.Command{
		Use:   "portfolio",
		Short: "Build, serve and preview the portfolio site",
		Long: `portfolio renders the site from its content document.

The page opens with an intro animation, then every section fades in as it
scrolls into view. Case studies expand one at a time.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.contentPath, "content", "", "content document to use instead of the embedded one (PORTFOLIO_CONTENT)")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (PORTFOLIO_LOG_LEVEL)")
	flags.Float64Var(&a.threshold, "threshold", defaults.Threshold, "visible fraction of a section that reveals it")
	flags.StringVar(&a.rootMargin, "root-margin", defaults.RootMargin, "viewport margin applied before the threshold, CSS order")
	flags.BoolVar(&a.repeat, "repeat", !defaults.Once, "hide sections again when they leave the viewport")

	root.AddCommand(
		newServeCmd(a),
		newBuildCmd(a),
		newPreviewCmd(a),
		newCheckCmd(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("content") {
		cfg.Content = a.contentPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// revealOptions returns the section reveal options chosen on the command line.
func (a *app) revealOptions() (*reveal.Options, error) {
	opts := reveal.Options{
		Threshold:  a.threshold,
		RootMargin: a.rootMargin,
		Once:       !a.repeat,
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

func (a *app) siteOptions() (site.Options, error) {
	ro, err := a.revealOptions()
	if err != nil {
		return site.Options{}, err
	}
	return site.Options{Reveal: ro}, nil
}

// loadContent reads the override document if one is configured.
func (a *app) loadContent() (*content.Site, error) {
	if a.cfg.Content == "" {
		return content.Default(), nil
	}
	s, err := content.Load(a.cfg.Content)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", a.cfg.Content, err)
	}
	a.logger.Info("using content override", zap.String("path", a.cfg.Content))
	return s, nil
}
