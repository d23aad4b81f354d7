package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/preethi-chalasani/portfolio/internal/content"
	"github.com/preethi-chalasani/portfolio/internal/server"
	"github.com/preethi-chalasani/portfolio/internal/site"
)

var errWatchWithoutContent = errors.New("--watch needs a content file (--content or PORTFOLIO_CONTENT)")

func newServeCmd(a *app) *cobra.Command {
	var (
		port  int
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the page over HTTP",
		Long: `Render the page once and serve it with its assets.

Routes:
  GET /          the page; ?open=<project id> starts with that case study open
  GET /static/*  stylesheet and script
  GET /healthz   liveness`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			if cmd.Flags().Changed("watch") {
				a.cfg.Watch = watch
			}
			if a.cfg.Watch && a.cfg.Content == "" {
				return errWatchWithoutContent
			}
			opts, err := a.siteOptions()
			if err != nil {
				return err
			}
			s, err := a.loadContent()
			if err != nil {
				return err
			}

			gin.SetMode(a.cfg.GinMode)
			srv, err := server.New(s, opts, a.logger.Named("http"))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Run(ctx, a.cfg.Addr())
			})
			if a.cfg.Watch {
				r, err := site.NewReloader(a.cfg.Content, func(next *content.Site) {
					if err := srv.SetContent(next); err != nil {
						a.logger.Warn("re-render failed, keeping previous page", zap.Error(err))
					}
				}, a.logger.Named("watch"))
				if err != nil {
					stop()
					_ = g.Wait()
					return fmt.Errorf("watch content: %w", err)
				}
				g.Go(func() error {
					return r.Run(ctx)
				})
			}
			return g.Wait()
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "listen port (PORT)")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-render when the content file changes (PORTFOLIO_WATCH)")
	return cmd
}
