package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/preethi-chalasani/portfolio/internal/projects"
	"github.com/preethi-chalasani/portfolio/internal/site"
)

func newBuildCmd(a *app) *cobra.Command {
	var (
		out  string
		open string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the page and its assets to a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.siteOptions()
			if err != nil {
				return err
			}
			s, err := a.loadContent()
			if err != nil {
				return err
			}
			if open != "" {
				if _, ok := s.Project(open); !ok {
					return fmt.Errorf("unknown project %q", open)
				}
				opts.Expansion = projects.Expanded(open)
			}
			if err := site.Build(out, s, opts); err != nil {
				return err
			}
			a.logger.Info("site built", zap.String("dir", out))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "dist", "output directory")
	cmd.Flags().StringVar(&open, "open", "", "project id to render expanded")
	return cmd
}
