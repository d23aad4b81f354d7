package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/preethi-chalasani/portfolio/internal/browsercheck"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		target     string
		controlURL string
		timeout    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Smoke-test a served page in a headless browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			if target == "" {
				target = fmt.Sprintf("http://localhost:%d/", a.cfg.Port)
			}
			report, err := browsercheck.Run(cmd.Context(), browsercheck.Config{
				URL:        target,
				ControlURL: controlURL,
				Timeout:    timeout,
				Logger:     a.logger.Named("check"),
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "intro done after %s\n", report.IntroDone.Round(time.Millisecond))
			for _, id := range report.Revealed {
				fmt.Fprintf(out, "revealed %s\n", id)
			}
			fmt.Fprintf(out, "%d projects expand one at a time\n", report.Projects)
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "url", "", "page to check (default http://localhost:$PORT/)")
	cmd.Flags().StringVar(&controlURL, "control-url", "", "DevTools websocket of a running browser")
	cmd.Flags().DurationVar(&timeout, "timeout", browsercheck.DefaultTimeout, "per-step timeout")
	return cmd
}
