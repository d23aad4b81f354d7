package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/preethi-chalasani/portfolio/internal/preview"
)

func newPreviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show the page in the terminal",
		Long: `Draw the page in the terminal, intro included.

Key bindings:
  j/k, ↑/↓        Scroll by line
  space/b         Page down/up
  tab/shift+tab   Select a case study
  enter           Open or close the selection
  q               Quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ro, err := a.revealOptions()
			if err != nil {
				return err
			}
			s, err := a.loadContent()
			if err != nil {
				return err
			}
			// the program owns the terminal, so the model does not log
			m, err := preview.New(s, preview.Options{Reveal: ro})
			if err != nil {
				return err
			}
			defer m.Close()
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run preview: %w", err)
			}
			return nil
		},
	}
}
