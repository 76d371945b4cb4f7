package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/varoOP/matchday/internal/app"
	"github.com/varoOP/matchday/internal/render"
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Show live, completed and upcoming matches",
	Long: `Show the match board of the configured competitions. Upcoming
matches cover the next lookahead_days, completed ones the last lookback_days.

Use --tab to pick live (default), completed, upcoming or all.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tabFlag, _ := cmd.Flags().GetString("tab")
		tab, err := render.ParseTab(tabFlag)
		if err != nil {
			return err
		}
		refresh, _ := cmd.Flags().GetBool("refresh")

		return withApp(cmd, func(ctx context.Context, a *app.App, r *render.Renderer) error {
			load := a.Fixtures().Board
			if refresh {
				load = a.Fixtures().Refresh
			}

			board, err := load(ctx)
			if rerr := r.Board(board, tab); rerr != nil {
				return rerr
			}
			return hint(err)
		})
	},
}

func init() {
	matchesCmd.Flags().String("tab", "live", "which matches to show: live, completed, upcoming or all")
	matchesCmd.Flags().Bool("refresh", false, "ignore cached matches")
	rootCmd.AddCommand(matchesCmd)
}
