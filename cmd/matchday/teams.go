package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/varoOP/matchday/internal/app"
	"github.com/varoOP/matchday/internal/fixtures"
	"github.com/varoOP/matchday/internal/render"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List or search the teams of the configured competitions",
	Long: `List the teams of every configured competition. Without --search only
the first 60 teams are shown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("search")

		return withApp(cmd, func(ctx context.Context, a *app.App, r *render.Renderer) error {
			teams, err := a.Fixtures().Teams(ctx)
			if err != nil {
				return hint(err)
			}
			return r.Teams(fixtures.SearchTeams(teams, query))
		})
	},
}

func init() {
	teamsCmd.Flags().StringP("search", "s", "", "case-insensitive team name filter")
	rootCmd.AddCommand(teamsCmd)
}
