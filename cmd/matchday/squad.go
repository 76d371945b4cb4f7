package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/varoOP/matchday/internal/app"
	"github.com/varoOP/matchday/internal/render"
)

var squadCmd = &cobra.Command{
	Use:   "squad <id>",
	Short: "Show a team's venue and squad",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTeamID(args[0])
		if err != nil {
			return err
		}

		return withApp(cmd, func(ctx context.Context, a *app.App, r *render.Renderer) error {
			profile, err := a.Fixtures().Team(ctx, id)
			if err != nil {
				return hint(err)
			}
			return r.Squad(profile)
		})
	},
}

func init() {
	rootCmd.AddCommand(squadCmd)
}
