package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/varoOP/matchday/internal/app"
	"github.com/varoOP/matchday/internal/render"
)

var standingsCmd = &cobra.Command{
	Use:   "standings <code>",
	Short: "Show a league table",
	Long:  `Show the league table of a configured competition, e.g. PL, PD, BL1, SA or FL1.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App, r *render.Renderer) error {
			code := strings.ToUpper(args[0])
			rows, err := a.Fixtures().Standings(ctx, code)
			if err != nil {
				return hint(err)
			}
			return r.Standings(code, rows)
		})
	},
}

func init() {
	rootCmd.AddCommand(standingsCmd)
}
