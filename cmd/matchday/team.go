package main

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/varoOP/matchday/internal/app"
	"github.com/varoOP/matchday/internal/domain"
	"github.com/varoOP/matchday/internal/render"
)

var teamCmd = &cobra.Command{
	Use:   "team <id>",
	Short: "Show a team's matches grouped by competition",
	Long: `Show the fixtures of one team from the cached match board, grouped by
competition: upcoming first, then live, then finished.

The team view does not fetch on its own. Pass --fetch to load the match
board when nothing is cached.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTeamID(args[0])
		if err != nil {
			return err
		}
		fetch, _ := cmd.Flags().GetBool("fetch")

		return withApp(cmd, func(ctx context.Context, a *app.App, r *render.Renderer) error {
			groups, err := a.Fixtures().TeamMatches(ctx, id)
			if errors.Is(err, domain.ErrRawPoolMissing) && fetch {
				if _, berr := a.Fixtures().Board(ctx); berr != nil {
					return hint(berr)
				}
				groups, err = a.Fixtures().TeamMatches(ctx, id)
			}
			if err != nil {
				return hint(err)
			}

			return r.TeamMatches(id, groups)
		})
	},
}

func parseTeamID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, errors.Wrapf(domain.ErrInvalidTeam, "%q", s)
	}
	return id, nil
}

func init() {
	teamCmd.Flags().Bool("fetch", false, "load the match board first when nothing is cached")
	rootCmd.AddCommand(teamCmd)
}
