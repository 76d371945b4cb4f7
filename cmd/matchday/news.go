package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/varoOP/matchday/internal/app"
	"github.com/varoOP/matchday/internal/render"
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Show football news",
	Long: `Show the latest football headlines. Cached headlines are shown when
they are fresh; --refresh fetches new ones and falls back to the cache when
the news API is unreachable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		refresh, _ := cmd.Flags().GetBool("refresh")

		return withApp(cmd, func(ctx context.Context, a *app.App, r *render.Renderer) error {
			load := a.News().Latest
			if refresh {
				load = a.News().Refresh
			}

			articles, err := load(ctx)
			if err != nil {
				return err
			}
			return r.News(articles)
		})
	},
}

func init() {
	newsCmd.Flags().Bool("refresh", false, "fetch fresh headlines")
	rootCmd.AddCommand(newsCmd)
}
