package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/varoOP/matchday/internal/app"
	"github.com/varoOP/matchday/internal/notification"
	"github.com/varoOP/matchday/internal/render"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the cache warm on a schedule",
	Long: `Refresh matches and news on the cron schedules match_refresh_cron and
news_refresh_cron (every five minutes by default) until interrupted.
Each run is reported to the Discord webhook when discord_webhook_url is set.

Other matchday commands read what watch fetched through the shared cache.
The default sqlite backend (or redis) is safe to share between watch and
one-off commands; the memory backend is not shared at all.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		skipInitial, _ := cmd.Flags().GetBool("skip-initial")

		return withApp(cmd, func(ctx context.Context, a *app.App, r *render.Renderer) error {
			s, err := a.NewScheduler()
			if err != nil {
				return err
			}

			if !skipInitial {
				// failures are logged and notified by the scheduler
				_ = s.RunNow(ctx, notification.JobMatches)
				if a.Config().NewsAPIKey != "" {
					_ = s.RunNow(ctx, notification.JobNews)
				}
			}

			s.Start(ctx)
			<-ctx.Done()
			s.Stop()
			return nil
		})
	},
}

func init() {
	watchCmd.Flags().Bool("skip-initial", false, "wait for the first scheduled tick instead of refreshing on start")
	rootCmd.AddCommand(watchCmd)
}
