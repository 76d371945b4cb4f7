package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/varoOP/matchday/internal/app"
	"github.com/varoOP/matchday/internal/render"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached responses",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached response",
	Long: `Remove every cached response from the storage backend. Keys outside the
cache namespace are left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App, r *render.Renderer) error {
			if err := a.ClearCache(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
			return nil
		})
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
