package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/varoOP/matchday/internal/app"
	"github.com/varoOP/matchday/internal/config"
	"github.com/varoOP/matchday/internal/domain"
	"github.com/varoOP/matchday/internal/logger"
	"github.com/varoOP/matchday/internal/render"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "matchday",
	Short: "Football scores, standings, teams and news in your terminal",
	Long: `matchday shows live, completed and upcoming matches of the configured
competitions, league tables, team fixtures and squads, and football news.
Responses are cached for an hour so repeated commands stay within the
rate limits of the upstream APIs.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.matchday.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "output format: text, json or yaml")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn or error")
	rootCmd.PersistentFlags().String("storage", "", "cache storage backend: sqlite (default), file, redis or memory")

	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("storage_backend", rootCmd.PersistentFlags().Lookup("storage"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	home, _ := os.UserHomeDir()
	setConfigSource(viper.GetViper(), cfgFile, home)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setConfigSource points v at the explicit file, else $HOME/.matchday.yaml
// when it exists, else config.yaml in the working directory.
func setConfigSource(v *viper.Viper, file, home string) {
	if file != "" {
		v.SetConfigFile(file)
		return
	}

	if home != "" {
		dotfile := filepath.Join(home, ".matchday.yaml")
		if _, err := os.Stat(dotfile); err == nil {
			v.SetConfigFile(dotfile)
			return
		}
	}

	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName("config")
}

// withApp loads the configuration, builds the application and hands it to
// fn together with a renderer for stdout. The application is closed when
// fn returns.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App, r *render.Renderer) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.NewLoggerWithLevel(cfg.LogLevel)

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return errors.Wrap(err, "failed to initialize application")
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close application")
		}
	}()

	return fn(ctx, a, render.New(cmd.OutOrStdout(), cfg.Output, cfg.Location))
}

// hint adds a next step to errors the user can act on
func hint(err error) error {
	switch {
	case errors.Is(err, domain.ErrRawPoolMissing):
		return errors.Wrap(err, "run `matchday matches` first or pass --fetch")
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return errors.Wrap(err, "check api_token and your connection, then retry")
	case errors.Is(err, domain.ErrUnknownCompetition):
		return errors.Wrapf(err, "configured competitions: %v", viper.GetStringSlice("competitions"))
	}
	return err
}
