package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/waabox/buildboard/internal/config"
	"github.com/waabox/buildboard/internal/route"
	"github.com/waabox/buildboard/internal/session"
	"github.com/waabox/buildboard/internal/tui"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "buildboard: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "buildboard [path]",
		Short:         "Terminal dashboard for pipeline runs",
		Long:          "Opens the dashboard at path, e.g. /42/tests/3. The default path lists pipelines.",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}
			e, err := g.load(true)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			src, server, err := e.source()
			if err != nil {
				return err
			}
			e.log.Info("starting", zap.String("version", version), zap.String("server", server), zap.String("path", path))
			return tui.Run(tui.Options{
				Source:   src,
				Resolver: route.Default(),
				Window:   session.NewWindow(),
				Repo:     e.repo,
				Server:   server,
				PageSize: e.cfg.PageSizeOrDefault(),
				Log:      e.log,
			}, path)
		},
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", config.DefaultConfigPath(), "Config file")
	cmd.PersistentFlags().StringVar(&g.apiURL, "api-url", "", "Publisher API base URL, overrides config")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Enable debug logging")
	cmd.AddCommand(resolveCmd(), classifyCmd(), listCmd(g), configCmd(g))
	return cmd
}
