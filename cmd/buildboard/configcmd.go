package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waabox/buildboard/internal/config"
	"github.com/waabox/buildboard/internal/publisher"
)

func configCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(configInitCmd(g))
	return cmd
}

func configInitCmd(g *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Long: "Writes the current settings, including environment overrides and --api-url, " +
			"to the --config path. An existing file is kept unless --force is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(g.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", g.configPath)
			}
			cfg, err := config.LoadFrom(g.configPath)
			if err != nil {
				return err
			}
			if g.apiURL != "" {
				cfg.API.URL = g.apiURL
			}
			if cfg.API.URL == "" {
				cfg.API.URL = publisher.DefaultBaseURL
			}
			if cfg.API.PageSize == 0 {
				cfg.API.PageSize = cfg.PageSizeOrDefault()
			}
			if err := config.Save(g.configPath, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", g.configPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
