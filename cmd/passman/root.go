package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/passman/internal/vault/app"
)

type rootFlags struct {
	db       string
	logLevel string
	scope    string
}

// config loads the environment and applies any flags the user set.
func (f *rootFlags) config(cmd *cobra.Command) (app.Config, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return app.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DatabaseFile = f.db
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if flags.Changed("scope") {
		cfg.VaultScope = f.scope
	}
	return cfg, cfg.Validate()
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:   "passman",
		Short: "A local password vault",
		Long: "passman stores per-application logins behind a master password.\n" +
			"Run without arguments to log in and open the interactive menu.",
		Version:       app.BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.config(cmd)
			if err != nil {
				return err
			}
			application, err := app.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer application.Close()

			return application.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.db, "db", "", "vault database file (overrides PASSMAN_DATABASE_FILE)")
	pf.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
	pf.StringVar(&f.scope, "scope", "", "owner or shared (overrides PASSMAN_VAULT_SCOPE)")

	root.AddCommand(newInitCmd(f), newVersionCmd())
	return root
}

func newInitCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or upgrade the vault schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.config(cmd)
			if err != nil {
				return err
			}
			application, err := app.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer application.Close()

			if err := application.Bootstrap(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Vault ready at %s\n", cfg.DatabaseFile)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "passman", app.BuildVersion)
		},
	}
}
