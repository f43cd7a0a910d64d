package main

import (
	"encoding/json"
	"fmt"
	"io"

	"erpinterno/internal/app/bootstrap"
	"erpinterno/internal/platform/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps persistent flags onto configuration keys.
var flagKeys = map[string]string{
	"env":          config.KeyEnvironment,
	"port":         config.KeyHTTPPort,
	"dsn":          config.KeyPostgresDSN,
	"log-level":    config.KeyLogLevel,
	"log-format":   config.KeyLogFormat,
	"auto-migrate": config.KeyAutoMigrate,
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	var envFile string

	root := &cobra.Command{
		Use:           "erp-api",
		Short:         "Multi-tenant internal ERP HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.LoadDotEnv(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().String("env", "", "runtime environment (development, production)")
	root.PersistentFlags().String("port", "", "HTTP port")
	root.PersistentFlags().String("dsn", "", "postgres DSN; empty serves from memory outside production")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "log format (json, text)")
	root.PersistentFlags().String("auto-migrate", "", "apply migrations before serving")
	if err := bindFlags(v, root.PersistentFlags()); err != nil {
		panic(err)
	}

	serve := newServeCmd(v)
	root.AddCommand(serve, newMigrateCmd(v))
	root.RunE = serve.RunE
	return root
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFrom(v)
			if err != nil {
				return err
			}
			app, err := bootstrap.BuildAPI(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Run(cmd.Context())
		},
	}
}

func newMigrateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFrom(v)
			if err != nil {
				return err
			}
			status, err := bootstrap.RunMigrations(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), status)
		},
	}, &cobra.Command{
		Use:   "status",
		Short: "Show the applied and pending schema versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFrom(v)
			if err != nil {
				return err
			}
			status, err := bootstrap.MigrationStatus(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), status)
		},
	})
	return cmd
}

func printJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
