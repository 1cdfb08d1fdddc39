package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/atomicsite"
)

// options is shared by every subcommand. PersistentPreRunE fills cfg before
// any RunE executes.
type options struct {
	cfgFile string
	cfg     atomicsite.SiteConfig
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "atomicsite",
		Short:         "I AM ATOMIC - a shadow broker's website",
		Long:          "atomicsite serves the I AM ATOMIC site and imports chronicle entries into its SQLite catalog.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.cfgFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./config.yaml)")

	root.AddCommand(newServeCmd(opts), newImportCmd(opts), newVersionCmd())
	return root
}

// loadConfig reads config.yaml (or path) and ATOMIC_* environment variables.
// A missing default config file is not an error.
func loadConfig(path string) (atomicsite.SiteConfig, error) {
	v := viper.New()

	v.SetDefault("name", "I AM ATOMIC")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("description", "Shadows, chronicles and the atomic philosophy.")
	v.SetDefault("author", "")
	v.SetDefault("addr", ":3000")
	v.SetDefault("database_path", "")
	v.SetDefault("chronicles_page_size", 2)
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("application_limit", 5)
	v.SetDefault("application_window", 10*time.Minute)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("ATOMIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return atomicsite.SiteConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg atomicsite.SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return atomicsite.SiteConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the atomicsite version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "atomicsite %s\n", version)
		},
	}
}
