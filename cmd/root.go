/*
Copyright © 2026 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/internal/iofs"
	"github.com/gnames/gnmatch/internal/iologger"
	gnmatch "github.com/gnames/gnmatch/pkg"
	"github.com/gnames/gnmatch/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
	logs    io.Closer
)

// getRootCmd creates the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", gnmatch.Version, gnmatch.Build),
		Use:     "gnmatch",
		Short:   "GNmatch resolves taxonomic names to taxon concepts",
		Long: `GNmatch resolves scientific names, Linnaean classifications,
vernacular names and taxon identifiers to a best-match taxon concept.

Requests go to a name matching web-service (ALA namematching-ws by
default). Answers are kept in an on-disk response cache, so repeated
requests do not reach the service again.

Commands:
  - match: resolve a scientific name or classification
  - bulk: resolve names or taxon IDs from a YAML/JSON file
  - taxon: find a taxon by its ID
  - vernacular: resolve a common name
  - normalize: show how a name string is normalized
  - serve: run a local name matching service over an SFGA archive

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNMATCH_*)
  3. Config file (~/.config/gnmatch/config.yaml)
  4. Built-in defaults`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap(cmd, flags)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logs != nil {
				return logs.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "gnmatch version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnmatch")

	flags.register(rootCmd)

	rootCmd.AddCommand(
		getMatchCmd(),
		getBulkCmd(),
		getTaxonCmd(),
		getVernacularCmd(),
		getNormalizeCmd(),
		getServeCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, flags *globalFlags) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if logs, err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// flags win over the config file and environment
	cfg.Update(flags.options(cmd))

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	if logs != nil {
		_ = logs.Close()
	}
	var err error
	logs, err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log)
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Client configuration
	v.BindEnv("client.base_url", "GNMATCH_CLIENT_BASE_URL")
	v.BindEnv("client.timeout_ms", "GNMATCH_CLIENT_TIMEOUT_MS")

	// Cache configuration
	v.BindEnv("cache.enabled", "GNMATCH_CACHE_ENABLED")
	v.BindEnv("cache.dir", "GNMATCH_CACHE_DIR")
	v.BindEnv("cache.size", "GNMATCH_CACHE_SIZE")

	// Server configuration
	v.BindEnv("server.port", "GNMATCH_SERVER_PORT")
	v.BindEnv("server.sfga", "GNMATCH_SERVER_SFGA")

	// Log configuration
	v.BindEnv("log.level", "GNMATCH_LOG_LEVEL")
	v.BindEnv("log.format", "GNMATCH_LOG_FORMAT")
	v.BindEnv("log.destination", "GNMATCH_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "GNMATCH_JOBS_NUMBER")

	v.AutomaticEnv()
}
