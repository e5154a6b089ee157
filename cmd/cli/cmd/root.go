// Package cmd provides the CLI commands for reuse-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	hcladapter "reuse-cost/adapters/hcl"
	"reuse-cost/core/estimate"
	"reuse-cost/internal/config"
	"reuse-cost/internal/errors"
	"reuse-cost/internal/logging"
)

// Version is the CLI version, overridden at build time
var Version = "0.1.0"

var (
	cfgFile     string
	envFile     string
	catalogPath string
	verbose     bool
	noColor     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "reuse-cost",
	Short: "Estimate installation costs for water reuse systems",
	Long: `reuse-cost estimates the installation cost of rooftop rainwater harvesting
and HVAC condensate recovery systems.

Every figure is derived from a rate catalog of low/high material costs. The
built-in catalog can be overridden with an HCL file.

Examples:
  reuse-cost estimate rainwater --roof-area 2000 --rainfall 32 --piping 120
  reuse-cost estimate hvac --units 2 --tons 3 --days 200 --piping 40 --format json
  reuse-cost estimate site.hcl --format pdf --output estimate.pdf
  reuse-cost catalog show --catalog rates.hcl`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	logging.Sync()
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.reuse-cost.json)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file applied over the config")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "HCL file overriding built-in rates")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Add subcommands
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadEstimator builds an estimator over the built-in catalog with the
// configured override file, if any, applied
func loadEstimator() (*estimate.Estimator, error) {
	path := config.Get().Catalog.Path
	if path == "" {
		return estimate.Default(), nil
	}

	cat, err := hcladapter.NewLoader().LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	logging.Debug("using catalog override", zap.String("path", path), zap.String("version", cat.Version))
	return estimate.New(cat)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		est, err := loadEstimator()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "reuse-cost version %s (catalog %s)\n", Version, est.Catalog().Version)
		return nil
	},
}

var configForce bool

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Long: `Write a default configuration file. The format follows the extension:
.yaml and .yml files are written as YAML, anything else as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultPath()
		if len(args) > 0 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return errors.Newf(errors.TypeConfig, "%s already exists (use --force to overwrite)", path)
		}
		if err := config.Default().Save(path); err != nil {
			return errors.Config("failed to write "+path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Get().YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
