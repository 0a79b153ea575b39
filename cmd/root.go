// =============================================================================
// Catalog Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (converter)
//   ├── convertCmd    (converter convert)
//   ├── categoriesCmd (converter categories)
//   │   └── classifyCmd (converter categories classify NAME...)
//   ├── columnsCmd    (converter columns)
//   └── versionCmd    (converter version)
//
// CONFIGURATION:
//   The root command owns the global flags (--config, --verbose). Each
//   command loads the YAML configuration through loadConfig; a missing
//   config.yaml means the built-in production defaults.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/catalog-converter/internal/config"
	"github.com/ginjaninja78/catalog-converter/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "converter",
	Short: "Catalog Converter - Turn a wholesale catalog export into marketplace bulk-upload files",
	Long: `Catalog Converter reads a wholesale catalog export (.xlsx or .csv) and fills
the marketplace bulk-upload template with one row per product variant.

Key Features:
  - Category assignment from keyword rules
  - Base and list price computation
  - Variant color numbering per parent product
  - Output split by SKU prefix, in files of 1000 rows
  - Price and stock update files from a wholesaler reference sheet

Example Usage:
  converter convert                         # Convert with config.yaml or defaults
  converter convert --reference prices.xlsx # Also write price/stock updates
  converter categories classify "Tote Bag"  # Show the category for a name
  converter columns                         # Show source and template columns`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (built-in defaults when absent)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadConfig loads the configuration named by --config. Only the default
// path may be missing; an explicit path must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	allowMissing := !cmd.Flags().Changed("config")
	cfg, err := config.Load(cfgFile, allowMissing)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger described by the configuration. The returned
// closer releases the log file and is nil when logging to stderr.
func newLogger(cfg *config.Config, stderr io.Writer) (*logrus.Logger, io.Closer, error) {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}

	if cfg.Logging.File != "" {
		return logging.NewFile(level, cfg.Logging.Format, cfg.Logging.File)
	}
	log, err := logging.New(level, cfg.Logging.Format, stderr)
	return log, nil, err
}
