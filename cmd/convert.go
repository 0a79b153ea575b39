// =============================================================================
// Catalog Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, which runs the whole conversion.
//
// COMMAND USAGE:
//   converter convert [flags]
//
// FLAGS:
//   --source           : Catalog export (.xlsx or .csv)
//   --template         : Upload template workbook
//   --output-dir       : Directory for generated files
//   --reference        : Price/stock reference; enables update files
//   --filter-stock     : Drop rows without stock on hand
//   --no-filter-stock  : Keep every row
//   --dry-run          : Map everything, write nothing
//
// Flags override the matching configuration values.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/catalog-converter/internal/config"
	"github.com/ginjaninja78/catalog-converter/internal/converter"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	sourcePath    string
	templatePath  string
	outputDir     string
	referencePath string
	filterStock   bool
	noFilterStock bool
	dryRun        bool
)

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a catalog export into bulk-upload files",
	Long: `The convert command reads the catalog export, assigns categories, prices and
variant colors, and writes the rows into copies of the upload template, split
by SKU prefix and chunked into files of 1000 rows.

When a reference sheet is configured (or passed with --reference), price and
stock update files are written for every converted SKU.

A summary log and an audit log of skipped or defaulted values are written to
the output directory.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := applyConvertFlags(cmd, cfg); err != nil {
			return err
		}
		return runConvert(cmd, cfg)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&sourcePath, "source", "", "Catalog export (.xlsx or .csv)")
	convertCmd.Flags().StringVar(&templatePath, "template", "", "Upload template workbook")
	convertCmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for generated files")
	convertCmd.Flags().StringVar(&referencePath, "reference", "", "Price/stock reference sheet; enables update files")
	convertCmd.Flags().BoolVar(&filterStock, "filter-stock", false, "Drop rows without stock on hand")
	convertCmd.Flags().BoolVar(&noFilterStock, "no-filter-stock", false, "Keep rows without stock on hand")
	convertCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Map everything but write no files")

	convertCmd.MarkFlagsMutuallyExclusive("filter-stock", "no-filter-stock")
}

// applyConvertFlags copies explicitly set flags onto the configuration and
// validates the result.
func applyConvertFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source.Path = sourcePath
	}
	if flags.Changed("template") {
		cfg.Template.Path = templatePath
	}
	if flags.Changed("output-dir") {
		cfg.Output.Dir = outputDir
	}
	if flags.Changed("reference") {
		cfg.Reference.Path = referencePath
		cfg.Reference.Enabled = referencePath != ""
	}
	if flags.Changed("filter-stock") {
		cfg.Processing.FilterStock = filterStock
	}
	if flags.Changed("no-filter-stock") {
		cfg.Processing.FilterStock = !noFilterStock
	}
	if flags.Changed("dry-run") {
		cfg.Processing.DryRun = dryRun
	}
	return config.Validate(cfg)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runConvert(cmd *cobra.Command, cfg *config.Config) error {
	log, closer, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	conv := converter.New(cfg, log)
	fmt.Fprintf(out, "=== Catalog Converter (run %s) ===\n", conv.RunID())

	res, err := conv.Run(ctx)
	if err != nil {
		return err
	}

	// =========================================================================
	// PRINT SUMMARY
	// =========================================================================

	for _, sr := range res.Splits {
		if sr.Error != nil {
			fmt.Fprintf(out, "  ✗ %s: %v\n", sr.Name, sr.Error)
			continue
		}
		fmt.Fprintf(out, "  ✓ %s: %d row(s), %d file(s)\n", sr.Name, sr.Rows, len(sr.OutputFiles))
		for _, f := range sr.OutputFiles {
			fmt.Fprintf(out, "      %s\n", f)
		}
	}
	if cfg.Reference.Enabled {
		fmt.Fprintf(out, "  Price updates: %d file(s), Stock updates: %d file(s)\n",
			len(res.PriceUpdateFiles), len(res.StockUpdateFiles))
	}

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Source rows:     %d\n", res.Stats.SourceRows)
	fmt.Fprintf(out, "Out of stock:    %d\n", res.Stats.StockFiltered)
	fmt.Fprintf(out, "Converted rows:  %d\n", res.Stats.MappedRows)
	fmt.Fprintf(out, "Audit entries:   %d\n", res.Audit.Total())
	fmt.Fprintf(out, "Time elapsed:    %s\n", res.Stats.ProcessingTime)
	if res.SummaryFile != "" {
		fmt.Fprintf(out, "Summary:         %s\n", res.SummaryFile)
	}
	if res.AuditLogFile != "" {
		fmt.Fprintf(out, "Audit log:       %s\n", res.AuditLogFile)
	}
	return nil
}
