package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/catalog-converter/internal/converter"
	"github.com/ginjaninja78/catalog-converter/internal/xlsxparser"
	"github.com/ginjaninja78/catalog-converter/internal/xlsxwriter"
)

// columnsCmd prints the source headers, the template labels and how each
// destination field binds to the template. Used when a new export or
// template revision arrives.
var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Show source columns, template columns and field bindings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		table, err := converter.LoadTable(cfg.Source.Path, cfg.Source.Layout, cfg.Source.Delimiter)
		if err != nil {
			return fmt.Errorf("failed to read source: %w", err)
		}
		fmt.Fprintf(out, "Source columns (%s, %d rows):\n", cfg.Source.Path, len(table.Records))
		for i, h := range table.Headers {
			fmt.Fprintf(out, "  %3d. %s\n", i+1, h)
		}

		labels, err := xlsxparser.ReadLabels(cfg.Template.Path, cfg.Template.Layout)
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}
		fmt.Fprintf(out, "\nTemplate columns (%s):\n", cfg.Template.Path)
		for i, l := range labels {
			if l != "" {
				fmt.Fprintf(out, "  %3d. %s\n", i+1, l)
			}
		}

		columns, missing, err := xlsxwriter.ResolveColumns(labels, cfg.DestinationFields(), cfg.Template.StrictColumns)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "\nField bindings:")
		for _, field := range cfg.DestinationFields() {
			if cols, ok := columns[field]; ok {
				fmt.Fprintf(out, "  %-40s -> columns %v\n", field, oneBased(cols))
			}
		}
		for _, field := range missing {
			fmt.Fprintf(out, "  %-40s -> (no column)\n", field)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}

func oneBased(cols []int) []int {
	out := make([]int, len(cols))
	for i, c := range cols {
		out[i] = c + 1
	}
	return out
}
