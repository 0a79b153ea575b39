package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/catalog-converter/internal/category"
	"github.com/ginjaninja78/catalog-converter/internal/config"
)

// categoriesCmd lists the configured categories in evaluation order.
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category rules in evaluation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine(cmd)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tDESCRIPTION")
		for _, info := range engine.AllCategories() {
			marker := ""
			if info.Code == engine.DefaultCode() {
				marker = " (default)"
			}
			fmt.Fprintf(w, "%s\t%s%s\n", info.Code, info.Description, marker)
		}
		return w.Flush()
	},
}

// classifyCmd shows the category each product name would get.
var classifyCmd = &cobra.Command{
	Use:   "classify NAME...",
	Short: "Show the category assigned to product names",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, name := range args {
			code := engine.DetermineCategory(name, "")
			info, _ := engine.CategoryInfo(code)
			fmt.Fprintf(out, "%s\t%s %s\n", strings.TrimSpace(name), code, info.Description)
		}
		return nil
	},
}

func init() {
	categoriesCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func loadEngine(cmd *cobra.Command) (*category.Engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return engineFor(cfg)
}

func engineFor(cfg *config.Config) (*category.Engine, error) {
	engine, err := cfg.CategoryEngine()
	if err != nil {
		return nil, fmt.Errorf("invalid category rules: %w", err)
	}
	return engine, nil
}
