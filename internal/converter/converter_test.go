package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/catalog-converter/internal/audit"
	"github.com/ginjaninja78/catalog-converter/internal/config"
	"github.com/ginjaninja78/catalog-converter/internal/logging"
)

var sourceHeaders = []any{"SKU", "Product Name (English)", "USD Unit Retail Price", "On Hand Inventory", "Product Images"}

// writeSource writes a catalog export laid out like the real one: headers on
// row 1, three help rows, data from row 5.
func writeSource(t *testing.T, dir string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Products"))

	require.NoError(t, f.SetSheetRow("Products", "A1", &sourceHeaders))
	for i := 2; i <= 4; i++ {
		require.NoError(t, f.SetSheetRow("Products", fmt.Sprintf("A%d", i), &[]any{"help text"}))
	}
	for i, r := range rows {
		require.NoError(t, f.SetSheetRow("Products", fmt.Sprintf("A%d", i+5), &r))
	}

	path := filepath.Join(dir, "products.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeTemplate(t *testing.T, dir string, labels []string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Template"))
	require.NoError(t, f.SetSheetRow("Template", "A2", &labels))

	path := filepath.Join(dir, "template.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func testConfig(t *testing.T, rows [][]any) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Source.Path = writeSource(t, dir, rows)
	cfg.Template.Path = writeTemplate(t, dir, append(cfg.DestinationFields(), "Quantity"))
	cfg.Output.Dir = filepath.Join(dir, "output")
	require.NoError(t, config.Validate(cfg))
	return cfg
}

func dataRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Template")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 4)
	return rows[4:]
}

func TestRunWritesChunkedUploadFiles(t *testing.T) {
	rows := make([][]any, 0, 2500)
	for i := 0; i < 2500; i++ {
		rows = append(rows, []any{fmt.Sprintf("HBG%04dPN", i), "Leather Tote Bag", "19.99", "5", "https://cdn/x.jpg"})
	}
	cfg := testConfig(t, rows)

	res, err := New(cfg, logging.Discard()).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Splits, 2)
	handbags := res.Splits[0]
	assert.Equal(t, 2500, handbags.Rows)
	require.Len(t, handbags.OutputFiles, 3)
	assert.Equal(t, filepath.Join(cfg.Output.Dir, "temu_template_handbags_3.xlsx"), handbags.OutputFiles[2])

	var sizes []int
	for _, f := range handbags.OutputFiles {
		sizes = append(sizes, len(dataRows(t, f)))
	}
	assert.Equal(t, []int{1000, 1000, 500}, sizes)

	assert.Empty(t, res.Splits[1].OutputFiles, "empty split writes nothing")
	assert.Equal(t, 2500, res.Stats.MappedRows)
	assert.FileExists(t, res.SummaryFile)
}

func TestRunMapsRowIntoTemplate(t *testing.T) {
	cfg := testConfig(t, [][]any{
		{"HBG100PN", "Women's Leather Belt", "19.99", "7", "https://cdn/a.jpg"},
		{"HBG100BL", "Women's Leather Belt", "19.99", "0", "https://cdn/b.jpg"},
		{"CAP2", "Random Product", "9.99", "2", ""},
	})

	res, err := New(cfg, logging.Discard()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.StockFiltered)
	assert.Equal(t, 1, res.Audit.Count(audit.StockFiltered))

	labels := append(cfg.DestinationFields(), "Quantity")
	col := func(name string) int {
		for i, l := range labels {
			if l == name {
				return i
			}
		}
		t.Fatalf("no column %q", name)
		return -1
	}

	got := dataRows(t, res.Splits[0].OutputFiles[0])
	require.Len(t, got, 1)
	row := got[0]
	assert.Equal(t, "29264", row[col("Category")])
	assert.Equal(t, "18.99", row[col("Base Price - USD")])
	assert.Equal(t, "23.99", row[col("List Price - USD")])
	assert.Equal(t, "HBG100", row[col("Contribution Goods")])
	assert.Equal(t, "One Color", row[col("Color")])
	assert.Equal(t, "7", row[col("Quantity")])
	assert.Equal(t, "7", row[len(labels)-1], "quantity fans out to every Quantity column")

	other := dataRows(t, res.Splits[1].OutputFiles[0])
	require.Len(t, other, 1)
	assert.Equal(t, "29153", other[0][col("Category")])

	require.Len(t, res.Splits[0].Categories, 1)
	assert.Equal(t, 1, res.Splits[0].Categories[0].Count)
}

func TestRunReconcilesAcrossSplits(t *testing.T) {
	cfg := testConfig(t, [][]any{
		{"HBG1PN", "Tote", "19.99", "4", ""},
		{"CAP2", "Cap", "9.99", "2", ""},
	})
	dir := filepath.Dir(cfg.Source.Path)
	refPath := filepath.Join(dir, "prices.csv")
	require.NoError(t, os.WriteFile(refPath, []byte("Item #,Sale Price,On-hand Qty\nHBG1PN,15.50,3\n"), 0o644))

	cfg.Reference.Enabled = true
	cfg.Reference.Path = refPath
	cfg.Reference.Layout = config.SheetLayout{HeaderRow: 1, DataStartRow: 2}
	cfg.Reference.PriceUpdate.Template = ""
	cfg.Reference.StockUpdate.Template = ""

	res, err := New(cfg, logging.Discard()).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.PriceUpdateFiles, 1)
	require.Len(t, res.StockUpdateFiles, 1)
	assert.Equal(t, 1, res.Reconcile.PriceHits)
	assert.Equal(t, 1, res.Reconcile.StockMiss)

	f, err := excelize.OpenFile(res.PriceUpdateFiles[0])
	require.NoError(t, err)
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	f.Close()
	assert.Equal(t, [][]string{
		{"SKU ID", "Current base price", "New base price"},
		{"HBG1PN", "18.99", "15.50"},
		{"CAP2", "8.99", "8.99"},
	}, rows)

	f, err = excelize.OpenFile(res.StockUpdateFiles[0])
	require.NoError(t, err)
	rows, err = f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	f.Close()
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"HBG1PN", "", "3"}, rows[2])
	assert.Equal(t, []string{"CAP2", "", "0"}, rows[3])
}

func TestRunPricesFromStoredValues(t *testing.T) {
	cfg := testConfig(t, [][]any{{"HBG100PN", "Leather Tote Bag", 19.99, 3, "https://cdn/a.jpg"}})

	f, err := excelize.OpenFile(cfg.Source.Path)
	require.NoError(t, err)
	whole, err := f.NewStyle(&excelize.Style{NumFmt: 1})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Products", "C5", "C5", whole))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	res, err := New(cfg, logging.Discard()).Run(context.Background())
	require.NoError(t, err)

	labels := append(cfg.DestinationFields(), "Quantity")
	got := dataRows(t, res.Splits[0].OutputFiles[0])
	require.Len(t, got, 1)
	for i, l := range labels {
		switch l {
		case "Base Price - USD":
			assert.Equal(t, "18.99", got[0][i])
		case "List Price - USD":
			assert.Equal(t, "23.99", got[0][i])
		}
	}
}

func TestRunDryRunWritesNothing(t *testing.T) {
	cfg := testConfig(t, [][]any{{"HBG1PN", "Tote", "19.99", "4", ""}})
	cfg.Processing.DryRun = true

	res, err := New(cfg, logging.Discard()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Splits[0].Rows)
	assert.Empty(t, res.Splits[0].OutputFiles)
	assert.NoDirExists(t, cfg.Output.Dir)
}

func TestRunTemplateErrors(t *testing.T) {
	cfg := testConfig(t, [][]any{
		{"HBG1PN", "Tote", "19.99", "4", ""},
		{"CAP2", "Cap", "9.99", "2", ""},
	})
	cfg.Template.Path = filepath.Join(t.TempDir(), "absent.xlsx")

	_, err := New(cfg, logging.Discard()).Run(context.Background())
	assert.Error(t, err)

	cfg.Processing.ContinueOnError = true
	res, err := New(cfg, logging.Discard()).Run(context.Background())
	require.NoError(t, err)
	assert.Error(t, res.Splits[0].Error)
	assert.Error(t, res.Splits[1].Error)
}

func TestRunCancelled(t *testing.T) {
	cfg := testConfig(t, [][]any{{"HBG1PN", "Tote", "19.99", "4", ""}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(cfg, logging.Discard()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunMissingSource(t *testing.T) {
	cfg := config.Default()
	cfg.Source.Path = filepath.Join(t.TempDir(), "absent.xlsx")

	_, err := New(cfg, nil).Run(context.Background())
	assert.ErrorContains(t, err, "failed to read source")
}
