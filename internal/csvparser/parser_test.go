package csvparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/catalog-converter/internal/config"
)

func TestRead(t *testing.T) {
	data := "\uFEFF" + "SKU,Product Name (English),,USD Unit Retail Price\n" +
		"# notes row,,,\n" +
		"HBG100PN,\"Tote, Large\",x,19.99\n" +
		",,,\n" +
		"HW1,Wallet\n"

	table, err := Read(strings.NewReader(data), config.SheetLayout{HeaderRow: 1, DataStartRow: 3}, ",")
	require.NoError(t, err)

	assert.Equal(t, []string{"SKU", "Product Name (English)", "USD Unit Retail Price"}, table.Headers)
	require.Len(t, table.Records, 2)
	assert.Equal(t, 3, table.Records[0].Row)
	assert.Equal(t, "Tote, Large", table.Records[0].Get("Product Name (English)"))
	assert.Equal(t, 5, table.Records[1].Row)
	assert.Equal(t, "", table.Records[1].Get("USD Unit Retail Price"))
}

func TestReadDelimiters(t *testing.T) {
	for _, delim := range []string{"\t", "tab", "\\t"} {
		table, err := Read(strings.NewReader("Item #\tSale Price\nA1\t3.50\n"), config.SheetLayout{HeaderRow: 1, DataStartRow: 2}, delim)
		require.NoError(t, err, delim)
		assert.Equal(t, "3.50", table.Records[0].Get("Sale Price"), delim)
	}

	table, err := Read(strings.NewReader("a|b\n1|2\n"), config.SheetLayout{HeaderRow: 1, DataStartRow: 2}, "pipe")
	require.NoError(t, err)
	assert.Equal(t, "2", table.Records[0].Get("b"))
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader(""), config.SheetLayout{HeaderRow: 1}, ",")
	assert.ErrorContains(t, err, "empty")

	_, err = Read(strings.NewReader("a,b\n"), config.SheetLayout{HeaderRow: 6}, ",")
	assert.ErrorContains(t, err, "beyond")

	_, err = ReadTable(filepath.Join(t.TempDir(), "missing.csv"), config.SheetLayout{HeaderRow: 1}, ",")
	assert.Error(t, err)
}

func TestReadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte("Item #,Sale Price,On-hand Qty\nA1,15.50,3\n"), 0o644))

	table, err := ReadTable(path, config.SheetLayout{HeaderRow: 1, DataStartRow: 2}, "")
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "15.50", table.Records[0].Get("Sale Price"))
}
