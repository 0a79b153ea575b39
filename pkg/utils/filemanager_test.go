package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "a", "b")

	require.NoError(t, EnsureDirectories("", dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.False(t, FileExists(dir), "directories are not files")
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o644))

	require.NoError(t, CopyFile(src, dst))
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
	assert.True(t, FileExists(dst))

	assert.Error(t, CopyFile(filepath.Join(dir, "missing"), dst))
}

func TestWriteSummaryLog(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	path, err := WriteSummaryLog(ProcessingSummary{
		RunID:      "run-1",
		StartTime:  start,
		EndTime:    start.Add(2 * time.Second),
		SourceFile: "products.xlsx",
		SourceRows: 10,
		Splits: []SplitSummary{
			{Name: "handbags", Rows: 4, OutputFiles: []string{"out/handbags_1.xlsx"}, Categories: []string{"29264 Belts: 4"}},
			{Name: "other", Error: "template missing"},
		},
		PriceUpdateFiles: []string{"out/price_1.xlsx"},
		AuditSummary:     "No audit entries.",
	}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "summary_run-1.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	for _, want := range []string{
		"Run ID:         run-1",
		"Duration:       2s",
		"Split handbags:",
		"Output: out/handbags_1.xlsx",
		"29264 Belts: 4",
		"Error: template missing",
		"Price: out/price_1.xlsx",
		"No audit entries.",
	} {
		assert.Contains(t, text, want)
	}
}
