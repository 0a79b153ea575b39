// =============================================================================
// Catalog Converter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the converter:
//   - Output directory management
//   - Template copying
//   - Summary log generation
//
// SUMMARY LOG:
//   One summary_<run id>.txt per run in the output directory, listing the
//   files written per split, the category assignment report and the audit
//   counts. The run id matches the run_id field of every log line.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all given directories if they don't exist.
// Empty entries are ignored.
func EnsureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a conversion run.
type ProcessingSummary struct {
	RunID     string
	StartTime time.Time
	EndTime   time.Time

	SourceFile    string
	SourceRows    int
	StockFiltered int
	Unmatched     int

	Splits []SplitSummary

	PriceUpdateFiles []string
	StockUpdateFiles []string

	// AuditSummary is the rendered audit trail summary.
	AuditSummary string

	DryRun bool
}

// SplitSummary describes one split of the run.
type SplitSummary struct {
	Name        string
	Rows        int
	OutputFiles []string

	// Categories lists "code description: count" lines.
	Categories []string

	// Error is set when the split failed.
	Error string
}

// WriteSummaryLog writes a processing summary to a log file.
//
// PARAMETERS:
//   - summary: The processing summary.
//   - outputDir: The directory to write the summary file.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	name := summary.RunID
	if name == "" {
		name = summary.StartTime.Format("20060102_150405")
	}
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("summary_%s.txt", name))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	fmt.Fprintf(w, "Catalog Converter - Processing Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Run ID:         %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n"+
		"  Dry Run:        %t\n\n"+
		"Source:\n"+
		"  File:           %s\n"+
		"  Rows:           %d\n"+
		"  Out of stock:   %d\n"+
		"  Unrouted:       %d\n\n",
		summary.RunID,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Sub(summary.StartTime).String(),
		summary.DryRun,
		summary.SourceFile,
		summary.SourceRows,
		summary.StockFiltered,
		summary.Unmatched)

	for _, s := range summary.Splits {
		fmt.Fprintf(w, "Split %s:\n", s.Name)
		w.WriteString("--------------------------------------------------------------------------------\n")
		fmt.Fprintf(w, "  Rows:  %d\n", s.Rows)
		if s.Error != "" {
			fmt.Fprintf(w, "  Error: %s\n", s.Error)
		}
		for _, f := range s.OutputFiles {
			fmt.Fprintf(w, "  Output: %s\n", f)
		}
		if len(s.Categories) > 0 {
			w.WriteString("  Categories:\n")
			for _, c := range s.Categories {
				fmt.Fprintf(w, "    %s\n", c)
			}
		}
		w.WriteString("\n")
	}

	if len(summary.PriceUpdateFiles)+len(summary.StockUpdateFiles) > 0 {
		w.WriteString("Update Files:\n")
		w.WriteString("--------------------------------------------------------------------------------\n")
		for _, f := range summary.PriceUpdateFiles {
			fmt.Fprintf(w, "  Price: %s\n", f)
		}
		for _, f := range summary.StockUpdateFiles {
			fmt.Fprintf(w, "  Stock: %s\n", f)
		}
		w.WriteString("\n")
	}

	if summary.AuditSummary != "" {
		w.WriteString("Audit:\n")
		w.WriteString("--------------------------------------------------------------------------------\n")
		w.WriteString(summary.AuditSummary)
		w.WriteString("\n\n")
	}

	w.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// CopyFile copies a file from src to dst, replacing dst.
func CopyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a regular file exists.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
