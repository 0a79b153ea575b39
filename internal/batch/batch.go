// Package batch splits output records into fixed-size upload units and names
// the file each unit is written to.
package batch

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultChunkSize is the number of records the marketplace accepts per
// upload file.
const DefaultChunkSize = 1000

// Split partitions items into consecutive batches of at most size elements.
// Order is preserved and concatenating the batches yields the input. A
// non-positive size falls back to DefaultChunkSize. Empty input yields no
// batches.
//
// Each batch has its capacity clipped, so appending to one batch never
// writes into the next.
func Split[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if len(items) == 0 {
		return nil
	}

	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end:end])
	}
	return batches
}

// ChunkFileName inserts a 1-based chunk index before the extension:
//
//	ChunkFileName("output/temu_template_handbags.xlsx", 2)
//	  -> "output/temu_template_handbags_2.xlsx"
func ChunkFileName(base string, index int) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s_%d%s", stem, index, ext)
}
