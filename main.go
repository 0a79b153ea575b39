// =============================================================================
// Catalog Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   converter convert      - Convert the catalog export into upload files
//   converter categories   - List category rules, or classify product names
//   converter columns      - Show source/template columns and bindings
//   converter version      - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Conversion pipeline and its components
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/catalog-converter/cmd"
)

func main() {
	cmd.Execute()
}
