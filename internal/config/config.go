// =============================================================================
// Catalog Converter - Configuration Module
// =============================================================================
//
// This module loads the YAML configuration that drives a conversion run. The
// configuration describes:
//   - where the catalog export, upload template and price reference live
//   - how source columns map onto template fields (and which transforms run)
//   - fixed values written to every row
//   - pricing multipliers and category rules
//   - how rows are split into output files by SKU prefix
//
// LOADING ORDER:
//   1. Start from Default(), which reproduces the production mapping set
//   2. Overlay the YAML file (keys present in the file replace defaults)
//   3. Apply defaults for any zero values left behind
//   4. Validate (struct tags, then cross-field checks)
//
// A missing file is not an error when the caller allows it: the defaults are
// used as-is.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/catalog-converter/internal/category"
	"github.com/ginjaninja78/catalog-converter/internal/transform"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the full run configuration.
type Config struct {
	Source     SourceConfig     `yaml:"source"`
	Template   TemplateConfig   `yaml:"template"`
	Output     OutputConfig     `yaml:"output"`
	Reference  ReferenceConfig  `yaml:"reference"`
	Mapping    MappingConfig    `yaml:"mapping"`
	Pricing    PricingConfig    `yaml:"pricing"`
	Categories CategoriesConfig `yaml:"categories"`
	Splits     []SplitConfig    `yaml:"splits" validate:"required,min=1,dive"`
	Processing ProcessingConfig `yaml:"processing"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SheetLayout locates a table inside a workbook or CSV file.
// Row numbers are 1-indexed, as shown in a spreadsheet application.
type SheetLayout struct {
	// Sheet is the worksheet name. Ignored for CSV files.
	Sheet string `yaml:"sheet"`

	// HeaderRow is the row holding column labels.
	HeaderRow int `yaml:"header_row" validate:"min=1"`

	// DataStartRow is the first data row. Rows between the header and this
	// row are descriptive and skipped.
	DataStartRow int `yaml:"data_start_row" validate:"gtfield=HeaderRow"`
}

// SourceConfig describes the catalog export.
type SourceConfig struct {
	// Path is an .xlsx or .csv file.
	Path string `yaml:"path" validate:"required"`

	Layout SheetLayout `yaml:"layout"`

	// Delimiter is the CSV field separator. Default: ","
	Delimiter string `yaml:"delimiter" validate:"len=1"`
}

// TemplateConfig describes the marketplace upload template.
type TemplateConfig struct {
	Path   string      `yaml:"path" validate:"required"`
	Layout SheetLayout `yaml:"layout"`

	// StrictColumns rejects templates where a field name is only a substring
	// of several column labels instead of picking the first.
	StrictColumns bool `yaml:"strict_columns"`
}

// OutputConfig describes where results are written.
type OutputConfig struct {
	Dir string `yaml:"dir" validate:"required"`

	// WriteSummary writes summary_<run id>.txt to Dir.
	WriteSummary bool `yaml:"write_summary"`

	// WriteAuditLog writes audit_<run id>.txt to Dir when entries exist.
	WriteAuditLog bool `yaml:"write_audit_log"`
}

// ReferenceConfig describes the external price/stock sheet and the update
// files generated from it.
type ReferenceConfig struct {
	// Enabled turns price/stock update generation on.
	Enabled bool `yaml:"enabled"`

	// Path is an .xlsx or .csv file.
	Path string `yaml:"path" validate:"required_if=Enabled true"`

	Layout SheetLayout `yaml:"layout"`

	SKUColumn      string `yaml:"sku_column" validate:"required"`
	PriceColumn    string `yaml:"price_column" validate:"required"`
	QuantityColumn string `yaml:"quantity_column" validate:"required"`

	PriceUpdate UpdateSheetConfig `yaml:"price_update"`
	StockUpdate UpdateSheetConfig `yaml:"stock_update"`
}

// UpdateSheetConfig describes one generated update workbook.
type UpdateSheetConfig struct {
	// Template is copied for each chunk when it exists; otherwise a new
	// workbook is created and Headers are written.
	Template string `yaml:"template"`

	// Output is the base file name inside OutputConfig.Dir.
	Output string `yaml:"output" validate:"required"`

	Layout SheetLayout `yaml:"layout"`

	// Headers label the three update columns, in order.
	Headers []string `yaml:"headers" validate:"len=3"`
}

// MappingConfig describes how a source row becomes a template row.
type MappingConfig struct {
	Columns     []ColumnMapping `yaml:"columns" validate:"dive"`
	FixedValues []FixedValue    `yaml:"fixed_values" validate:"dive"`
	Fields      FieldNames      `yaml:"fields"`
}

// ColumnMapping copies one source column to one destination field.
type ColumnMapping struct {
	Source      string `yaml:"source" validate:"required"`
	Destination string `yaml:"destination" validate:"required"`

	// Transforms are applied left to right. See transform.Names.
	Transforms []string `yaml:"transforms"`
}

// FixedValue writes the same value to a destination field on every row.
type FixedValue struct {
	Field string `yaml:"field" validate:"required"`
	Value string `yaml:"value"`
}

// FieldNames names the columns the derived values read from and write to.
type FieldNames struct {
	// Source columns.
	SKU           string `yaml:"sku" validate:"required"`
	ProductName   string `yaml:"product_name" validate:"required"`
	Price         string `yaml:"price" validate:"required"`
	Stock         string `yaml:"stock" validate:"required"`
	OptionImage   string `yaml:"option_image"`
	ProductImages string `yaml:"product_images"`

	// Destination fields.
	Category     string `yaml:"category" validate:"required"`
	BasePrice    string `yaml:"base_price" validate:"required"`
	ListPrice    string `yaml:"list_price" validate:"required"`
	ParentKey    string `yaml:"parent_key" validate:"required"`
	Color        string `yaml:"color" validate:"required"`
	Theme        string `yaml:"theme" validate:"required"`
	SKUImages    string `yaml:"sku_images"`
	DetailImages string `yaml:"detail_images"`
	OutputSKU    string `yaml:"output_sku" validate:"required"`
}

// PricingConfig holds the price multipliers.
type PricingConfig struct {
	BaseMultiplier float64 `yaml:"base_multiplier" validate:"gt=0"`
	ListMultiplier float64 `yaml:"list_multiplier" validate:"gt=0"`
}

// CategoriesConfig holds the category rule list.
type CategoriesConfig struct {
	// Disabled skips rule evaluation; the fixed Category value stays.
	Disabled bool `yaml:"disabled"`

	DefaultCode        string          `yaml:"default_code" validate:"required"`
	DefaultDescription string          `yaml:"default_description"`
	Rules              []category.Rule `yaml:"rules" validate:"dive"`
}

// SplitConfig routes rows to one output file by SKU prefix.
type SplitConfig struct {
	Name string `yaml:"name" validate:"required"`

	// Prefixes are matched case-insensitively against the SKU. An empty list
	// makes this the catch-all split.
	Prefixes []string `yaml:"prefixes"`

	// Output is the base file name inside OutputConfig.Dir.
	Output string `yaml:"output" validate:"required"`
}

// ProcessingConfig controls the run.
type ProcessingConfig struct {
	// FilterStock drops rows whose stock is not a positive number.
	FilterStock bool `yaml:"filter_stock"`

	// MaxConcurrency bounds how many splits are processed at once.
	MaxConcurrency int `yaml:"max_concurrency" validate:"min=1"`

	// ContinueOnError keeps processing other splits after one fails.
	ContinueOnError bool `yaml:"continue_on_error"`

	// DryRun maps everything but writes no workbooks.
	DryRun bool `yaml:"dry_run"`
}

// LoggingConfig controls the logger.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=text json"`

	// File, when set, receives log output instead of stderr.
	File string `yaml:"file"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration at path on top of Default().
//
// PARAMETERS:
//   - path: The YAML file to read.
//   - allowMissing: When true, a non-existent file yields the defaults.
//
// RETURNS:
//   - The validated configuration.
//   - An error if the file cannot be read, parsed or validated.
func Load(path string, allowMissing bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case allowMissing && errors.Is(err, os.ErrNotExist):
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML bytes on top of Default(), then applies defaults and
// validates.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults sets default values for any unset options.
func applyDefaults(cfg *Config) {
	applyLayoutDefaults(&cfg.Source.Layout, "Products", 1, 5)
	if cfg.Source.Delimiter == "" {
		cfg.Source.Delimiter = ","
	}
	applyLayoutDefaults(&cfg.Template.Layout, "Template", 2, 5)
	applyLayoutDefaults(&cfg.Reference.Layout, "Sheet1", 6, 7)
	applyLayoutDefaults(&cfg.Reference.PriceUpdate.Layout, "", 1, 2)
	applyLayoutDefaults(&cfg.Reference.StockUpdate.Layout, "", 2, 3)

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}
	if cfg.Pricing.BaseMultiplier == 0 {
		cfg.Pricing.BaseMultiplier = 1.0
	}
	if cfg.Pricing.ListMultiplier == 0 {
		cfg.Pricing.ListMultiplier = 1.25
	}
	if cfg.Categories.DefaultCode == "" {
		cfg.Categories.DefaultCode = category.DefaultCode
		cfg.Categories.DefaultDescription = category.DefaultDescription
	}
	if cfg.Processing.MaxConcurrency == 0 {
		cfg.Processing.MaxConcurrency = 4
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
}

func applyLayoutDefaults(l *SheetLayout, sheet string, header, data int) {
	if l.Sheet == "" {
		l.Sheet = sheet
	}
	if l.HeaderRow == 0 {
		l.HeaderRow = header
	}
	if l.DataStartRow == 0 {
		l.DataStartRow = data
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

var validate = validator.New()

// Validate checks struct tags and cross-field rules.
//
// RETURNS:
//   - nil, or an error wrapping ErrInvalidConfig that lists every problem.
func Validate(cfg *Config) error {
	var problems []string

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				problems = append(problems, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
		} else {
			problems = append(problems, err.Error())
		}
	}

	for _, m := range cfg.Mapping.Columns {
		if _, err := transform.Chain(m.Transforms...); err != nil {
			problems = append(problems, fmt.Sprintf("mapping %q -> %q: %v", m.Source, m.Destination, err))
		}
	}

	catchAll := 0
	names := make(map[string]bool)
	for _, s := range cfg.Splits {
		if len(s.Prefixes) == 0 {
			catchAll++
		}
		if names[s.Name] {
			problems = append(problems, fmt.Sprintf("split %q defined twice", s.Name))
		}
		names[s.Name] = true
	}
	if catchAll > 1 {
		problems = append(problems, "more than one catch-all split (empty prefixes)")
	}

	if _, err := cfg.CategoryEngine(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// CategoryEngine builds the rule engine described by the configuration.
func (c *Config) CategoryEngine() (*category.Engine, error) {
	return category.NewEngine(c.Categories.Rules, c.Categories.DefaultCode, c.Categories.DefaultDescription)
}

// DestinationFields lists every destination field a mapped row can carry, in
// first-mention order: column mappings, fixed values, then derived fields.
func (c *Config) DestinationFields() []string {
	seen := make(map[string]bool)
	var fields []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			fields = append(fields, name)
		}
	}

	for _, m := range c.Mapping.Columns {
		add(m.Destination)
	}
	for _, fv := range c.Mapping.FixedValues {
		add(fv.Field)
	}
	f := c.Mapping.Fields
	for _, name := range []string{f.Category, f.BasePrice, f.ListPrice, f.ParentKey, f.Color, f.Theme, f.SKUImages, f.DetailImages, f.OutputSKU} {
		add(name)
	}
	return fields
}

// NumericFields lists the destination fields written as number cells: the
// computed prices, and every column mapping ending in the "integer" or
// "price" transform.
func (c *Config) NumericFields() []string {
	f := c.Mapping.Fields
	fields := []string{f.BasePrice, f.ListPrice}
	for _, m := range c.Mapping.Columns {
		if len(m.Transforms) == 0 {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(m.Transforms[len(m.Transforms)-1])) {
		case "integer", "price":
			fields = append(fields, m.Destination)
		}
	}
	return fields
}
