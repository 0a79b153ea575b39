package config

import "github.com/ginjaninja78/catalog-converter/internal/category"

// Default returns the production configuration: the catalog export columns
// mapped onto the marketplace bulk-upload template.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Path:      "data/faire_products.xlsx",
			Layout:    SheetLayout{Sheet: "Products", HeaderRow: 1, DataStartRow: 5},
			Delimiter: ",",
		},
		Template: TemplateConfig{
			Path:   "data/temu_template.xlsx",
			Layout: SheetLayout{Sheet: "Template", HeaderRow: 2, DataStartRow: 5},
		},
		Output: OutputConfig{
			Dir:           "output",
			WriteSummary:  true,
			WriteAuditLog: true,
		},
		Reference: ReferenceConfig{
			Enabled:        false,
			Path:           "data/prices.xlsx",
			Layout:         SheetLayout{Sheet: "Sheet1", HeaderRow: 6, DataStartRow: 7},
			SKUColumn:      "Item #",
			PriceColumn:    "Sale Price",
			QuantityColumn: "On-hand Qty",
			PriceUpdate: UpdateSheetConfig{
				Template: "data/temu_price_template.xlsx",
				Output:   "temu_price_update.xlsx",
				Layout:   SheetLayout{HeaderRow: 1, DataStartRow: 2},
				Headers:  []string{"SKU ID", "Current base price", "New base price"},
			},
			StockUpdate: UpdateSheetConfig{
				Template: "data/temu_stock_template.xlsx",
				Output:   "temu_stock_update.xlsx",
				Layout:   SheetLayout{HeaderRow: 2, DataStartRow: 3},
				Headers:  []string{"SKU", "SKU ID", "New quantity"},
			},
		},
		Mapping: MappingConfig{
			Columns: []ColumnMapping{
				{Source: "Product Name (English)", Destination: "Product Name", Transforms: []string{"trim"}},
				{Source: "Description (English)", Destination: "Product Description", Transforms: []string{"trim"}},
				{Source: "SKU", Destination: "Contribution SKU", Transforms: []string{"trim"}},
				{Source: "On Hand Inventory", Destination: "Quantity", Transforms: []string{"integer"}},
				{Source: "Made In Country", Destination: "Country/Region of Origin"},
				{Source: "Option 1 Name", Destination: "Variation Theme", Transforms: []string{"trim"}},
				{Source: "Option 1 Value", Destination: "Color", Transforms: []string{"trim"}},
				{Source: "Item Weight", Destination: "Weight - lb"},
				{Source: "Item Length", Destination: "Length - in"},
				{Source: "Item Width", Destination: "Width - in"},
				{Source: "Item Height", Destination: "Height - in"},
			},
			FixedValues: []FixedValue{
				{Field: "Category", Value: category.DefaultCode},
				{Field: "Country/Region of Origin", Value: "Mainland China"},
				{Field: "Province of Origin", Value: "Guangdong"},
				{Field: "Update or Add", Value: "Add"},
				{Field: "Shipping Template", Value: "NIMA2"},
				{Field: "California Proposition 65 Warning Type", Value: "No Warning Applicable"},
			},
			Fields: FieldNames{
				SKU:           "SKU",
				ProductName:   "Product Name (English)",
				Price:         "USD Unit Retail Price",
				Stock:         "On Hand Inventory",
				OptionImage:   "Option Image",
				ProductImages: "Product Images",

				Category:     "Category",
				BasePrice:    "Base Price - USD",
				ListPrice:    "List Price - USD",
				ParentKey:    "Contribution Goods",
				Color:        "Color",
				Theme:        "Variation Theme",
				SKUImages:    "SKU Images URL",
				DetailImages: "Detail Images URL",
				OutputSKU:    "Contribution SKU",
			},
		},
		Pricing: PricingConfig{BaseMultiplier: 1.0, ListMultiplier: 1.25},
		Categories: CategoriesConfig{
			DefaultCode:        category.DefaultCode,
			DefaultDescription: category.DefaultDescription,
			Rules:              category.DefaultRules(),
		},
		Splits: []SplitConfig{
			{Name: "handbags", Prefixes: []string{"HBG", "HW", "HM", "HL"}, Output: "temu_template_handbags.xlsx"},
			{Name: "other", Output: "temu_template_other.xlsx"},
		},
		Processing: ProcessingConfig{
			FilterStock:     true,
			MaxConcurrency:  4,
			ContinueOnError: false,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}
