package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineCategory(t *testing.T) {
	engine := Default()

	tests := []struct {
		name string
		want string
	}{
		{"Women's Leather Belt", "29264"},
		{"Pet Carrier for Dogs", "2062"},
		{"Kitchen Utensil Set", "9923"},
		{"Beach Towel", "11809"},
		{"Nail Art Tools", "19843"},
		{"iPhone Case", "24380"},
		{"Women's Scarf", "29290"},
		{"Eyeglass Case", "29312"},
		{"Women's Wallet", "29324"},
		{"Women's Brooch", "29522"},
		{"Women's Necklace", "29542"},
		{"Cosmetic Case", "30988"},
		{"Pickleball Paddle", "36256"},
		{"Children's Book", "46208"},
		{"Tote Bag", "29163"},
		{"Backpack", "29164"},
		{"Wallet", "29165"},
		{"Random Product", "29153"},
		{"", "29153"},
		{"   ", "29153"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.DetermineCategory(tt.name, ""))
		})
	}
}

func TestDetermineCategoryIsDeterministic(t *testing.T) {
	engine := Default()
	first := engine.DetermineCategory("Women's Leather Belt", "")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, engine.DetermineCategory("Women's Leather Belt", ""))
	}
}

func TestFirstMatchWins(t *testing.T) {
	engine, err := NewEngine([]Rule{
		{Code: "1", Description: "first", AllOf: [][]string{{"bag"}}},
		{Code: "2", Description: "second", AllOf: [][]string{{"tote"}}},
	}, "0", "none")
	require.NoError(t, err)

	assert.Equal(t, "1", engine.DetermineCategory("Tote Bag", ""))
	assert.Equal(t, "2", engine.DetermineCategory("Canvas Tote", ""))
	assert.Equal(t, "0", engine.DetermineCategory("Umbrella", ""))
}

func TestAuxGroups(t *testing.T) {
	engine, err := NewEngine([]Rule{
		{Code: "7", AllOf: [][]string{{"pouch"}}, AuxAllOf: [][]string{{"leather"}}},
	}, "", "")
	require.NoError(t, err)

	assert.Equal(t, "7", engine.DetermineCategory("Zip Pouch", "https://cdn/LEATHER-pouch.jpg"))
	assert.Equal(t, DefaultCode, engine.DetermineCategory("Zip Pouch", "https://cdn/canvas.jpg"))
}

func TestCategoryInfo(t *testing.T) {
	engine := Default()

	info, ok := engine.CategoryInfo("29264")
	require.True(t, ok)
	assert.Equal(t, "Clothing, Shoes & Jewelry / Women / Accessories / Belts", info.Description)

	info, ok = engine.CategoryInfo(DefaultCode)
	require.True(t, ok)
	assert.Equal(t, DefaultDescription, info.Description)

	_, ok = engine.CategoryInfo("99999")
	assert.False(t, ok)
}

func TestAllCategories(t *testing.T) {
	all := Default().AllCategories()
	require.Len(t, all, len(DefaultRules())+1)
	assert.Equal(t, "2062", all[0].Code)
	assert.Equal(t, DefaultCode, all[len(all)-1].Code)
}

func TestNewEngineRejectsBadRules(t *testing.T) {
	_, err := NewEngine([]Rule{{Code: "", AllOf: [][]string{{"x"}}}}, "", "")
	assert.Error(t, err)

	_, err = NewEngine([]Rule{{Code: "1"}}, "", "")
	assert.Error(t, err)

	_, err = NewEngine([]Rule{
		{Code: "1", AllOf: [][]string{{"x"}}},
		{Code: "1", AllOf: [][]string{{"y"}}},
	}, "", "")
	assert.ErrorContains(t, err, "duplicate")
}

func TestEngineCopiesRules(t *testing.T) {
	rules := []Rule{{Code: "5", AllOf: [][]string{{"mug"}}}}
	engine, err := NewEngine(rules, "", "")
	require.NoError(t, err)

	rules[0].AllOf[0][0] = "plate"
	assert.Equal(t, "5", engine.DetermineCategory("Coffee Mug", ""))
}
