package category

var womenWords = []string{"women", "female", "ladies", "woman"}

// DefaultRules returns the hand-curated rule list, in evaluation order.
// Each call returns a fresh slice.
func DefaultRules() []Rule {
	return []Rule{
		{
			Code:        "2062",
			Description: "Pet Supplies / Small Animals / Carriers",
			AllOf: [][]string{
				{"pet", "animal", "dog", "cat", "bird", "hamster", "rabbit", "guinea", "ferret"},
				{"carrier", "crate", "kennel", "bag", "cage", "transport"},
			},
		},
		{
			Code:        "9923",
			Description: "Home & Kitchen / Kitchen & Dining / Kitchen Utensils & Gadgets",
			AllOf: [][]string{
				{"kitchen", "cooking", "baking", "dining", "food", "chef"},
				{"utensil", "gadget", "tool", "set", "spatula", "whisk", "opener", "strainer", "grater"},
			},
		},
		{
			Code:        "11809",
			Description: "Home & Kitchen / Bath / Towels / Beach Towels",
			AllOf: [][]string{
				{"bath", "bathroom", "shower", "beach", "pool", "spa"},
				{"towel", "wrap", "robe", "bath towel", "beach towel"},
			},
		},
		{
			Code:        "19843",
			Description: "Beauty & Personal Care / Foot, Hand & Nail Care / Tools & Accessories",
			AllOf: [][]string{
				{"nail", "foot", "hand", "spa", "pedicure", "manicure", "beauty"},
				{"tool", "accessory", "slipper", "file", "clipper", "brush", "polish"},
			},
		},
		{
			Code:        "24380",
			Description: "Cell Phones & Accessories / Cases, Holsters & Sleeves",
			AllOf: [][]string{
				{"phone", "cell", "smartphone", "mobile", "iphone", "android"},
				{"case", "holster", "sleeve", "crossbody", "lanyard", "cover", "protector"},
			},
		},
		{
			Code:        "29264",
			Description: "Clothing, Shoes & Jewelry / Women / Accessories / Belts",
			AllOf:       [][]string{womenWords, {"belt", "waistband", "strap", "leather belt"}},
		},
		{
			Code:        "29290",
			Description: "Clothing, Shoes & Jewelry / Women / Accessories / Scarves & Wraps",
			AllOf:       [][]string{womenWords, {"scarf", "wrap", "shawl", "stole", "neck scarf"}},
		},
		{
			Code:        "29312",
			Description: "Clothing, Shoes & Jewelry / Women / Accessories / Sunglasses & Eyewear",
			AllOf: [][]string{
				{"eyeglass", "glasses", "sunglasses", "sunglass", "eye", "vision"},
				{"case", "holder", "container", "protector"},
			},
		},
		{
			Code:        "29324",
			Description: "Clothing, Shoes & Jewelry / Women / Accessories / Wallets",
			AllOf: [][]string{
				womenWords,
				{"wallet", "card case", "money organizer", "purse", "coin pouch", "billfold"},
			},
		},
		{
			Code:        "29522",
			Description: "Clothing, Shoes & Jewelry / Women / Jewelry / Brooches & Pins",
			AllOf:       [][]string{womenWords, {"brooch", "pin", "badge", "lapel", "decorative pin"}},
		},
		{
			Code:        "29542",
			Description: "Clothing, Shoes & Jewelry / Women / Jewelry / Necklaces",
			AllOf:       [][]string{womenWords, {"necklace", "pendant", "choker", "chain", "jewelry"}},
		},
		{
			Code:        "30988",
			Description: "Clothing, Shoes & Jewelry / Luggage & Travel Gear / Cosmetic Cases",
			AllOf: [][]string{
				{"cosmetic", "make-up", "makeup", "beauty"},
				{"case", "bag", "holder", "organizer", "travel"},
			},
		},
		{
			Code:        "36256",
			Description: "Sports & Outdoors / Sports / Leisure Sports / Pickleball / Paddles",
			AllOf: [][]string{
				{"sport", "outdoor", "game", "pickleball", "tennis", "badminton", "paddle"},
				{"paddle", "racket", "ball", "set", "equipment"},
			},
		},
		{
			Code:        "39969",
			Description: "Arts, Crafts & Sewing / Organization / Pen, Pencil & Marker Cases",
			AllOf: [][]string{
				{"art", "craft", "sewing", "school", "office", "stationery"},
				{"pen", "pencil", "marker", "case", "pouch", "holder", "organizer"},
			},
		},
		{
			Code:        "46208",
			Description: "Books / Children's Books / Education & Reference / Journal Writing",
			AllOf: [][]string{
				{"book", "children", "kids", "education", "reference", "reading", "writing", "journal", "diary", "notebook"},
			},
		},
		{Code: "29163", Description: "Tote bags and totes", AllOf: [][]string{{"tote"}}},
		{Code: "29164", Description: "Backpacks", AllOf: [][]string{{"backpack"}}},
		{Code: "29165", Description: "Wallets", AllOf: [][]string{{"wallet"}}},
	}
}
