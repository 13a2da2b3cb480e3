package seed

// categoryVocab holds the building blocks for one product category.
type categoryVocab struct {
	name       string
	nouns      []string
	adjectives []string
	features   []string
	brands     []string
	minPrice   float64
	maxPrice   float64
}

var catalogVocab = []categoryVocab{
	{
		name: "Electronics",
		nouns: []string{
			"Headphones", "Earbuds", "Speaker", "Smartwatch", "Tablet",
			"Laptop", "Monitor", "Keyboard", "Mouse", "Webcam", "Power Bank",
		},
		adjectives: []string{
			"Wireless", "Bluetooth", "Portable", "Smart", "Compact", "Ergonomic",
		},
		features: []string{
			"long battery life", "fast charging", "active noise cancelling",
			"crystal clear sound", "a backlit display", "ultra low latency",
		},
		brands:   []string{"Audix", "Voltix", "Clickr", "Lumina", "NovaTech"},
		minPrice: 19.99,
		maxPrice: 1299.99,
	},
	{
		name: "Kitchen",
		nouns: []string{
			"Espresso Machine", "Blender", "Toaster", "Air Fryer", "Kettle",
			"Coffee Grinder", "Food Processor", "Rice Cooker",
		},
		adjectives: []string{
			"Stainless Steel", "Compact", "Digital", "Programmable", "Premium",
		},
		features: []string{
			"one-touch controls", "easy-clean parts", "precise temperature control",
			"a milk frother", "dishwasher-safe accessories",
		},
		brands:   []string{"Brewista", "KitchenPro", "Cucina", "HomeChef"},
		minPrice: 24.99,
		maxPrice: 499.99,
	},
	{
		name: "Furniture",
		nouns: []string{
			"Standing Desk", "Office Chair", "Bookshelf", "Monitor Stand",
			"Desk Lamp", "Filing Cabinet",
		},
		adjectives: []string{
			"Adjustable", "Ergonomic", "Foldable", "Oak", "Minimalist",
		},
		features: []string{
			"a height memory function", "lumbar support", "cable management",
			"tool-free assembly", "a scratch-resistant finish",
		},
		brands:   []string{"Deskly", "FormaCasa", "Nordik"},
		minPrice: 49.99,
		maxPrice: 899.99,
	},
	{
		name: "Sports",
		nouns: []string{
			"Yoga Mat", "Dumbbell Set", "Resistance Bands", "Running Shoes",
			"Water Bottle", "Jump Rope", "Foam Roller",
		},
		adjectives: []string{
			"Non-Slip", "Adjustable", "Lightweight", "Insulated", "Breathable",
		},
		features: []string{
			"a carrying strap", "sweat-resistant grip", "quick-dry material",
			"double-wall insulation", "extra cushioning",
		},
		brands:   []string{"FlexFit", "Peakline", "AeroMove"},
		minPrice: 9.99,
		maxPrice: 199.99,
	},
	{
		name: "Accessories",
		nouns: []string{
			"Backpack", "Messenger Bag", "Phone Case", "Travel Organizer", "Wallet",
		},
		adjectives: []string{
			"Waterproof", "Leather", "Slim", "Anti-Theft", "Everyday",
		},
		features: []string{
			"a padded laptop sleeve", "RFID protection", "quick-access pockets",
			"reinforced stitching", "a lifetime warranty",
		},
		brands:   []string{"Urbanik", "CarryOn", "Fieldcraft"},
		minPrice: 14.99,
		maxPrice: 149.99,
	},
}

var regions = []string{
	"North America", "Europe", "Asia Pacific", "Latin America", "Middle East & Africa",
}

// reviewTemplates groups titles and bodies by sentiment band. Index 0
// is negative (ratings 1-2), 1 is neutral (rating 3), 2 is positive
// (ratings 4-5).
var reviewTemplates = [3]struct {
	titles []string
	bodies []string
}{
	{
		titles: []string{"Disappointed", "Not worth it", "Stopped working"},
		bodies: []string{
			"Quality did not match the price. Returned it after a week.",
			"Arrived with a defect and support was slow to respond.",
			"Looks fine in photos but feels flimsy in person.",
		},
	},
	{
		titles: []string{"Decent for the price", "Okay overall", "Mixed feelings"},
		bodies: []string{
			"Does the job, though the build could be better.",
			"Works as described but nothing exceptional.",
			"Good value, with a few rough edges.",
		},
	},
	{
		titles: []string{"Great purchase", "Exceeded expectations", "Highly recommend", "Love it"},
		bodies: []string{
			"Exactly what I was looking for. Setup took minutes.",
			"Solid build quality and it works flawlessly every day.",
			"Bought a second one as a gift. Could not be happier.",
			"Noticeably better than my previous one.",
		},
	},
}
