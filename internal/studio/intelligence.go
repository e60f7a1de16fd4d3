package studio

import "strings"

// Intelligence is the bundle of content defaults derived from a product's
// category and name. Empty strings mean "no suggestion".
type Intelligence struct {
	PhysicalForm       string   `json:"physicalForm"`
	SubjectSuggestion  string   `json:"subjectSuggestion,omitempty"`
	SubjectAppropriate bool     `json:"subjectAppropriate"`
	LiquidAppropriate  bool     `json:"liquidAppropriate"`
	PowderAppropriate  bool     `json:"powderAppropriate"`
	Props              []string `json:"props"`
	Environment        string   `json:"environment"`
	LightingDefault    string   `json:"lightingDefault"`
	CreativeDefault    int      `json:"creativeDefault"`
	Behavior           string   `json:"behavior,omitempty"`
}

// FallbackIntelligence applies to any category without a table entry.
var FallbackIntelligence = Intelligence{
	PhysicalForm:       "Solid",
	SubjectSuggestion:  "",
	SubjectAppropriate: false,
	LiquidAppropriate:  false,
	PowderAppropriate:  false,
	Props:              []string{"Minimalist props"},
	Environment:        "Modern minimalist studio",
	LightingDefault:    "Natural Daylight",
	CreativeDefault:    3,
}

var categoryIntelligence = map[string]Intelligence{
	"Apparel, Shoes & Jewelry": {
		PhysicalForm:       "Solid",
		SubjectSuggestion:  "A professional fashion model with natural poise",
		SubjectAppropriate: true,
		Props:              []string{"Luxury jewelry box", "Silk fabric", "Minimalist storefront"},
		Environment:        "Modern urban street, upscale boutique, soft-lit studio",
		LightingDefault:    "Natural Daylight",
		CreativeDefault:    4,
		Behavior:           "The piece is worn elegantly, catching the light perfectly on its surfaces.",
	},
	"Automotive & Parts": {
		PhysicalForm:       "Solid",
		SubjectSuggestion:  "A high-end professional garage setting",
		SubjectAppropriate: true,
		LiquidAppropriate:  true, // oils and fluids
		Props:              []string{"Carbon fiber textures", "Microfiber cloth", "Polished chrome"},
		Environment:        "Sleek modern garage, winding mountain road at dusk, asphalt textures",
		LightingDefault:    "Dramatic Side-light",
		CreativeDefault:    3,
		Behavior:           "Reflecting dramatic street lights or studio softboxes on metallic surfaces.",
	},
	"Baby & Kids Products": {
		PhysicalForm:       "Solid",
		SubjectSuggestion:  "A happy toddler or gentle parent hands",
		SubjectAppropriate: true,
		Props:              []string{"Soft cotton blanket", "Wooden building blocks", "Plush rug"},
		Environment:        "Bright airy nursery, colorful playroom, sun-filled living room",
		LightingDefault:    "High-Key Bright",
		CreativeDefault:    4,
		Behavior:           "Interacting safely and joyfully, emphasizing comfort and security.",
	},
	"Beauty & Personal Care": {
		PhysicalForm:       "Cream/Gel",
		SubjectSuggestion:  "A model with clear, healthy skin",
		SubjectAppropriate: true,
		LiquidAppropriate:  true,
		Props:              []string{"Rose petals", "Fresh water droplets", "Marble vanity tray"},
		Environment:        "Bright, airy spa bathroom, minimalist white vanity",
		LightingDefault:    "High-Key Bright",
		CreativeDefault:    5,
	},
	"Electronics & Technology": {
		PhysicalForm:       "Solid",
		SubjectSuggestion:  "A tech-savvy professional or gamer",
		SubjectAppropriate: true,
		Props:              []string{"Graphite desk mat", "Anodized aluminum", "Ambient LED strips"},
		Environment:        "Minimalist home office, futuristic neon-lit studio, dark glass surface",
		LightingDefault:    "Dramatic Side-light",
		CreativeDefault:    3,
	},
	"Food, Grocery & Beverages": {
		PhysicalForm:       "Liquid",
		SubjectSuggestion:  "A happy person enjoying a refreshing moment",
		SubjectAppropriate: true,
		LiquidAppropriate:  true,
		Props:              []string{"Fresh ingredients", "Rustic wooden table", "Ice cubes", "Linen napkin"},
		Environment:        "Sun-drenched kitchen, outdoor garden picnic, cozy urban cafe",
		LightingDefault:    "Golden Hour",
		CreativeDefault:    5,
	},
	"Garden, Outdoor & Patio": {
		PhysicalForm:       "Solid",
		SubjectSuggestion:  "Someone enjoying a peaceful outdoor moment",
		SubjectAppropriate: true,
		LiquidAppropriate:  true,
		Props:              []string{"Terracotta pots", "Gardening gloves", "Green foliage"},
		Environment:        "Lush backyard garden, sun-soaked stone patio, greenhouse",
		LightingDefault:    "Natural Daylight",
		CreativeDefault:    4,
	},
	"Handmade & Artisanal": {
		PhysicalForm:       "Solid",
		SubjectSuggestion:  "The artisan's skilled hands in frame",
		SubjectAppropriate: true,
		Props:              []string{"Raw wood shavings", "Woven hemp twine", "Pottery wheel"},
		Environment:        "Authentic artist's loft, rustic sunlit workshop, barn setting",
		LightingDefault:    "Natural Daylight",
		CreativeDefault:    5,
		Behavior:           "Caught in a moment of creation or thoughtful inspection.",
	},
	"Health, Household & Wellness": {
		PhysicalForm:       "Capsules/Tablets",
		SubjectSuggestion:  "A person reflecting health and vitality",
		SubjectAppropriate: true,
		Props:              []string{"Glass of water", "Fresh mint leaves", "White ceramic tray"},
		Environment:        "Clean modern bathroom, minimalist kitchen counter, yoga studio",
		LightingDefault:    "Natural Daylight",
		CreativeDefault:    3,
	},
	"Home, Kitchen & Dining": {
		PhysicalForm:       "Solid",
		SubjectSuggestion:  "A warm family gathering or professional chef",
		SubjectAppropriate: true,
		LiquidAppropriate:  true,
		Props:              []string{"Marble countertop", "Copper cookware", "Fresh herbs"},
		Environment:        "Luxury modern kitchen, elegant dining room, rustic breakfast nook",
		LightingDefault:    "Natural Daylight",
		CreativeDefault:    4,
	},
	"Industrial, Scientific & Hardware": {
		PhysicalForm:       "Solid",
		SubjectSuggestion:  "A professional in a clean tech environment",
		SubjectAppropriate: true,
		Props:              []string{"Technical blueprints", "Steel calipers", "Brushed metal surfaces"},
		Environment:        "Modern architecture studio, professional electronics lab, high-tech workbench",
		LightingDefault:    "Studio Softbox",
		CreativeDefault:    3,
	},
	"Luggage & Travel Gear": {
		PhysicalForm:       "Solid",
		SubjectSuggestion:  "A chic traveler in a stylish outfit",
		SubjectAppropriate: true,
		Props:              []string{"Passport", "Sunglasses", "Designer sneakers"},
		Environment:        "Luxury hotel lobby, scenic airport terminal, cobblestone European street",
		LightingDefault:    "Natural Daylight",
		CreativeDefault:    4,
		Behavior:           "Effortlessly moving through a beautiful travel destination.",
	},
	"Musical Instruments": {
		PhysicalForm:       "Solid",
		SubjectSuggestion:  "A passionate musician",
		SubjectAppropriate: true,
		Props:              []string{"Sheet music", "Leather guitar strap", "Vintage amplifier"},
		Environment:        "Professional recording studio, moody brick-walled stage, sunlit practice room",
		LightingDefault:    "Dramatic Side-light",
		CreativeDefault:    5,
	},
	"Office & Stationery": {
		PhysicalForm:       "Solid",
		SubjectSuggestion:  "A creative professional at work",
		SubjectAppropriate: true,
		Props:              []string{"Designer fountain pen", "Leather notebook", "Succulent plant"},
		Environment:        "Sleek minimalist white desk, organized creative studio, bright coworking space",
		LightingDefault:    "Natural Daylight",
		CreativeDefault:    3,
	},
	"Pet Supplies": {
		PhysicalForm:       "Solid",
		SubjectSuggestion:  "A happy, well-groomed dog or cat",
		SubjectAppropriate: true,
		Props:              []string{"Tennis ball", "Soft pet bed", "Park bench"},
		Environment:        "Vibrant city park, modern apartment with large windows",
		LightingDefault:    "Natural Daylight",
		CreativeDefault:    4,
	},
	"Sports & Fitness": {
		PhysicalForm:       "Solid",
		SubjectSuggestion:  "An athlete in high-performance gear",
		SubjectAppropriate: true,
		LiquidAppropriate:  true,
		PowderAppropriate:  true,
		Props:              []string{"Professional yoga mat", "Dumbbells", "Gym towel"},
		Environment:        "Modern high-end gym, urban running track, outdoor sports court",
		LightingDefault:    "Dramatic Side-light",
		CreativeDefault:    4,
	},
	"Tools & Home Improvement": {
		PhysicalForm:       "Solid",
		SubjectSuggestion:  "Hands engaged in a DIY project",
		SubjectAppropriate: true,
		PowderAppropriate:  true, // sawdust
		Props:              []string{"Measuring tape", "Spirit level", "Safety goggles"},
		Environment:        "Professional workshop, modern renovation site, wood deck",
		LightingDefault:    "Natural Daylight",
		CreativeDefault:    3,
	},
	"Toys & Games": {
		PhysicalForm:       "Solid",
		SubjectSuggestion:  "Kids playing together with excitement",
		SubjectAppropriate: true,
		Props:              []string{"Colorful floor mats", "Activity table", "Storage bins"},
		Environment:        "Vibrant playroom, sunny backyard, family living room",
		LightingDefault:    "High-Key Bright",
		CreativeDefault:    4,
	},
}

// intelligenceOverride replaces only the fields it sets; nil keeps the base.
type intelligenceOverride struct {
	SubjectSuggestion *string
	LiquidAppropriate *bool
	Props             []string
	Environment       *string
	LightingDefault   *string
	Behavior          *string
}

type keywordOverride struct {
	Keyword  string
	Override intelligenceOverride
}

// keywordOverrides is scanned in order and only the first match applies.
// Reordering changes the result for names such as "Iced Tea Bottle".
var keywordOverrides = []keywordOverride{
	{Keyword: "tea", Override: intelligenceOverride{
		Environment: ptr("Zen garden, mist-covered tea farm"),
		Props:       []string{"Tea leaves", "Ceramic cup", "Bamboo whisk"},
	}},
	{Keyword: "coffee", Override: intelligenceOverride{
		Environment: ptr("Rustic cozy cafe"),
		Props:       []string{"Roasted coffee beans", "Burlap sack", "Silver spoon"},
	}},
	{Keyword: "watch", Override: intelligenceOverride{
		SubjectSuggestion: ptr("A sophisticated person with the product visible on their wrist"),
		Props:             []string{"Luxury desk items", "Silk shirt sleeve", "Polished surfaces"},
		Behavior:          ptr("The watch is shown in a natural pose, catching a glint of light on the dial."),
	}},
	{Keyword: "bottle", Override: intelligenceOverride{
		LiquidAppropriate: ptr(true),
		Props:             []string{"Refreshing water droplets on the exterior", "Condensed mist", "Ice cubes in background"},
	}},
	{Keyword: "shoe", Override: intelligenceOverride{
		Environment: ptr("Clean urban sidewalk, high-end sneaker boutique"),
		Props:       []string{"Designer shoe box", "Premium tissue paper", "Shoe horn"},
	}},
	{Keyword: "electronic", Override: intelligenceOverride{
		Environment:     ptr("Sleek dark glass surface with blue ambient backlighting"),
		LightingDefault: ptr("Low-Key Moody"),
	}},
}

// Resolve returns the defaults bundle for a product. Unknown categories fall
// back to FallbackIntelligence; the first keyword found in the lowercased
// name is merged on top.
func Resolve(productName, category string) Intelligence {
	base, ok := categoryIntelligence[category]
	if !ok {
		base = FallbackIntelligence
	}
	base = base.clone()

	name := strings.ToLower(productName)
	for _, kw := range keywordOverrides {
		if strings.Contains(name, kw.Keyword) {
			return kw.Override.apply(base)
		}
	}
	return base
}

// MatchedKeyword reports which keyword override Resolve would apply, if any.
func MatchedKeyword(productName string) (string, bool) {
	name := strings.ToLower(productName)
	for _, kw := range keywordOverrides {
		if strings.Contains(name, kw.Keyword) {
			return kw.Keyword, true
		}
	}
	return "", false
}

// CategoryDefaults returns the table entry for a known category.
func CategoryDefaults(category string) (Intelligence, bool) {
	in, ok := categoryIntelligence[category]
	if !ok {
		return Intelligence{}, false
	}
	return in.clone(), true
}

func (o intelligenceOverride) apply(in Intelligence) Intelligence {
	if o.SubjectSuggestion != nil {
		in.SubjectSuggestion = *o.SubjectSuggestion
	}
	if o.LiquidAppropriate != nil {
		in.LiquidAppropriate = *o.LiquidAppropriate
	}
	if o.Props != nil {
		in.Props = cloneStrings(o.Props)
	}
	if o.Environment != nil {
		in.Environment = *o.Environment
	}
	if o.LightingDefault != nil {
		in.LightingDefault = *o.LightingDefault
	}
	if o.Behavior != nil {
		in.Behavior = *o.Behavior
	}
	return in
}

func (in Intelligence) clone() Intelligence {
	in.Props = cloneStrings(in.Props)
	return in
}

func ptr[T any](v T) *T { return &v }
