package studio

import (
	"fmt"
	"strconv"
	"strings"
)

type NamedOption struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

const CategoryCustom = "Other (custom)"

var categories = []NamedOption{
	{Key: "apparel", Name: "Apparel, Shoes & Jewelry"},
	{Key: "automotive", Name: "Automotive & Parts"},
	{Key: "baby", Name: "Baby & Kids Products"},
	{Key: "beauty", Name: "Beauty & Personal Care"},
	{Key: "electronics", Name: "Electronics & Technology"},
	{Key: "food", Name: "Food, Grocery & Beverages"},
	{Key: "garden", Name: "Garden, Outdoor & Patio"},
	{Key: "handmade", Name: "Handmade & Artisanal"},
	{Key: "health", Name: "Health, Household & Wellness"},
	{Key: "home", Name: "Home, Kitchen & Dining"},
	{Key: "industrial", Name: "Industrial, Scientific & Hardware"},
	{Key: "luggage", Name: "Luggage & Travel Gear"},
	{Key: "music", Name: "Musical Instruments"},
	{Key: "office", Name: "Office & Stationery"},
	{Key: "pet", Name: "Pet Supplies"},
	{Key: "sports", Name: "Sports & Fitness"},
	{Key: "tools", Name: "Tools & Home Improvement"},
	{Key: "toys", Name: "Toys & Games"},
	{Key: "other", Name: CategoryCustom},
}

var lifestyleCategories = map[string]struct{}{
	"Apparel, Shoes & Jewelry":  {},
	"Automotive & Parts":        {},
	"Baby & Kids Products":      {},
	"Food, Grocery & Beverages": {},
	"Garden, Outdoor & Patio":   {},
	"Luggage & Travel Gear":     {},
	"Musical Instruments":       {},
	"Pet Supplies":              {},
	"Sports & Fitness":          {},
	"Toys & Games":              {},
}

var (
	visualStyles = []string{
		"Luxury", "Premium", "Minimalist", "Modern", "Aesthetic",
		"Rustic", "Vibrant", "Industrial", "Vintage", "Futuristic", "Athletic/Sporty",
	}
	productForms = []string{
		"Liquid", "Cream/Gel", "Powder", "Capsules/Tablets", "Solid", "Oil", "Spray", "Paste",
	}
	containers = []string{
		"Glass jar", "Glass bottle", "Plastic bottle", "Amber glass", "Tin/Metal",
		"Cardboard box", "Pouch/Sachet", "Tube", "Pump bottle", "Dropper bottle", "Spray bottle", "Stick/Balm",
	}
	positioning = []string{
		"Ultra-Luxury", "Premium", "Mid-Market D2C",
		"Artisanal/Handmade", "Organic/Natural", "Clinical/Medical", "Budget/Value", "Fun/Playful",
	}
	platforms = []string{
		"Amazon Main Image", "Amazon A+ Content", "Shopify/Website Hero Banner",
		"Instagram Feed", "Instagram Stories/Reels", "Facebook/Meta Ads",
		"Google Shopping",
	}
	resolutions  = []string{"4K", "6K", "8K", "12K"}
	aspectRatios = []string{"1:1", "4:5", "9:16", "16:9", "3:4", "2:3"}
	dofOptions   = []string{"Shallow", "Medium", "Deep", "Auto"}

	characteristics = []string{
		"Transparent/see-through", "Opaque/solid color", "Has screw cap/lid",
		"Has pump dispenser", "Has dropper", "Has spray mechanism",
		"Has label wrap (full coverage)", "Has minimalist label",
	}
	lightingStyles = []string{
		"Natural Daylight", "Golden Hour", "Studio Softbox",
		"Dramatic Side-light", "Backlit/Rim Light", "Flat Even Light",
		"High-Key Bright", "Low-Key Moody", "Mixed",
	}
	lightTemps = []string{
		"Warm (2700K-3500K)", "Neutral White (4000K-5000K)", "Cool Daylight (5500K-6500K)", "Match Product",
	}
	cameraAngles = []string{
		"Straight-on (0°)", "Slight high angle (15-30° down)",
		"Low angle hero (15-30° up)", "45° angle",
		"Bird's eye (90° top-down)", "Eye-level",
	}
	focalLengths = []string{
		"Wide angle (24-35mm)", "Standard (50mm)", "Portrait (85mm)", "Macro Close-up", "Auto",
	}
	compositions = []string{
		"Centered symmetrical", "Rule of thirds", "Minimal negative space", "Tight crop", "Environmental context",
	}
	palettes = []string{
		"Earth Tones", "Pastels", "Vibrant", "Monochrome", "Jewel Tones", "Neutral", "Clinical White", "Luxury Dark",
	}
	backgrounds = []string{
		"Pure White (RGB 255,255,255)", "Off-White/Cream", "Solid Color", "Gradient",
		"Natural Outdoor", "Wood Texture", "Marble/Stone", "Fabric/Linen",
		"Kitchen/Home Setting", "Abstract/Artistic", "Transparent/Isolated",
	}
	moods = []string{
		"Trust & Reliability", "Luxury & Sophistication", "Energy & Vitality",
		"Calm & Wellness", "Fresh & Clean", "Warm & Cozy",
		"Clinical & Professional", "Playful & Fun", "Natural & Organic",
	}
)

// Catalog is the full set of selectable form options, in display order.
type Catalog struct {
	Categories      []NamedOption `json:"categories"`
	VisualStyles    []string      `json:"visualStyles"`
	ProductForms    []string      `json:"productForms"`
	Containers      []string      `json:"containers"`
	Positioning     []string      `json:"positioning"`
	Platforms       []string      `json:"platforms"`
	Resolutions     []string      `json:"resolutions"`
	AspectRatios    []string      `json:"aspectRatios"`
	DepthOfField    []string      `json:"dof"`
	Characteristics []string      `json:"characteristics"`
	LightingStyles  []string      `json:"lightingStyles"`
	LightTemps      []string      `json:"lightTemps"`
	CameraAngles    []string      `json:"cameraAngles"`
	FocalLengths    []string      `json:"focalLengths"`
	Compositions    []string      `json:"compositions"`
	Palettes        []string      `json:"palettes"`
	Backgrounds     []string      `json:"backgrounds"`
	Moods           []string      `json:"moods"`
}

func AllOptions() Catalog {
	return Catalog{
		Categories:      Categories(),
		VisualStyles:    VisualStyles(),
		ProductForms:    cloneStrings(productForms),
		Containers:      cloneStrings(containers),
		Positioning:     cloneStrings(positioning),
		Platforms:       cloneStrings(platforms),
		Resolutions:     cloneStrings(resolutions),
		AspectRatios:    AspectRatios(),
		DepthOfField:    cloneStrings(dofOptions),
		Characteristics: cloneStrings(characteristics),
		LightingStyles:  LightingStyles(),
		LightTemps:      cloneStrings(lightTemps),
		CameraAngles:    cloneStrings(cameraAngles),
		FocalLengths:    cloneStrings(focalLengths),
		Compositions:    cloneStrings(compositions),
		Palettes:        cloneStrings(palettes),
		Backgrounds:     cloneStrings(backgrounds),
		Moods:           cloneStrings(moods),
	}
}

func Categories() []NamedOption {
	return append([]NamedOption(nil), categories...)
}

func VisualStyles() []string   { return cloneStrings(visualStyles) }
func LightingStyles() []string { return cloneStrings(lightingStyles) }
func AspectRatios() []string   { return cloneStrings(aspectRatios) }

// IsKnownCategory reports whether c is one of the categories with a defaults
// entry. "Other (custom)" is selectable but has none.
func IsKnownCategory(c string) bool {
	_, ok := categoryIntelligence[c]
	return ok
}

func IsLifestyle(c string) bool {
	_, ok := lifestyleCategories[c]
	return ok
}

// LookupCategory matches a full label or its short key, case-insensitively.
func LookupCategory(value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", false
	}
	for _, c := range categories {
		if v == c.Key || v == strings.ToLower(c.Name) {
			return c.Name, true
		}
	}
	return "", false
}

func LookupVisualStyle(value string) (string, bool)   { return lookupOption(visualStyles, value) }
func LookupLightingStyle(value string) (string, bool) { return lookupOption(lightingStyles, value) }
func LookupResolution(value string) (string, bool)    { return lookupOption(resolutions, value) }

func LookupAspectRatio(value string) (string, bool) {
	norm := normalizeAspectRatio(value)
	if norm == "" {
		return "", false
	}
	return lookupOption(aspectRatios, norm)
}

func lookupOption(list []string, value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", false
	}
	for _, opt := range list {
		lower := strings.ToLower(opt)
		if v == lower {
			return opt, true
		}
		// "athletic" for "Athletic/Sporty", "natural" for "Natural Daylight"
		if first, _, ok := strings.Cut(lower, "/"); ok && v == first {
			return opt, true
		}
		if first, _, ok := strings.Cut(lower, " "); ok && v == first {
			return opt, true
		}
	}
	return "", false
}

func normalizeAspectRatio(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return ""
	}
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return ""
	}
	a, errA := strconv.Atoi(strings.TrimSpace(parts[0]))
	b, errB := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errA != nil || errB != nil || a <= 0 || b <= 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// normalizeHexColor accepts "#RGB", "#RRGGBB" and the same without '#'.
func normalizeHexColor(value string) (string, bool) {
	v := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(v) != 3 && len(v) != 6 {
		return "", false
	}
	for _, r := range v {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "", false
		}
	}
	return "#" + strings.ToUpper(v), true
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
