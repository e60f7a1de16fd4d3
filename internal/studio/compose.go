package studio

import (
	"fmt"
	"strconv"
	"strings"
)

// SlotCount is the number of directions every composition produces.
const SlotCount = 6

// Slot is one fixed generation direction.
type Slot struct {
	ID          int
	Title       string
	Purpose     string
	Description string
}

// Sections holds the named parts of a prompt, declared in output order.
type Sections struct {
	Header     string `json:"header"`
	Scene      string `json:"scene"`
	Placement  string `json:"placement"`
	Supporting string `json:"supporting"`
	Dynamic    string `json:"dynamic"`
	Lighting   string `json:"lighting"`
	Camera     string `json:"camera"`
	Color      string `json:"color"`
	Tech       string `json:"tech"`
	Quality    string `json:"quality"`
	Negative   string `json:"negative"`
}

// SectionNames lists section keys in the order FullPrompt joins them.
var SectionNames = []string{
	"header", "scene", "placement", "supporting", "dynamic",
	"lighting", "camera", "color", "tech", "quality", "negative",
}

// Values lists the sections in prompt order.
func (s Sections) Values() []string {
	return []string{
		s.Header, s.Scene, s.Placement, s.Supporting, s.Dynamic,
		s.Lighting, s.Camera, s.Color, s.Tech, s.Quality, s.Negative,
	}
}

// PromptOutput is one generated direction.
type PromptOutput struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Purpose     string   `json:"purpose"`
	Description string   `json:"description"`
	FullPrompt  string   `json:"fullPrompt"`
	Sections    Sections `json:"sections"`
}

var lifestyleSlots = [SlotCount]Slot{
	{ID: 1, Title: "In-Action Lifestyle Hero", Purpose: "Marketing Banner", Description: "Active use showing the product in its intended environment."},
	{ID: 2, Title: "Close-up Texture & Build", Purpose: "Product Quality", Description: "Focusing on craftsmanship and durability."},
	{ID: 3, Title: "Environmental Story", Purpose: "Social Presence", Description: "A wide cinematic shot placing the product in a trendy location."},
	{ID: 4, Title: "The Human Connection", Purpose: "UGC / Trust", Description: "Interaction showing scale, installation, or texture."},
	{ID: 5, Title: "Artistic Flat-lay", Purpose: "Catalog Aesthetic", Description: "Clean, arranged with matching accessories."},
	{ID: 6, Title: "Main Listing Standard", Purpose: "Amazon/Shopify Main", Description: "Pure white background, conversion-optimized."},
}

var studioSlots = [SlotCount]Slot{
	{ID: 1, Title: "Cinematic Storytelling", Purpose: "Brand Banner", Description: "Organic environment with lush textures."},
	{ID: 2, Title: "Floating Power Shot", Purpose: "Product Launch", Description: "Levitating against a dynamic sky."},
	{ID: 3, Title: "Luxury Editorial", Purpose: "Editorial Ads", Description: "Minimalist studio with infinity curves."},
	{ID: 4, Title: "Candid Lifestyle", Purpose: "UGC Content", Description: "Hand-held authentic sunny moment."},
	{ID: 5, Title: "Cozy Artisanal", Purpose: "Handmade Story", Description: "Warm rustic indoor textures."},
	{ID: 6, Title: "Bright Commercial", Purpose: "E-com Listing", Description: "Conversion-optimized studio shot."},
}

const (
	listingSlotID = 6

	listingScene    = "Background: Pure White (RGB 255,255,255). No shadows except for a natural drop shadow below the product."
	listingLighting = "Lighting: Neutral 5500K studio light."

	dynamicText  = "Subtle movement or sharp focus to emphasize quality."
	techText     = "8K Resolution, photorealistic render."
	qualityText  = "Quality: Ultra-detailed textures, realistic shadows, high-end commercial finish."
	negativeBase = "Negative: No low quality, no text overlays, no distortion, no watermarks."

	emptySupporting = "Focus purely on the main product asset."
	defaultAction   = "Interacting naturally with the product."
)

// Slots returns the slot table used for a category.
func Slots(category string) []Slot {
	if IsLifestyle(category) {
		return append([]Slot(nil), lifestyleSlots[:]...)
	}
	return append([]Slot(nil), studioSlots[:]...)
}

// Compose expands a form into exactly SlotCount prompts, ordered p-1..p-6.
// It does not validate; callers reject empty product names first.
func Compose(form ProductFormData) []PromptOutput {
	intel := Resolve(form.ProductName, form.Category)
	lifestyle := IsLifestyle(form.Category)

	slots := studioSlots
	if lifestyle {
		slots = lifestyleSlots
	}

	out := make([]PromptOutput, 0, SlotCount)
	for _, s := range slots {
		out = append(out, composeSlot(form, intel, s, lifestyle))
	}
	return out
}

// FindOutput looks an output up by its "p-N" id.
func FindOutput(outputs []PromptOutput, id string) (PromptOutput, bool) {
	for _, o := range outputs {
		if o.ID == id {
			return o, true
		}
	}
	return PromptOutput{}, false
}

// OutputID maps a slot number to its output id, p-1 through p-6.
func OutputID(slotID int) string {
	return "p-" + strconv.Itoa(slotID)
}

func composeSlot(form ProductFormData, intel Intelligence, slot Slot, lifestyle bool) PromptOutput {
	look := "Professional e-commerce aesthetic."
	if len(form.VisualStyles) > 0 {
		look = strings.Join(form.VisualStyles, ", ") + " visual aesthetic."
	}
	accents := fmt.Sprintf("The scene is illuminated with subtle accent lighting in %s, creating a branded atmosphere.", form.PrimaryColor)

	lighting := fmt.Sprintf("Lighting: %s with %s.", form.LightingStyle, form.LightTemp)
	if slot.ID == listingSlotID {
		lighting = listingLighting
	}

	sections := Sections{
		Header:     fmt.Sprintf("DIRECTION: %s\nUSE CASE: %s", slot.Title, slot.Purpose),
		Scene:      fmt.Sprintf("%s The overall look is %s %s", sceneText(slot.ID, form, intel, lifestyle), look, accents),
		Placement:  fmt.Sprintf("MANDATORY: Use @img1 exactly as uploaded. Focus on the %s. Do not alter branding, text, logo, or color.", form.ProductName),
		Supporting: supportingText(slot.ID, form, intel),
		Dynamic:    dynamicText,
		Lighting:   lighting,
		Camera:     fmt.Sprintf("Camera: %s, Angle: %s, DOF: %s.", form.FocalLength, form.CameraAngle, form.DOF),
		Color:      fmt.Sprintf("Color Palette: %s with brand accents of %s.", strings.Join(form.ColorPalette, ", "), form.PrimaryColor),
		// Always 8K: form.Resolution is not consulted here.
		Tech:     techText,
		Quality:  qualityText,
		Negative: negativeText(form.ProductName),
	}

	return PromptOutput{
		ID:          OutputID(slot.ID),
		Title:       slot.Title,
		Purpose:     slot.Purpose,
		Description: slot.Description,
		FullPrompt:  strings.Join(sections.Values(), "\n\n"),
		Sections:    sections,
	}
}

func sceneText(slotID int, form ProductFormData, intel Intelligence, lifestyle bool) string {
	if slotID == listingSlotID {
		return listingScene
	}
	if lifestyle {
		switch slotID {
		case 1:
			return fmt.Sprintf("Setting: A fashionable %s. The model is seen from a half-body or waist-up perspective to show the product in a real-world context.", intel.Environment)
		case 2:
			return fmt.Sprintf("Setting: Macro focus close-up to see the texture of the %s. Background is blurred %s.", form.ProductName, intel.Environment)
		case 3:
			return fmt.Sprintf("Setting: A wide environmental shot in a chic %s. The model is seen in profile or from a dramatic distance to emphasize the lifestyle setting.", intel.Environment)
		case 5:
			style := "Modern"
			if len(form.VisualStyles) > 0 && form.VisualStyles[0] != "" {
				style = form.VisualStyles[0]
			}
			return fmt.Sprintf("Setting: A minimalist flat-lay on a premium surface matching the %s style.", style)
		}
	}
	return fmt.Sprintf("Setting: %s.", intel.Environment)
}

func supportingText(slotID int, form ProductFormData, intel Intelligence) string {
	name := strings.ToLower(form.ProductName)
	var parts []string

	if form.MascotEnabled && intel.SubjectSuggestion != "" {
		subject := intel.SubjectSuggestion
		if slotID == 1 || slotID == 3 {
			if special, ok := heroSubject(name); ok {
				subject = special
			}
		}
		action := intel.Behavior
		if action == "" {
			action = defaultAction
		}
		parts = append(parts, fmt.Sprintf("Subject: %s. Action: %s", subject, action))
	}

	if form.PropsEnabled && len(intel.Props) > 0 {
		parts = append(parts, fmt.Sprintf("Props: %s.", strings.Join(intel.Props, ", ")))
	}

	if slotID == 4 {
		parts = append(parts, fmt.Sprintf("Human Interaction: %s.", humanInteraction(name, form.Category)))
	}

	if len(parts) == 0 {
		return emptySupporting
	}
	return strings.Join(parts, " ")
}

// heroSubject replaces the generic subject on hero and environmental shots.
func heroSubject(name string) (string, bool) {
	switch {
	case strings.Contains(name, "watch"):
		return "A stylish person shown from the waist up, wearing the watch naturally as part of a high-end designer outfit", true
	case strings.Contains(name, "bottle"):
		return "An active person in stylish athletic wear, drinking from the bottle or carrying it refreshing after a vigorous workout", true
	case isElectronicsDevice(name):
		return "A modern creative professional using the device in a productive, sleek environment", true
	}
	return "", false
}

func humanInteraction(name, category string) string {
	switch {
	case isHardwareCategory(category):
		return "Hands professionally installing or adjusting the product with a technical tool"
	case strings.Contains(name, "pendant") || strings.Contains(name, "necklace"):
		return "Model adjusting the piece near their neckline while looking into a soft-lit luxury mirror"
	case strings.Contains(name, "bottle"):
		return "A person tilted back slightly, drinking water from the bottle with visible refreshing droplets on the exterior"
	case strings.Contains(name, "phone") || strings.Contains(name, "tablet"):
		return "Hands holding the device, showcasing the screen and build quality against a modern background"
	case strings.Contains(name, "shoe"):
		return "A foot stepping onto a clean urban surface, showing the shoe's flex and sole design"
	}
	return "A human interaction showing the scale and usage of the product"
}

func negativeText(productName string) string {
	name := strings.ToLower(productName)
	var extra string
	switch {
	case strings.Contains(name, "pendant") || strings.Contains(name, "necklace"):
		extra = "No watches, no cufflinks, no masculine items. Focus purely on the pendant/necklace and the model's neckline."
	case strings.Contains(name, "watch"):
		extra = "No other jewelry like necklaces or rings unless requested. Focus purely on the watch and high-end apparel textures."
	case strings.Contains(name, "bottle"):
		extra = "No food items, no messy backgrounds, no plastic glare. Focus on the refreshing water droplets and sleek bottle shape."
	}
	if extra == "" {
		return negativeBase
	}
	return negativeBase + " " + extra
}

func isElectronicsDevice(name string) bool {
	return strings.Contains(name, "phone") || strings.Contains(name, "laptop") || strings.Contains(name, "earbuds")
}

func isHardwareCategory(category string) bool {
	return strings.Contains(category, "Industrial") ||
		strings.Contains(category, "Tools") ||
		strings.Contains(category, "Improvement")
}
