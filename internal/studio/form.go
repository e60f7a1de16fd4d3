package studio

import (
	"errors"
	"strings"
)

var ErrEmptyProductName = errors.New("product name is required")

// ProductFormData is the complete wizard state. JSON names match the web
// form so a saved form file can be fed to any surface unchanged.
type ProductFormData struct {
	ProductName       string   `json:"productName"`
	Category          string   `json:"category"`
	ProductForm       string   `json:"productForm"`
	ContainerType     string   `json:"containerType"`
	Characteristics   []string `json:"characteristics"`
	PrimaryColor      string   `json:"primaryColor"`
	BrandPositioning  string   `json:"brandPositioning"`
	VisualStyles      []string `json:"visualStyles"`
	CreativeLevel     int      `json:"creativeLevel"`
	Platforms         []string `json:"platforms"`
	MascotEnabled     bool     `json:"mascotEnabled"`
	MascotStyle       string   `json:"mascotStyle"`
	MascotIntegration string   `json:"mascotIntegration"`
	LiquidEnabled     bool     `json:"liquidEnabled"`
	DripIntensity     string   `json:"dripIntensity"`
	PowderEnabled     bool     `json:"powderEnabled"`
	PowderIntensity   string   `json:"powderIntensity"`
	PropsEnabled      bool     `json:"propsEnabled"`
	PropQuantity      string   `json:"propQuantity"`
	Resolution        string   `json:"resolution"`
	AspectRatio       string   `json:"aspectRatio"`
	DOF               string   `json:"dof"`
	LightingStyle     string   `json:"lightingStyle"`
	LightTemp         string   `json:"lightTemp"`
	ShadowIntensity   int      `json:"shadowIntensity"`
	CameraAngle       string   `json:"cameraAngle"`
	FocalLength       string   `json:"focalLength"`
	Composition       string   `json:"composition"`
	ColorPalette      []string `json:"colorPalette"`
	Background        string   `json:"background"`
	Moods             []string `json:"moods"`
	ImageRef          string   `json:"imageRef,omitempty"` // data URL
}

// DefaultForm is the state a new project starts from.
func DefaultForm() ProductFormData {
	f := ProductFormData{
		ProductName:       "",
		Category:          "Apparel, Shoes & Jewelry",
		ProductForm:       "Solid",
		ContainerType:     "Glass jar",
		Characteristics:   []string{},
		PrimaryColor:      "#8B5CF6",
		BrandPositioning:  "Premium",
		VisualStyles:      []string{"Modern", "Aesthetic"},
		CreativeLevel:     5,
		Platforms:         []string{"Instagram Feed"},
		MascotEnabled:     true,
		MascotStyle:       "Realistic 3D",
		MascotIntegration: "Beside product",
		LiquidEnabled:     true,
		DripIntensity:     "Medium",
		PowderEnabled:     false,
		PowderIntensity:   "Subtle mist",
		PropsEnabled:      true,
		PropQuantity:      "Minimal",
		Resolution:        "8K",
		AspectRatio:       "4:5",
		DOF:               "Medium",
		LightingStyle:     "Natural Daylight",
		LightTemp:         "Neutral White (4000K-5000K)",
		ShadowIntensity:   5,
		CameraAngle:       "Straight-on (0°)",
		FocalLength:       "Standard (50mm)",
		Composition:       "Rule of thirds",
		ColorPalette:      []string{"Pastels"},
		Background:        "Natural Outdoor",
		Moods:             []string{"Natural & Organic"},
	}
	f.SetCategory(f.Category)
	return f
}

// SetCategory switches category and refreshes the fields the category table
// drives. Categories without an entry keep the current values.
func (f *ProductFormData) SetCategory(category string) {
	f.Category = category
	in, ok := categoryIntelligence[category]
	if !ok {
		return
	}
	f.ProductForm = in.PhysicalForm
	f.CreativeLevel = in.CreativeDefault
	f.LightingStyle = in.LightingDefault
	f.LiquidEnabled = in.LiquidAppropriate
	f.PowderEnabled = in.PowderAppropriate
}

// Validate reports ErrEmptyProductName when the form has no product name.
func (f ProductFormData) Validate() error {
	if strings.TrimSpace(f.ProductName) == "" {
		return ErrEmptyProductName
	}
	return nil
}

// Normalize fills zero-valued fields from DefaultForm so partially specified
// inputs (CLI form files, JSON bodies) still form a complete record.
func (f ProductFormData) Normalize() ProductFormData {
	d := DefaultForm()
	if f.Category == "" {
		f.Category = d.Category
	}
	d.SetCategory(f.Category)
	fill := func(dst *string, def string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = def
		}
	}
	fill(&f.ProductForm, d.ProductForm)
	fill(&f.ContainerType, d.ContainerType)
	fill(&f.PrimaryColor, d.PrimaryColor)
	fill(&f.BrandPositioning, d.BrandPositioning)
	fill(&f.MascotStyle, d.MascotStyle)
	fill(&f.MascotIntegration, d.MascotIntegration)
	fill(&f.DripIntensity, d.DripIntensity)
	fill(&f.PowderIntensity, d.PowderIntensity)
	fill(&f.PropQuantity, d.PropQuantity)
	fill(&f.Resolution, d.Resolution)
	fill(&f.AspectRatio, d.AspectRatio)
	fill(&f.DOF, d.DOF)
	fill(&f.LightingStyle, d.LightingStyle)
	fill(&f.LightTemp, d.LightTemp)
	fill(&f.CameraAngle, d.CameraAngle)
	fill(&f.FocalLength, d.FocalLength)
	fill(&f.Composition, d.Composition)
	fill(&f.Background, d.Background)
	if f.Characteristics == nil {
		f.Characteristics = []string{}
	}
	if f.VisualStyles == nil {
		f.VisualStyles = []string{}
	}
	if f.Platforms == nil {
		f.Platforms = []string{}
	}
	if f.ColorPalette == nil {
		f.ColorPalette = []string{}
	}
	if f.Moods == nil {
		f.Moods = []string{}
	}
	return f
}

// Clone returns a copy that shares no slices with f.
func (f ProductFormData) Clone() ProductFormData {
	f.Characteristics = cloneStrings(f.Characteristics)
	f.VisualStyles = cloneStrings(f.VisualStyles)
	f.Platforms = cloneStrings(f.Platforms)
	f.ColorPalette = cloneStrings(f.ColorPalette)
	f.Moods = cloneStrings(f.Moods)
	return f
}

func (f *ProductFormData) ToggleVisualStyle(style string) { f.VisualStyles = toggle(f.VisualStyles, style) }
func (f *ProductFormData) TogglePlatform(p string)        { f.Platforms = toggle(f.Platforms, p) }
func (f *ProductFormData) ToggleMood(m string)            { f.Moods = toggle(f.Moods, m) }
func (f *ProductFormData) TogglePalette(p string)         { f.ColorPalette = toggle(f.ColorPalette, p) }

func (f *ProductFormData) ToggleCharacteristic(c string) {
	f.Characteristics = toggle(f.Characteristics, c)
}

func toggle(list []string, item string) []string {
	out := make([]string, 0, len(list)+1)
	found := false
	for _, v := range list {
		if v == item {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, item)
	}
	return out
}

// HasVisualStyle reports whether style is currently selected.
func (f ProductFormData) HasVisualStyle(style string) bool {
	for _, s := range f.VisualStyles {
		if s == style {
			return true
		}
	}
	return false
}
