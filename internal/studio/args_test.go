package studio

import (
	"reflect"
	"testing"
)

func TestParseArgsQuotedName(t *testing.T) {
	f, err := ParseArgs(`name="Iced Tea Bottle" cat=food style=Luxury ar=9:16 props=off`, DefaultForm())
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if f.ProductName != "Iced Tea Bottle" {
		t.Fatalf("ProductName = %q", f.ProductName)
	}
	if f.Category != "Food, Grocery & Beverages" {
		t.Fatalf("Category = %q", f.Category)
	}
	if !f.HasVisualStyle("Luxury") {
		t.Fatalf("VisualStyles = %v", f.VisualStyles)
	}
	if f.AspectRatio != "9:16" {
		t.Fatalf("AspectRatio = %q", f.AspectRatio)
	}
	if f.PropsEnabled {
		t.Fatal("props=off ignored")
	}
}

func TestParseArgsBareWordsBecomeName(t *testing.T) {
	base := DefaultForm()
	base.ProductName = "Old Name"

	f, err := ParseArgs("Lavender Sleep Mist cat=beauty light=golden", base)
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if f.ProductName != "Lavender Sleep Mist" {
		t.Fatalf("ProductName = %q", f.ProductName)
	}
	if f.LightingStyle != "Golden Hour" {
		t.Fatalf("LightingStyle = %q", f.LightingStyle)
	}
}

func TestParseArgsNameAndBareWords(t *testing.T) {
	f, err := ParseArgs(`name=Chrono "Gift Box"`, DefaultForm())
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if f.ProductName != "Chrono Gift Box" {
		t.Fatalf("ProductName = %q", f.ProductName)
	}
}

func TestParseArgsCategoryForms(t *testing.T) {
	tests := map[string]string{
		"cat=sports":                          "Sports & Fitness",
		`category="Electronics & Technology"`: "Electronics & Technology",
		"cat=ELECTRONICS":                     "Electronics & Technology",
		`cat="Garden Gnomes"`:                 "Garden Gnomes",
	}
	for raw, want := range tests {
		f, err := ParseArgs(raw, DefaultForm())
		if err != nil {
			t.Fatalf("ParseArgs(%q): %v", raw, err)
		}
		if f.Category != want {
			t.Fatalf("ParseArgs(%q).Category = %q, want %q", raw, f.Category, want)
		}
	}
}

func TestParseArgsColor(t *testing.T) {
	f, err := ParseArgs("color=ff8800", DefaultForm())
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if f.PrimaryColor != "#FF8800" {
		t.Fatalf("PrimaryColor = %q", f.PrimaryColor)
	}
}

func TestParseArgsErrors(t *testing.T) {
	base := DefaultForm()
	for _, raw := range []string{
		`name="unterminated`,
		"color=purple",
		"ar=7:5",
		"style=baroque",
		"light=neon",
		"res=3K",
	} {
		got, err := ParseArgs(raw, base)
		if err == nil {
			t.Fatalf("ParseArgs(%q) succeeded", raw)
		}
		if !reflect.DeepEqual(got, base) {
			t.Fatalf("ParseArgs(%q) changed the form on error", raw)
		}
	}
}

func TestParseArgsEmptyKeepsForm(t *testing.T) {
	base := DefaultForm()
	base.ProductName = "Mug"
	f, err := ParseArgs("  ", base)
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if !reflect.DeepEqual(f, base) {
		t.Fatal("empty args changed the form")
	}
}

func TestParseArgsDoesNotAliasInput(t *testing.T) {
	base := DefaultForm()
	f, err := ParseArgs("style=Luxury", base)
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if base.HasVisualStyle("Luxury") {
		t.Fatal("input form modified")
	}
	if !f.HasVisualStyle("Luxury") {
		t.Fatal("style not toggled")
	}
}
