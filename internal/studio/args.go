package studio

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ParseArgs applies a command line such as
//
//	Iced Tea Bottle cat=food style=Luxury ar=9:16 props=off
//
// to form. Quoting keeps spaces inside values (name="Silver Pendant").
// Bare words and unrecognized keys become the product name, or are appended
// to it when name= is also given.
func ParseArgs(raw string, form ProductFormData) (ProductFormData, error) {
	out := form.Clone()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out, nil
	}

	tokens, err := shellquote.Split(raw)
	if err != nil {
		return form, fmt.Errorf("parse args: %w", err)
	}

	var (
		name  []string
		named bool
	)
	for _, tok := range tokens {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			name = append(name, tok)
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "name":
			out.ProductName = value
			named = true
		case "cat", "category":
			if c, ok := LookupCategory(value); ok {
				out.SetCategory(c)
			} else if value != "" {
				out.SetCategory(value)
			}
		case "style":
			if s, ok := LookupVisualStyle(value); ok {
				out.ToggleVisualStyle(s)
			} else {
				return form, fmt.Errorf("unknown visual style %q", value)
			}
		case "color", "colour":
			c, ok := normalizeHexColor(value)
			if !ok {
				return form, fmt.Errorf("invalid color %q", value)
			}
			out.PrimaryColor = c
		case "light", "lighting":
			l, ok := LookupLightingStyle(value)
			if !ok {
				return form, fmt.Errorf("unknown lighting style %q", value)
			}
			out.LightingStyle = l
		case "ar", "aspect":
			ar, ok := LookupAspectRatio(value)
			if !ok {
				return form, fmt.Errorf("unsupported aspect ratio %q", value)
			}
			out.AspectRatio = ar
		case "res", "resolution":
			r, ok := LookupResolution(value)
			if !ok {
				return form, fmt.Errorf("unsupported resolution %q", value)
			}
			out.Resolution = r
		case "mascot", "subject":
			out.MascotEnabled = parseSwitch(value, out.MascotEnabled)
		case "props":
			out.PropsEnabled = parseSwitch(value, out.PropsEnabled)
		default:
			name = append(name, tok)
		}
	}

	if len(name) > 0 {
		extra := strings.Join(name, " ")
		if named {
			out.ProductName = strings.TrimSpace(out.ProductName + " " + extra)
		} else {
			out.ProductName = extra
		}
	}
	return out, nil
}

func parseSwitch(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on", "use":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
