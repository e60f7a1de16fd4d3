package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"prompt-studio/internal/studio"
)

// readForm loads a form file ("-" reads in, "" starts from defaults), fills
// missing fields and applies set as /new style arguments on top.
func readForm(in io.Reader, path, set string) (studio.ProductFormData, error) {
	form := studio.DefaultForm()

	switch path {
	case "":
	case "-":
		form = studio.ProductFormData{}
		if err := json.NewDecoder(in).Decode(&form); err != nil {
			return studio.ProductFormData{}, fmt.Errorf("decode form from stdin: %w", err)
		}
	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return studio.ProductFormData{}, fmt.Errorf("read form: %w", err)
		}
		form = studio.ProductFormData{}
		if err := json.Unmarshal(raw, &form); err != nil {
			return studio.ProductFormData{}, fmt.Errorf("decode form %s: %w", path, err)
		}
	}
	form = form.Normalize()

	form, err := studio.ParseArgs(set, form)
	if err != nil {
		return studio.ProductFormData{}, err
	}
	if err := form.Validate(); err != nil {
		return studio.ProductFormData{}, err
	}
	return form, nil
}

// pickSlot returns all outputs for slot 0, otherwise only slot N.
func pickSlot(outputs []studio.PromptOutput, slot int) ([]studio.PromptOutput, error) {
	if slot == 0 {
		return outputs, nil
	}
	o, ok := studio.FindOutput(outputs, studio.OutputID(slot))
	if !ok {
		return nil, fmt.Errorf("slot must be between 1 and %d, got %d", studio.SlotCount, slot)
	}
	return []studio.PromptOutput{o}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
