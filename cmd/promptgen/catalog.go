package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"prompt-studio/internal/studio"
)

func newCatalogCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List categories and form options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), studio.AllOptions())
			}
			return printCatalog(cmd.OutOrStdout(), studio.AllOptions())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print every option list as JSON")
	return cmd
}

func printCatalog(w io.Writer, c studio.Catalog) error {
	var b strings.Builder
	b.WriteString("Categories (cat=<key>):\n")
	for _, cat := range c.Categories {
		mark := " "
		if studio.IsLifestyle(cat.Name) {
			mark = "*"
		}
		fmt.Fprintf(&b, "  %s %-12s %s\n", mark, cat.Key, cat.Name)
	}
	b.WriteString("  (* lifestyle slot set)\n\n")

	lists := []struct {
		title  string
		values []string
	}{
		{"Visual styles (style=)", c.VisualStyles},
		{"Lighting (light=)", c.LightingStyles},
		{"Aspect ratios (ar=)", c.AspectRatios},
		{"Resolutions (res=)", c.Resolutions},
	}
	for _, l := range lists {
		fmt.Fprintf(&b, "%s:\n  %s\n", l.title, strings.Join(l.values, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
