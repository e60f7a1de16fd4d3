package main

import (
	"github.com/spf13/cobra"

	"prompt-studio/internal/studio"
)

type resolveResult struct {
	Category     string              `json:"category"`
	Known        bool                `json:"known"`
	Keyword      string              `json:"keyword,omitempty"`
	Lifestyle    bool                `json:"lifestyle"`
	Intelligence studio.Intelligence `json:"intelligence"`
}

func newResolveCmd(a *app) *cobra.Command {
	var name, category string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show the content defaults for a product name and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), resolve(name, category))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&category, "category", "", "category label or short key (beauty, food, ...)")
	return cmd
}

func resolve(name, category string) resolveResult {
	if c, ok := studio.LookupCategory(category); ok {
		category = c
	}
	keyword, _ := studio.MatchedKeyword(name)
	return resolveResult{
		Category:     category,
		Known:        studio.IsKnownCategory(category),
		Keyword:      keyword,
		Lifestyle:    studio.IsLifestyle(category),
		Intelligence: studio.Resolve(name, category),
	}
}
