package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"prompt-studio/internal/studio"
)

type composeOptions struct {
	formFile string
	set      string
	asJSON   bool
	slot     int
}

func newComposeCmd(a *app) *cobra.Command {
	var o composeOptions

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Print the six prompts for one form",
		Example: `  promptgen compose -f serum.json
  promptgen compose --set '"Iced Tea Bottle" cat=food ar=9:16' --slot 1
  cat serum.json | promptgen compose -f - --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := readForm(cmd.InOrStdin(), o.formFile, o.set)
			if err != nil {
				return err
			}
			outputs, err := pickSlot(studio.Compose(form), o.slot)
			if err != nil {
				return err
			}
			a.logger.Debug("composed", "product", form.ProductName, "category", form.Category, "outputs", len(outputs))

			if o.asJSON {
				return writeJSON(cmd.OutOrStdout(), outputs)
			}
			return printOutputs(cmd.OutOrStdout(), outputs)
		},
	}
	cmd.Flags().StringVarP(&o.formFile, "form", "f", "", "form JSON file ('-' reads stdin; empty starts from defaults)")
	cmd.Flags().StringVar(&o.set, "set", "", `arguments applied on top of the form, e.g. 'name="Silk Scarf" cat=apparel'`)
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "print outputs as JSON")
	cmd.Flags().IntVar(&o.slot, "slot", 0, fmt.Sprintf("print only slot N (1-%d)", studio.SlotCount))
	return cmd
}

func printOutputs(w io.Writer, outputs []studio.PromptOutput) error {
	for i, o := range outputs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "=== %s %s (%s) ===\n%s\n", o.ID, o.Title, o.Purpose, o.FullPrompt); err != nil {
			return err
		}
	}
	return nil
}
