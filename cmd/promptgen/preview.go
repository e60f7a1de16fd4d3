package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"prompt-studio/internal/config"
	"prompt-studio/internal/httpclient"
	"prompt-studio/internal/preview"
	"prompt-studio/internal/providers"
	"prompt-studio/internal/studio"
)

type previewOptions struct {
	formFile string
	set      string
	slot     int
	out      string
}

func newPreviewCmd(a *app) *cobra.Command {
	var o previewOptions

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render one prompt with the configured image provider",
		Example: `  GEMINI_API_KEY=... promptgen preview -f serum.json --slot 2 -o serum-2.png
  IMAGE_PROVIDER=openai promptgen preview --set '"Trail Shoe" cat=sports' -o shoe.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.ValidatePreview(); err != nil {
				return err
			}

			form, err := readForm(cmd.InOrStdin(), o.formFile, o.set)
			if err != nil {
				return err
			}
			picked, err := pickSlot(studio.Compose(form), o.slot)
			if err != nil {
				return err
			}

			httpClient := httpclient.New(httpclient.Options{
				PreferIPv4: cfg.PreferIPv4,
				Timeout:    cfg.HTTPTimeout,
			})
			gen, err := providers.NewGenerator(cfg, httpClient, a.logger)
			if err != nil {
				return err
			}
			svc := preview.NewService(preview.Options{Generator: gen, MaxConcurrent: 1, Logger: a.logger})

			a.logger.Info("rendering preview", "provider", cfg.ImageProvider, "output", picked[0].ID)
			img, err := svc.Preview(cmd.Context(), "", form, picked[0])
			if err != nil {
				return err
			}

			if err := os.WriteFile(o.out, img.Data, 0o644); err != nil {
				return fmt.Errorf("write image: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s, %d bytes)\n", o.out, img.MimeType, len(img.Data))
			return err
		},
	}
	cmd.Flags().StringVarP(&o.formFile, "form", "f", "", "form JSON file ('-' reads stdin; empty starts from defaults)")
	cmd.Flags().StringVar(&o.set, "set", "", "arguments applied on top of the form")
	cmd.Flags().IntVar(&o.slot, "slot", 1, fmt.Sprintf("slot to render (1-%d)", studio.SlotCount))
	cmd.Flags().StringVarP(&o.out, "out", "o", "preview.png", "output image path")
	return cmd
}
