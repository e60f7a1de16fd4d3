package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"prompt-studio/internal/studio"
)

type batchResult struct {
	Form    studio.ProductFormData `json:"form"`
	Outputs []studio.PromptOutput  `json:"outputs"`
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		outDir      string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch FORM.json...",
		Short: "Compose many forms and write <name>.prompts.json for each",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			names := outputNames(args)

			var written atomic.Int64
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(concurrency, 1))
			for i, path := range args {
				path := path
				dst := filepath.Join(outDir, names[i])
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					if err := composeFile(path, dst); err != nil {
						return err
					}
					written.Add(1)
					a.logger.Info("batch item written", "form", path, "out", dst)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %d prompt files to %s\n", written.Load(), outDir)
			return err
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 4, "forms composed at once")
	return cmd
}

// composeFile composes one form file and writes the result to dst.
func composeFile(path, dst string) error {
	if path == "-" {
		return fmt.Errorf("batch reads files only, not stdin")
	}
	form, err := readForm(nil, path, "")
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := writeJSON(f, batchResult{Form: form, Outputs: studio.Compose(form)}); err != nil {
		f.Close()
		return fmt.Errorf("%s: write: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: close: %w", path, err)
	}
	return nil
}

// outputNames gives every input its own file name. Inputs that share a base
// name get a -2, -3, ... suffix in argument order.
func outputNames(paths []string) []string {
	names := make([]string, len(paths))
	used := make(map[string]bool, len(paths))
	for i, path := range paths {
		name := outputName(path)
		stem := strings.TrimSuffix(name, ".prompts.json")
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s-%d.prompts.json", stem, n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}

func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".prompts.json"
}
