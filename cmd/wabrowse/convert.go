package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wabrowse/wabrowse/internal/config"
	"github.com/wabrowse/wabrowse/internal/convert"
)

func convertCmd() *cobra.Command {
	var outDir, title, perspective string

	cmd := &cobra.Command{
		Use:   "convert <export.zip>",
		Short: "Convert a WhatsApp export zip into a filterable HTML page",
		Long: `Convert parses the transcript inside an export zip, renders it as a
self-contained chat.html with embedded filter controls, and extracts the
media files next to it. Output goes to --out, or to
<output_root>/<archive-name>/ from the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger, cleanup := config.SetupLogger(cfg.LogFile, config.ParseLevel(cfg.LogLevel))
			defer cleanup()

			archivePath := args[0]
			if outDir == "" {
				base := filepath.Base(archivePath)
				base = strings.TrimSuffix(base, filepath.Ext(base))
				outDir = filepath.Join(cfg.OutputRoot, base)
			}
			if perspective == "" {
				perspective = cfg.DefaultPerspective
			}

			stats, err := convert.Run(archivePath, outDir, convert.Options{
				Title:              title,
				DefaultPerspective: perspective,
				MediaDir:           cfg.MediaDir,
			}, logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Wrote %s (%s)\n", stats.OutputPath, stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: <output_root>/<archive-name>)")
	cmd.Flags().StringVar(&title, "title", "", "Page title (default: archive name)")
	cmd.Flags().StringVar(&perspective, "perspective", "", "Participant whose messages render as sent")

	return cmd
}
