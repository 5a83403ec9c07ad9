package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wabrowse/wabrowse/internal/browser"
	"github.com/wabrowse/wabrowse/internal/config"
	"github.com/wabrowse/wabrowse/internal/convert"
	"github.com/wabrowse/wabrowse/internal/index"
)

func openCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "open <chatKey>",
		Short: "Open a conversation's rendered HTML in the browser",
		Long: `Open looks up the conversation's source archive, converts it if no
rendered page exists yet, and opens chat.html in the default browser.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger, cleanup := config.SetupLogger(cfg.LogFile, config.ParseLevel(cfg.LogLevel))
			defer cleanup()

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			conv, err := db.GetConversationByKey(args[0])
			if err != nil {
				return fmt.Errorf("get conversation: %w", err)
			}
			if conv == nil {
				return fmt.Errorf("conversation not found: %s (run 'wabrowse index' first)", args[0])
			}

			base := filepath.Base(conv.ArchivePath)
			base = strings.TrimSuffix(base, filepath.Ext(base))
			outDir := filepath.Join(cfg.OutputRoot, base)
			htmlPath := filepath.Join(outDir, "chat.html")

			if _, err := os.Stat(htmlPath); force || os.IsNotExist(err) {
				stats, err := convert.Run(conv.ArchivePath, outDir, convert.Options{
					Title:              conv.Title,
					DefaultPerspective: cfg.DefaultPerspective,
					MediaDir:           cfg.MediaDir,
				}, logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "Wrote %s (%s)\n", stats.OutputPath, stats)
			}

			return browser.OpenFile(htmlPath)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-convert even if chat.html already exists")

	return cmd
}
