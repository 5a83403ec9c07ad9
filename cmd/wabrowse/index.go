package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wabrowse/wabrowse/internal/config"
	"github.com/wabrowse/wabrowse/internal/index"
	"github.com/wabrowse/wabrowse/internal/scan"
)

func indexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [export.zip...]",
		Short: "Index export archives into the search database",
		Long: `Index parses the given export zips and stores their messages in the
search database. With no arguments, the configured archive_root is
scanned for zips and conversations whose archives are gone get pruned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger, cleanup := config.SetupLogger(cfg.LogFile, config.ParseLevel(cfg.LogLevel))
			defer cleanup()

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			var archives []scan.FileInfo
			prune := false
			if len(args) == 0 {
				fmt.Fprintf(os.Stderr, "Scanning %s...\n", cfg.ArchiveRoot)
				archives, err = scan.Root(cfg.ArchiveRoot)
				if err != nil {
					return fmt.Errorf("scan: %w", err)
				}
				prune = true
			} else {
				for _, arg := range args {
					fi, err := scan.Stat(arg)
					if err != nil {
						return err
					}
					archives = append(archives, fi)
				}
			}

			stats, err := index.IndexAll(db, archives, prune, logger)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			return nil
		},
	}

	return cmd
}
