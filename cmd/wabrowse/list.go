package main

import (
	"github.com/spf13/cobra"
	"github.com/wabrowse/wabrowse/internal/config"
	"github.com/wabrowse/wabrowse/internal/index"
	"github.com/wabrowse/wabrowse/internal/search"
	"github.com/wabrowse/wabrowse/internal/tui"
)

func listCmd() *cobra.Command {
	var since string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse all conversations sorted by update time",
		Long:  `Opens a TUI panel showing all indexed conversations sorted by update time (newest first). Type to search message content.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			opts := search.Options{
				Since: since,
				Limit: limit,
			}

			return tui.RunList(db, opts)
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Filter conversations updated since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (0 = no limit)")

	return cmd
}
