package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Navodith09/NewsSpeak/internal/config"
)

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List saved bookmarks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		marks, cleanup, err := openBookmarks(cfg)
		if err != nil {
			return fmt.Errorf("opening bookmarks: %w", err)
		}
		defer cleanup()

		saved := marks.List()
		if len(saved) == 0 {
			fmt.Println("No bookmarks yet.")
			return nil
		}

		for _, b := range saved {
			source := b.SourceName
			if source == "" {
				source = "unknown"
			}
			fmt.Printf("%s  [%s]\n  %s\n", b.Title, source, b.URL)
		}
		return nil
	},
}

var bookmarksClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all saved bookmarks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		marks, cleanup, err := openBookmarks(cfg)
		if err != nil {
			return fmt.Errorf("opening bookmarks: %w", err)
		}
		defer cleanup()

		count := len(marks.List())
		if count == 0 {
			fmt.Println("Nothing to clear.")
			return nil
		}

		if err := marks.Clear(); err != nil {
			return fmt.Errorf("clearing bookmarks: %w", err)
		}
		fmt.Printf("Removed %d bookmark(s).\n", count)
		return nil
	},
}

func init() {
	bookmarksCmd.AddCommand(bookmarksClearCmd)
}
