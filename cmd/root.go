package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Navodith09/NewsSpeak/internal/update"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig   string
	flagCategory string
	flagSearch   string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "newsspeak",
	Short: "Voice-enabled TUI news reader",
	Long:  "newsspeak browses top headlines from NewsAPI in a two-pane dashboard, with bookmarks, spoken narration, and voice search.",
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	rootCmd.Flags().StringVar(&flagCategory, "category", "", "start on a category feed (e.g., business, technology)")
	rootCmd.Flags().StringVar(&flagSearch, "search", "", "start on a search feed")

	rootCmd.AddCommand(headlinesCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(bookmarksCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newsspeak %s (commit: %s, built: %s)\n", version, commit, date)
		if rel := update.Check(context.Background(), version); rel != nil {
			fmt.Printf("A newer version is available: %s\n  %s\n", rel.Version, rel.URL)
		}
	},
}

func setupLogging() {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func Execute() {
	cobra.OnInitialize(setupLogging)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
