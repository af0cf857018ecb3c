package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Navodith09/NewsSpeak/internal/config"
	"github.com/Navodith09/NewsSpeak/internal/news"
)

var flagHeadlinesCategory string

var headlinesCmd = &cobra.Command{
	Use:   "headlines",
	Short: "Print the current top headlines",
	Long:  "Fetch the current top headlines and print them to stdout, newest first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagHeadlinesCategory != "" {
			if err := config.ValidateCategory(flagHeadlinesCategory); err != nil {
				return err
			}
		}
		return printFeed(news.BuildQuery("", flagHeadlinesCategory))
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search articles from the last 24 hours",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printFeed(news.BuildQuery(strings.Join(args, " "), ""))
	},
}

func init() {
	headlinesCmd.Flags().StringVar(&flagHeadlinesCategory, "category", "", "restrict to a category (e.g., business, technology)")
}

func printFeed(q news.Query) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slog.Debug("fetching feed", "mode", q.Mode, "term", q.Term, "category", q.Category)
	articles, err := client.Fetch(ctx, q)
	if err != nil {
		return err
	}
	slog.Debug("feed fetched", "articles", len(articles))

	if len(articles) == 0 {
		fmt.Println("No articles found.")
		return nil
	}

	for _, a := range articles {
		fmt.Println(formatArticle(a))
	}
	return nil
}

func formatArticle(a news.Article) string {
	source := a.SourceName
	if source == "" {
		source = "unknown"
	}
	when := "undated"
	if !a.PublishedAt.IsZero() {
		when = a.PublishedAt.Format("Jan 2 15:04")
	}
	return fmt.Sprintf("%s  [%s · %s]\n  %s", a.Title, source, when, a.URL)
}
