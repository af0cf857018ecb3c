package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Navodith09/NewsSpeak/internal/bookmarks"
	"github.com/Navodith09/NewsSpeak/internal/config"
	"github.com/Navodith09/NewsSpeak/internal/news"
	"github.com/Navodith09/NewsSpeak/internal/newsapi"
	"github.com/Navodith09/NewsSpeak/internal/share"
	"github.com/Navodith09/NewsSpeak/internal/speech"
	"github.com/Navodith09/NewsSpeak/internal/storage"
	"github.com/Navodith09/NewsSpeak/internal/tui"
)

// bookmarkSlotKey matches the storage key the web build of this app used,
// so an imported bookmark dump keeps working.
const bookmarkSlotKey = "newsBookmarks"

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagCategory != "" {
		if err := config.ValidateCategory(flagCategory); err != nil {
			return err
		}
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	marks, cleanup, err := openBookmarks(cfg)
	if err != nil {
		return fmt.Errorf("opening bookmarks: %w", err)
	}
	defer cleanup()

	return tui.Run(tui.RunOpts{
		Cfg:          cfg,
		Client:       client,
		Bookmarks:    marks,
		Narrator:     speech.NewNarrator(speech.NewPlatformSynthesis(), cfg.Speech.PreferredVoices),
		Recognition:  speech.NewCommandRecognizer(cfg.Speech.CaptureCommand),
		Sharer:       share.New(cfg.ShareCommand),
		InitialQuery: news.BuildQuery(flagSearch, flagCategory),
	})
}

func newClient(cfg *config.Config) (*newsapi.Client, error) {
	apiKey := cfg.ResolvedAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("no API key configured: set api_key in %s or the NEWSSPEAK_API_KEY environment variable", config.DefaultConfigPath())
	}
	return newsapi.New(apiKey, cfg.Country, newsapi.WithRelayURL(cfg.RelayURL)), nil
}

// openBookmarks picks the slot backend from config. The returned cleanup
// closes the store first, then the backend.
func openBookmarks(cfg *config.Config) (*bookmarks.Store, func(), error) {
	if cfg.Storage == "sqlite" {
		slog.Debug("opening bookmark store", "backend", "sqlite", "path", config.BookmarkDBPath())
		slot, err := storage.OpenSQLiteSlot(config.BookmarkDBPath(), bookmarkSlotKey)
		if err != nil {
			return nil, nil, err
		}
		marks, err := bookmarks.Open(slot)
		if err != nil {
			slot.Close()
			return nil, nil, err
		}
		return marks, func() {
			marks.Close()
			slot.Close()
		}, nil
	}

	slog.Debug("opening bookmark store", "backend", "file", "path", config.BookmarkFilePath())
	marks, err := bookmarks.Open(storage.NewFileSlot(config.BookmarkFilePath()))
	if err != nil {
		return nil, nil, err
	}
	return marks, marks.Close, nil
}
