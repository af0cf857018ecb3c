package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Navodith09/NewsSpeak/internal/bookmarks"
	"github.com/Navodith09/NewsSpeak/internal/browser"
	"github.com/Navodith09/NewsSpeak/internal/config"
	"github.com/Navodith09/NewsSpeak/internal/news"
	"github.com/Navodith09/NewsSpeak/internal/newsapi"
	"github.com/Navodith09/NewsSpeak/internal/present"
	"github.com/Navodith09/NewsSpeak/internal/share"
	"github.com/Navodith09/NewsSpeak/internal/speech"
)

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeCategory
	modeBookmarks
	modeHelp
)

const fetchTimeout = 30 * time.Second

type App struct {
	cfg        *config.Config
	client     *newsapi.Client
	marks      *bookmarks.Store
	narrator   *speech.Narrator
	recognizer *speech.Recognizer
	sharer     share.Sharer

	query news.Query
	feed  []news.Article
	view  []news.Article

	sortField present.Field
	sortOrder present.Order

	// gen identifies the fetch in flight. Results tagged with an older
	// generation lost the race to a newer navigation and are dropped.
	gen int

	cursor   int
	bmCursor int
	focus    focusPane
	mode     mode

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	spinner     spinner.Model
	catBar      categoryBar

	// State
	loading       bool
	previewScroll int
	currentDate   string
	err           error
	notice        string
	noticeSeq     int

	// voiceTerms receives the final transcript from the recognizer
	// goroutine; the tick loop drains it on the program goroutine.
	voiceTerms chan string
}

// RunOpts holds all collaborators for launching the TUI.
type RunOpts struct {
	Cfg          *config.Config
	Client       *newsapi.Client
	Bookmarks    *bookmarks.Store
	Narrator     *speech.Narrator
	Recognition  speech.RecognitionEngine
	Sharer       share.Sharer
	InitialQuery news.Query
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search news..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	a := &App{
		cfg:         opts.Cfg,
		client:      opts.Client,
		marks:       opts.Bookmarks,
		narrator:    opts.Narrator,
		sharer:      opts.Sharer,
		query:       opts.InitialQuery,
		sortField:   present.ByPublished,
		sortOrder:   present.Desc,
		searchInput: ti,
		spinner:     sp,
		catBar:      newCategoryBar(),
		currentDate: time.Now().Format("Jan 2"),
		voiceTerms:  make(chan string, 1),
	}
	a.catBar.pick(opts.InitialQuery.Category)
	a.recognizer = speech.NewRecognizer(opts.Recognition, func(term string) {
		select {
		case a.voiceTerms <- term:
		default:
		}
	})
	return a
}

func (a *App) Init() tea.Cmd {
	return a.startFetch()
}

// startFetch supersedes any fetch in flight. The generation stamped into
// the closure lets Update tell a current result from a stale one.
func (a *App) startFetch() tea.Cmd {
	a.gen++
	a.loading = true
	a.err = nil

	gen := a.gen
	q := a.query
	client := a.client
	return tea.Batch(func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		articles, err := client.Fetch(ctx, q)
		if err != nil {
			return feedErrMsg{gen: gen, err: err}
		}
		return feedLoadedMsg{gen: gen, articles: articles}
	}, a.spinner.Tick)
}

func (a *App) refreshView() {
	a.view = present.Present(a.feed, a.sortField, a.sortOrder)
	if a.cursor >= len(a.view) {
		a.cursor = max(0, len(a.view)-1)
	}
}

func (a *App) selected() *news.Article {
	if a.mode == modeBookmarks {
		saved := a.bookmarkArticles()
		if len(saved) > 0 && a.bmCursor < len(saved) {
			return &saved[a.bmCursor]
		}
		return nil
	}
	if len(a.view) > 0 && a.cursor < len(a.view) {
		return &a.view[a.cursor]
	}
	return nil
}

func (a *App) bookmarkArticles() []news.Article {
	saved := a.marks.List()
	out := make([]news.Article, len(saved))
	for i, b := range saved {
		out[i] = news.Article{
			Title:       b.Title,
			URL:         b.URL,
			PublishedAt: b.PublishedAt,
			SourceName:  b.SourceName,
		}
	}
	return out
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return feedErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) setNotice(text string) tea.Cmd {
	a.notice = text
	a.noticeSeq++
	seq := a.noticeSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (a *App) drainVoiceTerm() (string, bool) {
	select {
	case term := <-a.voiceTerms:
		return term, true
	default:
		return "", false
	}
}

func (a *App) voiceSearch(term string) tea.Cmd {
	a.query = news.BuildQuery(term, a.catBar.current())
	a.cursor = 0
	return tea.Batch(a.startFetch(), a.setNotice(fmt.Sprintf("Searching for %q", term)))
}

func voiceTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return voiceTickMsg{}
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case feedLoadedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		a.loading = false
		a.feed = msg.articles
		a.previewScroll = 0
		a.refreshView()
		return a, nil

	case feedErrMsg:
		if msg.gen != 0 && msg.gen != a.gen {
			return a, nil
		}
		a.loading = false
		a.err = msg.err
		return a, nil

	case narrationDoneMsg:
		if msg.err != nil {
			return a, a.setNotice("Narration failed: " + msg.err.Error())
		}
		return a, nil

	case shareDoneMsg:
		if msg.err != nil {
			return a, a.setNotice("Share failed: " + msg.err.Error())
		}
		if msg.result == share.Copied {
			return a, a.setNotice("Link copied to clipboard")
		}
		return a, a.setNotice("Shared")

	case voiceTickMsg:
		if term, ok := a.drainVoiceTerm(); ok {
			return a, a.voiceSearch(term)
		}
		if a.recognizer.Listening() {
			return a, voiceTickCmd()
		}
		// The session may have delivered its result between the drain
		// above and the Listening check; the recognizer guarantees the
		// term is in the channel before it reports idle.
		if term, ok := a.drainVoiceTerm(); ok {
			return a, a.voiceSearch(term)
		}
		return a, nil

	case noticeExpiredMsg:
		if msg.seq == a.noticeSeq {
			a.notice = ""
		}
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.String() == "ctrl+c" {
		a.narrator.Stop()
		a.recognizer.Stop()
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeCategory:
		return a.handleCategoryKey(msg)
	case modeBookmarks:
		return a.handleBookmarksKey(msg)
	case modeHelp:
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = modeNormal
		}
		return a, nil
	}

	// Normal mode
	switch msg.String() {
	case "q":
		a.narrator.Stop()
		a.recognizer.Stop()
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.view)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "o", "enter":
		if sel := a.selected(); sel != nil {
			return a, openBrowserCmd(sel.URL)
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "c":
		a.mode = modeCategory
		a.catBar.pickMode = true
		return a, nil
	case "r":
		if !a.loading {
			return a, a.startFetch()
		}
		return a, nil
	case "s":
		a.sortField = nextField(a.sortField)
		a.refreshView()
		return a, nil
	case "d":
		a.sortOrder = a.sortOrder.Toggle()
		a.refreshView()
		return a, nil
	case "b":
		return a, a.toggleBookmark()
	case "B":
		a.mode = modeBookmarks
		a.bmCursor = 0
		a.previewScroll = 0
		return a, nil
	case "n":
		return a, a.toggleNarration()
	case "y":
		return a, a.shareSelected()
	case "v":
		return a, a.startVoiceSearch()
	case "esc":
		if a.recognizer.Listening() {
			a.recognizer.Stop()
		}
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func nextField(f present.Field) present.Field {
	for i, known := range present.Fields {
		if known == f {
			return present.Fields[(i+1)%len(present.Fields)]
		}
	}
	return present.Fields[0]
}

func (a *App) toggleBookmark() tea.Cmd {
	sel := a.selected()
	if sel == nil {
		return nil
	}
	if a.marks.IsBookmarked(sel.URL) {
		if err := a.marks.Remove(sel.URL); err != nil {
			return a.setNotice("Could not remove bookmark: " + err.Error())
		}
		return a.setNotice("Bookmark removed")
	}
	if err := a.marks.Add(*sel); err != nil {
		return a.setNotice("Could not save bookmark: " + err.Error())
	}
	return a.setNotice("Bookmarked")
}

func (a *App) toggleNarration() tea.Cmd {
	sel := a.selected()
	if sel == nil {
		return nil
	}
	done := a.narrator.Toggle(*sel)
	if done == nil {
		// Toggled off
		return nil
	}
	return func() tea.Msg {
		return narrationDoneMsg{err: <-done}
	}
}

func (a *App) shareSelected() tea.Cmd {
	sel := a.selected()
	if sel == nil {
		return nil
	}
	sharer := a.sharer
	title, url := sel.Title, sel.URL
	return func() tea.Msg {
		result, err := sharer.Share(title, url)
		return shareDoneMsg{result: result, err: err}
	}
}

func (a *App) startVoiceSearch() tea.Cmd {
	err := a.recognizer.Start()
	if errors.Is(err, speech.ErrUnsupported) {
		return a.setNotice("Voice search is not available")
	}
	if err != nil {
		return a.setNotice("Voice search failed: " + err.Error())
	}
	return tea.Batch(a.setNotice("Listening..."), voiceTickCmd())
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		a.query = news.BuildQuery(a.searchInput.Value(), a.catBar.current())
		a.cursor = 0
		return a, a.startFetch()
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a *App) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "c":
		a.mode = modeNormal
		a.catBar.pickMode = false
		return a, nil
	case "left", "h":
		if a.catBar.pickCursor > 0 {
			a.catBar.pickCursor--
		}
		return a, nil
	case "right", "l":
		if a.catBar.pickCursor < a.catBar.tabCount()-1 {
			a.catBar.pickCursor++
		}
		return a, nil
	case " ", "enter":
		a.catBar.pickAtCursor()
		a.catBar.pickMode = false
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.query = news.BuildQuery("", a.catBar.current())
		a.cursor = 0
		return a, a.startFetch()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		if idx < a.catBar.tabCount() {
			a.catBar.pickCursor = idx
			a.catBar.pickAtCursor()
			a.catBar.pickMode = false
			a.mode = modeNormal
			a.searchInput.SetValue("")
			a.query = news.BuildQuery("", a.catBar.current())
			a.cursor = 0
			return a, a.startFetch()
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleBookmarksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	saved := a.bookmarkArticles()
	switch msg.String() {
	case "esc", "B":
		a.mode = modeNormal
		a.previewScroll = 0
		return a, nil
	case "q":
		a.narrator.Stop()
		a.recognizer.Stop()
		return a, tea.Quit
	case "j", "down":
		if a.bmCursor < len(saved)-1 {
			a.bmCursor++
			a.previewScroll = 0
		}
		return a, nil
	case "k", "up":
		if a.bmCursor > 0 {
			a.bmCursor--
			a.previewScroll = 0
		}
		return a, nil
	case "o", "enter":
		if sel := a.selected(); sel != nil {
			return a, openBrowserCmd(sel.URL)
		}
		return a, nil
	case "b", "d":
		if sel := a.selected(); sel != nil {
			if err := a.marks.Remove(sel.URL); err != nil {
				return a, a.setNotice("Could not remove bookmark: " + err.Error())
			}
			if a.bmCursor >= len(saved)-1 {
				a.bmCursor = max(0, len(saved)-2)
			}
			return a, a.setNotice("Bookmark removed")
		}
		return a, nil
	case "n":
		return a, a.toggleNarration()
	case "y":
		return a, a.shareSelected()
	}
	return a, nil
}

func (a *App) feedLabel() string {
	if a.query.Mode == news.ModeSearch {
		return fmt.Sprintf("search: %s", a.query.Term)
	}
	return a.catBar.label()
}

func (a *App) sortLabel() string {
	arrow := "↓"
	if a.sortOrder == present.Asc {
		arrow = "↑"
	}
	return string(a.sortField) + " " + arrow
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  NewsSpeak")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	// Layout calculations
	headerHeight := 1
	barHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - barHeight - statusHeight - 4 // borders

	listWidth := int(float64(a.width) * 0.35)
	previewWidth := a.width - listWidth - 1 // gap

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	title := "NewsSpeak"
	if a.mode == modeBookmarks {
		title = "NewsSpeak · Bookmarks"
	}
	headerLeft := headerStyle.Render(title)
	headerRight := headerDateStyle.Render(a.currentDate)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Category bar, replaced by the search input while searching
	bar := a.catBar.render(a.width)
	if a.mode == modeSearch {
		bar = a.searchInput.View()
	}

	// Pick the active collection
	articles := a.view
	emptyText := "No articles found"
	cursor := a.cursor
	if a.mode == modeBookmarks {
		articles = a.bookmarkArticles()
		emptyText = "No bookmarks yet"
		cursor = a.bmCursor
	}

	// List pane
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(articles, a.marks.IsBookmarked, cursor, contentHeight, innerListW, emptyText)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	// Preview pane
	sel := a.selected()
	innerPreviewW := previewWidth - 4
	marked := sel != nil && a.marks.IsBookmarked(sel.URL)
	previewContent := renderPreview(sel, marked, innerPreviewW, contentHeight, a.previewScroll)

	var previewPane string
	if a.focus == focusPreview {
		previewPane = previewPaneActiveStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	} else {
		previewPane = previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	// Status bar
	status := renderStatusBar(statusInfo{
		articleCount: len(articles),
		feedLabel:    a.feedLabel(),
		sortLabel:    a.sortLabel(),
		width:        a.width,
		searching:    a.mode == modeSearch,
		loading:      a.loading,
		listening:    a.recognizer.Listening(),
		speaking:     a.narrator.Speaking(),
	})

	if a.loading {
		status = a.spinner.View() + " " + status
	}

	if a.notice != "" {
		status = noticeStyle.Render(a.notice)
	}
	if a.err != nil {
		status = errorStyle.Render(newsapi.UserMessage(a.err)) + helpDimStyle.Render("  (r to retry)")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, bar, content, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("NewsSpeak")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Navigate article list\n" +
		"  tab           Switch focus between list and preview\n\n" +
		dim.Render("Feeds") + "\n" +
		"  /             Search articles\n" +
		"  c             Pick a category\n" +
		"  v             Search by voice\n" +
		"  r             Refresh the current feed\n" +
		"  s             Cycle the sort field\n" +
		"  d             Flip the sort direction\n\n" +
		dim.Render("Articles") + "\n" +
		"  o, enter      Open article in browser\n" +
		"  b             Bookmark / remove bookmark\n" +
		"  B             View bookmarks\n" +
		"  n             Read article aloud / stop reading\n" +
		"  y             Share article link\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(strings.TrimRight(help, "\n"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
