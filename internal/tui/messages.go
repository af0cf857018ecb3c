package tui

import (
	"github.com/Navodith09/NewsSpeak/internal/news"
	"github.com/Navodith09/NewsSpeak/internal/share"
)

// feedLoadedMsg and feedErrMsg carry the generation of the fetch that
// produced them. The model ignores results from superseded fetches.
type feedLoadedMsg struct {
	gen      int
	articles []news.Article
}

type feedErrMsg struct {
	gen int
	err error
}

type narrationDoneMsg struct {
	err error
}

type shareDoneMsg struct {
	result share.Result
	err    error
}

type voiceTickMsg struct{}

type noticeExpiredMsg struct {
	seq int
}
