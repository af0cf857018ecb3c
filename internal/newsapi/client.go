// Package newsapi fetches and normalizes articles from NewsAPI through the
// allorigins CORS relay. The relay wraps the real response inside a JSON
// envelope, so every fetch is a two-stage parse: envelope first, payload
// second.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Navodith09/NewsSpeak/internal/news"
)

const (
	topHeadlinesURL = "https://newsapi.org/v2/top-headlines"
	everythingURL   = "https://newsapi.org/v2/everything"

	// DefaultRelayURL is the public allorigins endpoint. The relay is what
	// lets the original run without a backend; keeping it preserves the
	// envelope semantics end to end.
	DefaultRelayURL = "https://api.allorigins.win/get"

	defaultTimeout = 30 * time.Second
)

// Client fetches one normalized article feed per query. It does not retry,
// cache or paginate; a new query always means a fresh fetch.
type Client struct {
	apiKey   string
	country  string
	relayURL string
	client   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithRelayURL overrides the relay endpoint. Useful for tests.
func WithRelayURL(u string) Option {
	return func(c *Client) { c.relayURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// New creates a Client for the given API credential and headline country.
func New(apiKey, country string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		country:  country,
		relayURL: DefaultRelayURL,
		client:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the allorigins wrapper: the true response body is the
// double-encoded JSON string in Contents.
type envelope struct {
	Contents string `json:"contents"`
	Status   struct {
		URL      string `json:"url"`
		HTTPCode int    `json:"http_code"`
	} `json:"status"`
}

// apiResponse is the inner NewsAPI payload.
type apiResponse struct {
	Status   string       `json:"status"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Articles []apiArticle `json:"articles"`
}

type apiArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

// requestURL builds the proxied request for a query.
func (c *Client) requestURL(q news.Query) string {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("language", "en")
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	params.Set("sortBy", q.SortBy)

	var endpoint string
	switch q.Mode {
	case news.ModeSearch:
		endpoint = everythingURL
		params.Set("q", q.Term)
		params.Set("from", q.From.Format("2006-01-02"))
	case news.ModeCategory:
		endpoint = topHeadlinesURL
		params.Set("country", c.country)
		params.Set("category", q.Category)
	default:
		endpoint = topHeadlinesURL
		params.Set("country", c.country)
	}

	target := endpoint + "?" + params.Encode()
	return c.relayURL + "?url=" + url.QueryEscape(target)
}

// Fetch runs the full pipeline for one query: request through the relay,
// unwrap the envelope, parse the payload, then filter invalid articles,
// dedup by URL (first occurrence wins) and sort most recent first.
func (c *Client) Fetch(ctx context.Context, q news.Query) ([]news.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(q), nil)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RemoteAPIError{Status: resp.StatusCode, Message: resp.Status}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding relay envelope: %w", ErrMalformedResponse)
	}

	payload, err := parsePayload(env)
	if err != nil {
		return nil, err
	}

	articles := make([]news.Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		articles = append(articles, toArticle(a))
	}

	articles = news.Dedup(news.FilterValid(articles))
	news.SortByPublished(articles)
	return articles, nil
}

// parsePayload validates the inner NewsAPI response held in the envelope.
func parsePayload(env envelope) (*apiResponse, error) {
	var payload apiResponse
	if err := json.Unmarshal([]byte(env.Contents), &payload); err != nil {
		return nil, fmt.Errorf("decoding api payload: %w", ErrMalformedResponse)
	}

	if payload.Status == "error" {
		status := 0
		if env.Status.HTTPCode >= 400 {
			status = env.Status.HTTPCode
		}
		msg := payload.Message
		if msg == "" {
			msg = "API Error"
		}
		return nil, &RemoteAPIError{Status: status, Message: msg}
	}
	if env.Status.HTTPCode >= 400 {
		return nil, &RemoteAPIError{Status: env.Status.HTTPCode, Message: payload.Message}
	}
	if payload.Articles == nil {
		return nil, ErrMalformedResponse
	}
	return &payload, nil
}

func toArticle(a apiArticle) news.Article {
	published, _ := time.Parse(time.RFC3339, a.PublishedAt)
	return news.Article{
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		ImageURL:    a.URLToImage,
		PublishedAt: published,
		SourceName:  a.Source.Name,
	}
}
