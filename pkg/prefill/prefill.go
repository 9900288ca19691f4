// Package prefill fetches best-effort {title, description} metadata for a URL
// so the client can prefill the save-item form. Every lookup path is
// best-effort: a failure yields an empty Meta, never an error.
package prefill

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Meta is the prefill payload.
type Meta struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

const (
	defaultTwitterEndpoint = "https://publish.twitter.com/oembed"
	defaultYouTubeEndpoint = "https://www.youtube.com/oembed"
	defaultNoEmbedEndpoint = "https://noembed.com/embed"

	titleLimit = 100
)

// Client resolves metadata via Twitter oEmbed, YouTube oEmbed, noembed, and an
// OpenGraph scrape, in that order. Endpoints are overridable for tests.
type Client struct {
	HTTP            *http.Client
	TwitterEndpoint string
	YouTubeEndpoint string
	NoEmbedEndpoint string
}

func NewClient() *Client {
	return &Client{
		HTTP:            &http.Client{Timeout: 8 * time.Second},
		TwitterEndpoint: defaultTwitterEndpoint,
		YouTubeEndpoint: defaultYouTubeEndpoint,
		NoEmbedEndpoint: defaultNoEmbedEndpoint,
	}
}

func isTwitterHost(host string) bool {
	h := strings.ToLower(host)
	return h == "twitter.com" || strings.HasSuffix(h, ".twitter.com") ||
		h == "x.com" || strings.HasSuffix(h, ".x.com")
}

func isYouTubeHost(host string) bool {
	h := strings.ToLower(host)
	return h == "youtube.com" || strings.HasSuffix(h, ".youtube.com") ||
		h == "youtu.be" || strings.HasSuffix(h, ".youtu.be")
}

// Lookup resolves metadata for rawURL. Unparseable or non-HTTP URLs yield an
// empty Meta.
func (c *Client) Lookup(ctx context.Context, rawURL string) Meta {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return Meta{}
	}

	if isTwitterHost(u.Host) {
		if m := c.twitterOEmbed(ctx, rawURL); m != nil {
			return *m
		}
	}
	if isYouTubeHost(u.Host) {
		if m := c.youtubeOEmbed(ctx, rawURL); m != nil {
			return *m
		}
	}
	if m := c.noEmbed(ctx, rawURL); m != nil {
		return *m
	}
	if m := c.openGraph(ctx, rawURL); m != nil {
		return *m
	}
	return Meta{}
}

// TweetMetadata returns the raw Twitter oEmbed document for a tweet URL,
// suitable for storing alongside a tweet item. Nil on any failure.
func (c *Client) TweetMetadata(ctx context.Context, rawURL string) json.RawMessage {
	if rawURL == "" {
		return nil
	}
	body := c.getJSONRaw(ctx, c.TwitterEndpoint+"?omit_script=1&hide_thread=1&url="+url.QueryEscape(rawURL))
	if body == nil || !json.Valid(body) {
		return nil
	}
	return body
}

type oEmbedDoc struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
	HTML       string `json:"html"`
}

func (c *Client) twitterOEmbed(ctx context.Context, rawURL string) *Meta {
	var doc oEmbedDoc
	if !c.getJSON(ctx, c.TwitterEndpoint+"?omit_script=1&hide_thread=1&dnt=1&url="+url.QueryEscape(rawURL), &doc) {
		return nil
	}
	text := stripHTML(doc.HTML)
	m := &Meta{Description: text}
	switch {
	case text != "":
		m.Title = truncate(text, titleLimit)
	case doc.AuthorName != "":
		m.Title = "Tweet by " + doc.AuthorName
	default:
		return nil
	}
	return m
}

func (c *Client) youtubeOEmbed(ctx context.Context, rawURL string) *Meta {
	var doc oEmbedDoc
	if !c.getJSON(ctx, c.YouTubeEndpoint+"?format=json&url="+url.QueryEscape(rawURL), &doc) {
		return nil
	}
	if doc.Title == "" && doc.AuthorName == "" {
		return nil
	}
	m := &Meta{Title: doc.Title}
	if doc.AuthorName != "" {
		m.Description = "by " + doc.AuthorName
	}
	return m
}

func (c *Client) noEmbed(ctx context.Context, rawURL string) *Meta {
	var doc oEmbedDoc
	if !c.getJSON(ctx, c.NoEmbedEndpoint+"?url="+url.QueryEscape(rawURL), &doc) {
		return nil
	}
	text := stripHTML(doc.HTML)
	title := doc.Title
	if title == "" && text != "" {
		title = truncate(text, titleLimit)
	}
	desc := text
	if desc == "" {
		desc = doc.AuthorName
	}
	if title == "" && desc == "" {
		return nil
	}
	return &Meta{Title: title, Description: desc}
}

var (
	metaTagRe = regexp.MustCompile(`(?i)<meta[^>]+>`)
	attrRe    = regexp.MustCompile(`(?i)(property|name|content)\s*=\s*["']([^"']*)["']`)
	titleRe   = regexp.MustCompile(`(?is)<title[^>]*>([^<]+)</title>`)
	tagRe     = regexp.MustCompile(`<[^>]*>`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

func (c *Client) openGraph(ctx context.Context, rawURL string) *Meta {
	body := c.getJSONRaw(ctx, rawURL)
	if body == nil {
		return nil
	}
	html := string(body)

	title := metaContent(html, "og:title")
	if title == "" {
		title = metaContent(html, "twitter:title")
	}
	if title == "" {
		if m := titleRe.FindStringSubmatch(html); m != nil {
			title = strings.TrimSpace(m[1])
		}
	}
	desc := metaContent(html, "og:description")
	if desc == "" {
		desc = metaContent(html, "description")
	}
	if desc == "" {
		desc = metaContent(html, "twitter:description")
	}
	if title == "" && desc == "" {
		return nil
	}
	return &Meta{Title: title, Description: strings.TrimSpace(desc)}
}

// metaContent finds <meta property|name=key content=...> regardless of
// attribute order.
func metaContent(html, key string) string {
	for _, tag := range metaTagRe.FindAllString(html, -1) {
		var isKey bool
		var content string
		for _, m := range attrRe.FindAllStringSubmatch(tag, -1) {
			switch strings.ToLower(m[1]) {
			case "property", "name":
				if strings.EqualFold(m[2], key) {
					isKey = true
				}
			case "content":
				content = m[2]
			}
		}
		if isKey && content != "" {
			return content
		}
	}
	return ""
}

func stripHTML(html string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(tagRe.ReplaceAllString(html, " "), " "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest any) bool {
	body := c.getJSONRaw(ctx, endpoint)
	if body == nil {
		return false
	}
	return json.Unmarshal(body, dest) == nil
}

func (c *Client) getJSONRaw(ctx context.Context, endpoint string) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		return nil
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil
	}
	return body
}
