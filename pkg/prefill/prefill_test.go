package prefill

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(twitter, youtube, noembed string) *Client {
	c := NewClient()
	// Unused endpoints point nowhere reachable so fallbacks are exercised.
	c.TwitterEndpoint = "http://127.0.0.1:0/oembed"
	c.YouTubeEndpoint = "http://127.0.0.1:0/oembed"
	c.NoEmbedEndpoint = "http://127.0.0.1:0/embed"
	if twitter != "" {
		c.TwitterEndpoint = twitter
	}
	if youtube != "" {
		c.YouTubeEndpoint = youtube
	}
	if noembed != "" {
		c.NoEmbedEndpoint = noembed
	}
	return c
}

func TestLookup_RejectsBadURLs(t *testing.T) {
	c := testClient("", "", "")
	for _, raw := range []string{"", "::::", "ftp://example.com/file", "javascript:alert(1)"} {
		assert.Equal(t, Meta{}, c.Lookup(context.Background(), raw), "url %q", raw)
	}
}

func TestLookup_TwitterOEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("omit_script"))
		require.Contains(t, r.URL.Query().Get("url"), "twitter.com")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"author_name":"ada","html":"<blockquote><p>Hello second brain</p></blockquote>"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "", "")
	m := c.Lookup(context.Background(), "https://twitter.com/ada/status/1")
	assert.Equal(t, "Hello second brain", m.Title)
	assert.Equal(t, "Hello second brain", m.Description)
}

func TestLookup_TwitterFallsBackToAuthor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"author_name":"ada","html":""}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "", "")
	m := c.Lookup(context.Background(), "https://x.com/ada/status/1")
	assert.Equal(t, "Tweet by ada", m.Title)
}

func TestLookup_TwitterTruncatesLongTweets(t *testing.T) {
	long := strings.Repeat("a", 150)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"html":"<p>` + long + `</p>"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "", "")
	m := c.Lookup(context.Background(), "https://twitter.com/a/status/1")
	assert.Len(t, []rune(m.Title), 101) // 100 runes plus ellipsis
	assert.Equal(t, long, m.Description)
}

func TestLookup_YouTubeOEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "json", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte(`{"title":"Go Concurrency Patterns","author_name":"Google Developers"}`))
	}))
	defer srv.Close()

	c := testClient("", srv.URL, "")
	m := c.Lookup(context.Background(), "https://www.youtube.com/watch?v=f6kdp27TYZs")
	assert.Equal(t, "Go Concurrency Patterns", m.Title)
	assert.Equal(t, "by Google Developers", m.Description)
}

func TestLookup_NoEmbedFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"title":"Some Article"}`))
	}))
	defer srv.Close()

	c := testClient("", "", srv.URL)
	m := c.Lookup(context.Background(), "https://blog.example.com/post")
	assert.Equal(t, "Some Article", m.Title)
}

func TestLookup_OpenGraphScrape(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head>
			<title>Fallback Title</title>
			<meta property="og:title" content="OG Title">
			<meta content="OG Description" property="og:description">
		</head><body></body></html>`))
	}))
	defer page.Close()

	c := testClient("", "", "")
	m := c.Lookup(context.Background(), page.URL)
	assert.Equal(t, "OG Title", m.Title)
	assert.Equal(t, "OG Description", m.Description)
}

func TestLookup_TitleTagFallback(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title> Plain Title </title>
			<meta name="description" content="plain description"></head></html>`))
	}))
	defer page.Close()

	c := testClient("", "", "")
	m := c.Lookup(context.Background(), page.URL)
	assert.Equal(t, "Plain Title", m.Title)
	assert.Equal(t, "plain description", m.Description)
}

func TestLookup_NothingFound(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>no metadata here</body></html>`))
	}))
	defer page.Close()

	c := testClient("", "", "")
	assert.Equal(t, Meta{}, c.Lookup(context.Background(), page.URL))
}

func TestTweetMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("hide_thread"))
		_, _ = w.Write([]byte(`{"author_name":"ada","html":"<p>hi</p>"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "", "")
	raw := c.TweetMetadata(context.Background(), "https://twitter.com/ada/status/1")
	require.NotNil(t, raw)
	assert.Contains(t, string(raw), `"author_name":"ada"`)
}

func TestTweetMetadata_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := testClient(srv.URL, "", "")
	assert.Nil(t, c.TweetMetadata(context.Background(), ""))
	assert.Nil(t, c.TweetMetadata(context.Background(), "https://twitter.com/a/status/404"))
}

func TestMetaContent_AttributeOrder(t *testing.T) {
	html := `<meta content="first" property="og:title"><meta name="og:title" content="second">`
	assert.Equal(t, "first", metaContent(html, "og:title"))
	assert.Equal(t, "", metaContent(html, "og:image"))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "a b c", stripHTML("<p>a</p> <b>b</b>\n<i>c</i>"))
	assert.Equal(t, "", stripHTML("<br/>"))
}
