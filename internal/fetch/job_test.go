package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func servePage(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestJobDescription_HTTP(t *testing.T) {
	long := strings.Repeat("Build distributed systems in Go. ", 30)
	server := servePage(t, `<html><body><main><h1>Backend Engineer</h1><p>`+long+`</p></main></body></html>`)

	f := NewJobFetcher(nil, true)
	f.render = func(context.Context, string, time.Duration) (string, error) {
		t.Error("browser should not be used for long pages")
		return "", nil
	}

	text, err := f.JobDescription(context.Background(), server.URL)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Backend Engineer\nBuild distributed systems"))
}

func TestJobDescription_BrowserFallback(t *testing.T) {
	server := servePage(t, `<html><body><div id="root">Loading...</div></body></html>`)
	rendered := `<html><body><main>` + strings.Repeat("Rendered requirement. ", 40) + `</main></body></html>`

	var calls int
	f := NewJobFetcher(nil, true)
	f.render = func(_ context.Context, url string, _ time.Duration) (string, error) {
		calls++
		assert.Equal(t, server.URL, url)
		return rendered, nil
	}

	text, err := f.JobDescription(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, text, "Rendered requirement.")
}

func TestJobDescription_BrowserDisabledOrFailing(t *testing.T) {
	server := servePage(t, `<html><body><p>Short posting</p></body></html>`)

	f := NewJobFetcher(nil, false)
	f.render = func(context.Context, string, time.Duration) (string, error) {
		t.Error("browser disabled")
		return "", nil
	}
	text, err := f.JobDescription(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Short posting", text)

	f.UseBrowser = true
	f.render = func(context.Context, string, time.Duration) (string, error) {
		return "", errors.New("chrome not installed")
	}
	text, err = f.JobDescription(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Short posting", text, "falls back to the HTTP text")
}

func TestJobDescription_Errors(t *testing.T) {
	f := NewJobFetcher(nil, false)

	empty := servePage(t, `<html><body><script>app()</script></body></html>`)
	_, err := f.JobDescription(context.Background(), empty.URL)
	assert.ErrorIs(t, err, ErrNoContent)

	gone := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer gone.Close()
	_, err = f.JobDescription(context.Background(), gone.URL)
	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)

	_, err = f.JobDescription(context.Background(), "not a url")
	assert.Error(t, err)
}
