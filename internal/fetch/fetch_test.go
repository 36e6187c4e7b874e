package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title> Bakery Dupont | Home </title></head>
<body>
  <nav>Home About Contact</nav>
  <header>Site header</header>
  <main>
    <h1>Bakery Dupont</h1>
    <p>Fresh sourdough daily since 1982.</p>
  </main>
  <div class="ad">Buy our partner's flour</div>
  <script>trackVisit();</script>
  <footer>Copyright 2026</footer>
</body>
</html>`

func TestURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	res, err := URL(context.Background(), srv.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, srv.URL, res.URL)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Bakery Dupont | Home", res.Title)
	assert.Contains(t, res.ContentType, "text/html")
	assert.Contains(t, res.HTML, "sourdough")
}

func TestURL_CustomHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "fr", r.Header.Get("Accept-Language"))
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	opts := DefaultOptions()
	opts.UserAgent = "custom-agent"
	opts.Headers = map[string]string{"Accept-Language": "fr"}

	_, err := URL(context.Background(), srv.URL, opts)
	require.NoError(t, err)
}

func TestURL_NonOKReturnsResultAndError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	res, err := URL(context.Background(), srv.URL, nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var fetchErr *Error
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, fetchErr.Message, "404")
}

func TestURL_InvalidInput(t *testing.T) {
	for _, input := range []string{"", "not a url", "/relative/path", "example.com"} {
		res, err := URL(context.Background(), input, nil)
		assert.Error(t, err, input)
		assert.Nil(t, res, input)
	}
}

func TestURL_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := URL(context.Background(), addr, nil)
	require.Error(t, err)

	var fetchErr *Error
	require.True(t, errors.As(err, &fetchErr))
	assert.NotNil(t, fetchErr.Unwrap())
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "Bakery Dupont | Home", PageTitle(samplePage))
	assert.Empty(t, PageTitle("<html><body>no title</body></html>"))
	assert.Empty(t, PageTitle(""))
}

func TestExtractMainText(t *testing.T) {
	text, err := ExtractMainText(samplePage, DefaultTextSelectors())
	require.NoError(t, err)

	assert.Contains(t, text, "Bakery Dupont")
	assert.Contains(t, text, "Fresh sourdough daily since 1982.")
	assert.NotContains(t, text, "Site header")
	assert.NotContains(t, text, "partner's flour")
	assert.NotContains(t, text, "trackVisit")
	assert.NotContains(t, text, "Copyright")
}

func TestExtractMainText_FallsBackToBody(t *testing.T) {
	text, err := ExtractMainText("<html><body><p>plain body text</p></body></html>", DefaultTextSelectors())
	require.NoError(t, err)
	assert.Equal(t, "plain body text", text)
}

func TestExtractMainText_SelectorOrder(t *testing.T) {
	html := `<html><body>
		<article>article text</article>
		<main>main text</main>
	</body></html>`

	text, err := ExtractMainText(html, DefaultTextSelectors())
	require.NoError(t, err)
	assert.Equal(t, "main text", text)
}

func TestCleanWhitespace(t *testing.T) {
	assert.Equal(t, "a\nb", cleanWhitespace("  a  \n\n\n   b\n"))
	assert.Empty(t, cleanWhitespace("   \n \n "))
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("short"))

	long := make([]byte, MinContentLength)
	for i := range long {
		long[i] = 'x'
	}
	assert.False(t, ShouldUseBrowser(string(long)))
}
