package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<div class="result">
  <a rel="nofollow" class="result__a" href="https://go.dev">The <b>Go</b> Programming Language</a>
  <a class="result__snippet" href="https://go.dev">Build fast, reliable software &amp; services.</a>
</div>
<div class="result">
  <a rel="nofollow" class="result__a" href="https://k8s.io">Kubernetes</a>
  <a class="result__snippet" href="https://k8s.io">Production-grade container orchestration.</a>
</div>
</body></html>`

func TestDuckDuckGo_ParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "go backend frameworks", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	d := NewDuckDuckGo(srv.URL)
	got, err := d.Search(context.Background(), "go backend frameworks", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "The Go Programming Language", got[0].Title)
	assert.Equal(t, "Build fast, reliable software & services.", got[0].Body)
	assert.Equal(t, "Kubernetes", got[1].Title)
}

func TestDuckDuckGo_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	d := NewDuckDuckGo(srv.URL)
	_, err := d.Search(context.Background(), "anything", 10)
	assert.Error(t, err)
}
