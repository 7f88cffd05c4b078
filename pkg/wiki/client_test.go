package wiki

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryReturnsExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/page/summary/Ava", r.URL.Path)
		w.Write([]byte(`{"type": "standard", "title": "Ava", "extract": "Ava is a female given name."}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	summary, ok := client.Summary(context.Background(), "Ava")

	assert.True(t, ok)
	assert.Equal(t, "Ava is a female given name.", summary)
}

func TestSummaryMissAndFailureAreAdvisory(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "page not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "disambiguation page",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"type": "disambiguation", "title": "Mercury", "extract": "Mercury may refer to:"}`))
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>not json</html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(srv.URL)
			summary, ok := client.Summary(context.Background(), "Mercury")

			assert.False(t, ok)
			assert.Empty(t, summary)
		})
	}
}

func TestSummaryCachesResults(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"type": "standard", "title": "Wren", "extract": "Wren is a bird name."}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx := context.Background()
	client.Summary(ctx, "Wren")
	client.Summary(ctx, "Wren")

	assert.Equal(t, int32(1), calls.Load())
}
