package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spacesedan/stocksage/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFinnhubTestClient(t *testing.T, handler http.HandlerFunc) *FinnhubClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewFinnhubClient("finnhub-key", srv.URL, srv.Client())
	client.now = func() time.Time { return time.Date(2024, 3, 8, 14, 0, 0, 0, time.UTC) }
	return client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func TestFinnhubFetchQuote(t *testing.T) {
	client := newFinnhubTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/quote"))
		assert.Equal(t, "PLTR", r.URL.Query().Get("symbol"))
		assert.Equal(t, "finnhub-key", r.Header.Get("X-Finnhub-Token"))
		writeJSON(w, http.StatusOK, `{"c":24.5,"d":0.5,"dp":2.08,"h":25,"l":23.75,"o":24,"pc":24}`)
	})

	quote, err := client.FetchQuote(context.Background(), "PLTR")
	require.NoError(t, err)
	assert.Equal(t, "PLTR", quote.Symbol)
	assert.Equal(t, 24.5, quote.Price)
	assert.Equal(t, 25.0, quote.DayHigh)
	assert.Equal(t, 24.0, quote.PreviousClose)
	assert.Equal(t, client.now().Unix(), quote.Timestamp)
}

func TestFinnhubFetchQuoteFailures(t *testing.T) {
	t.Run("all-zero quote", func(t *testing.T) {
		client := newFinnhubTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"c":0,"d":null,"dp":null,"h":0,"l":0,"o":0,"pc":0}`)
		})
		quote, err := client.FetchQuote(context.Background(), "ZZZZ")
		assert.Nil(t, quote)
		require.ErrorIs(t, err, models.ErrNoData)
	})

	t.Run("server error", func(t *testing.T) {
		client := newFinnhubTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{"error":"boom"}`)
		})
		_, err := client.FetchQuote(context.Background(), "PLTR")
		require.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	})

	t.Run("missing key", func(t *testing.T) {
		client := NewFinnhubClient("", "http://127.0.0.1:0", nil)
		_, err := client.FetchQuote(context.Background(), "PLTR")
		require.ErrorIs(t, err, models.ErrMissingCredential)
	})
}

func TestFinnhubFetchRecentNewsTruncates(t *testing.T) {
	client := newFinnhubTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/company-news"))
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-03-08", r.URL.Query().Get("to"))

		items := make([]string, 0, 7)
		for i := 1; i <= 7; i++ {
			items = append(items, fmt.Sprintf(`{"headline":"story %d","summary":"summary %d","source":"Reuters","datetime":1709900000,"url":"https://news.example/%d","image":""}`, i, i, i))
		}
		writeJSON(w, http.StatusOK, "["+strings.Join(items, ",")+"]")
	})

	news := client.FetchRecentNews(context.Background(), "PLTR")
	require.Len(t, news, MAX_RECENT_NEWS)
	assert.Equal(t, "story 1", news[0].Title)
	assert.Equal(t, "summary 1", news[0].Summary)
	assert.Equal(t, "Reuters", news[0].Source.Name)
	assert.Nil(t, news[0].URLToImage)
	assert.Equal(t, "story 5", news[4].Title)
}

func TestFinnhubFetchRecentNewsNeverFails(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		client := newFinnhubTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusTooManyRequests, `{"error":"API limit reached"}`)
		})
		news := client.FetchRecentNews(context.Background(), "PLTR")
		assert.NotNil(t, news)
		assert.Empty(t, news)
	})

	t.Run("transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		client := NewFinnhubClient("finnhub-key", srv.URL, srv.Client())
		srv.Close()

		news := client.FetchRecentNews(context.Background(), "PLTR")
		assert.NotNil(t, news)
		assert.Empty(t, news)
	})
}
