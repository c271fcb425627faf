package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartBody = `{"chart":{"result":[{"timestamp":[1735862400,1735776000,1735948800,1736208000],
"indicators":{"quote":[{"close":[1470.5,1465.0,null,1468.25]}]}}],"error":null}}`

func TestYahooFetcher_FetchDailyCloses(t *testing.T) {
	var gotPath, gotRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		w.Write([]byte(chartBody))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL

	s, err := f.FetchDailyCloses(context.Background(), "USDKRW", 252)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(gotPath, "/KRW=X"), gotPath)
	assert.Equal(t, "2y", gotRange)

	// Sorted, null bar skipped.
	require.Equal(t, 3, s.Len())
	assert.Equal(t, []float64{1465.0, 1470.5, 1468.25}, s.Closes())
	assert.Equal(t, "USDKRW", s.Symbol)
}

func TestYahooFetcher_TrimsToDays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chartBody))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	s, err := f.FetchDailyCloses(context.Background(), "KRW=X", 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1470.5, 1468.25}, s.Closes())
}

func TestYahooFetcher_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusNotFound, `{}`},
		{"api error", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`},
		{"empty result", http.StatusOK, `{"chart":{"result":[],"error":null}}`},
		{"all null", http.StatusOK, `{"chart":{"result":[{"timestamp":[1],"indicators":{"quote":[{"close":[null]}]}}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			f := NewYahooFetcher("")
			f.BaseURL = srv.URL
			_, err := f.FetchDailyCloses(context.Background(), "BOGUS", 10)
			assert.Error(t, err)
		})
	}
}

func TestYahooRange(t *testing.T) {
	assert.Equal(t, "6mo", yahooRange(20))
	assert.Equal(t, "1y", yahooRange(126))
	assert.Equal(t, "2y", yahooRange(252))
	assert.Equal(t, "5y", yahooRange(504))
}
