package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/graceguide/grace/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	url     string
	timeout time.Duration
}

func (c testConfig) GetBaseURL() string               { return c.url }
func (c testConfig) GetRequestTimeout() time.Duration { return c.timeout }

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(testConfig{url: srv.URL + "/", timeout: 2 * time.Second})
}

func TestClient_Ask(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantAnswer  string
		wantSources []string
		wantStatus  int
		wantErrBody string
	}{
		{
			name: "success trims answer",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"answer": "  Grace is a free gift.\n", "sources": ["Eph 2:8", "CCC 1996"]}`)
			},
			wantAnswer:  "Grace is a free gift.",
			wantSources: []string{"Eph 2:8", "CCC 1996"},
		},
		{
			name: "missing sources become empty slice",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"answer": "Amen"}`)
			},
			wantAnswer:  "Amen",
			wantSources: []string{},
		},
		{
			name: "500 surfaces body as detail",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, "retriever unavailable")
			},
			wantStatus:  http.StatusInternalServerError,
			wantErrBody: "retriever unavailable",
		},
		{
			name: "422 validation error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				fmt.Fprint(w, `{"detail":"mode invalid"}`)
			},
			wantStatus:  http.StatusUnprocessableEntity,
			wantErrBody: `{"detail":"mode invalid"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)

			got, err := c.Ask(context.Background(), "What is grace?", core.ModeBoth)
			if tt.wantStatus != 0 {
				var httpErr *HTTPError
				require.True(t, errors.As(err, &httpErr), "expected *HTTPError, got %v", err)
				assert.Equal(t, tt.wantStatus, httpErr.Status)
				assert.Equal(t, tt.wantErrBody, httpErr.Body)
				assert.Contains(t, err.Error(), tt.wantErrBody)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAnswer, got.Answer)
			assert.Equal(t, tt.wantSources, got.Sources)
		})
	}
}

func TestClient_AskSendsQuestionAndMode(t *testing.T) {
	var gotBody map[string]string
	var gotUA, gotCT, gotMethod, gotPath string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		gotCT = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		fmt.Fprint(w, `{"answer":"ok","sources":[]}`)
	})

	_, err := c.Ask(context.Background(), "Why confess to a priest?", core.ModeCatechism)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/qa", gotPath)
	assert.Equal(t, core.AppUserAgent, gotUA)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, map[string]string{"question": "Why confess to a priest?", "mode": "catechism"}, gotBody)
}

func TestClient_AskNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(testConfig{url: url, timeout: time.Second})
	_, err := c.Ask(context.Background(), "q", core.ModeBoth)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request")
}

func TestClient_AskHonoursTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient(testConfig{url: srv.URL, timeout: 50 * time.Millisecond})
	_, err := c.Ask(context.Background(), "q", core.ModeBoth)
	require.Error(t, err)
}

func TestClient_Subscribe(t *testing.T) {
	var gotEmail string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subscribe", r.URL.Path)
		var body struct {
			Email string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotEmail = body.Email
		fmt.Fprint(w, `{"status":"ok"}`)
	})

	require.NoError(t, c.Subscribe(context.Background(), "friend@example.com"))
	assert.Equal(t, "friend@example.com", gotEmail)
}

func TestClient_SubscribeFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "smtp down", http.StatusBadGateway)
	})

	err := c.Subscribe(context.Background(), "friend@example.com")
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.Status)
	assert.Equal(t, "smtp down", httpErr.Body)
}

func TestClient_LogEventSwallowsFailures(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/log_event", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	})

	assert.NotPanics(t, func() {
		c.LogEvent(context.Background(), core.EventModalShown)
	})
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_LiturgicalDay(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/liturgical-day", r.URL.Path)
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"date":"2025-06-15","season":"ordinary","weekday":"Sunday","celebrations":[{"title":"Sample Feast","colour":"white","rank":"Solemnity"}]}`)
	})

	day, err := c.LiturgicalDay(context.Background(), time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "date=2025-06-15", gotQuery)
	assert.Equal(t, "Sample Feast", day.Title())
	assert.Equal(t, "Solemnity", day.Celebrations[0].Rank)

	_, err = c.LiturgicalDay(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "", gotQuery, "zero date leaves the choice to the server")
}

func TestClient_VerseOfTheDay(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		fmt.Fprint(w, `{"verse_text":"I can do all things through Christ who strengthens me.","verse_reference":"Philippians 4:13","explanation":"Strength comes from Christ.","catechism_references":["CCC 2010"]}`)
	})

	v, err := c.VerseOfTheDay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Philippians 4:13", v.Reference)
	assert.Equal(t, []string{"CCC 2010"}, v.CatechismReferences)
}

func TestClient_DecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	})

	_, err := c.VerseOfTheDay(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode /verse-of-the-day")
}

func TestClient_GetRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"verse_reference":"Ps 46:10"}`)
	})

	v, err := c.VerseOfTheDay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ps 46:10", v.Reference)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_GetDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad date", http.StatusBadRequest)
	})

	_, err := c.LiturgicalDay(context.Background(), time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_PostIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Ask(context.Background(), "q", core.ModeBoth)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
