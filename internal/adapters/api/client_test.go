package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"octofit/internal/adapters/api"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	hits := new(atomic.Int32)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, hits
}

func TestClient_FetchCollection_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantLen int
	}{
		{name: "bare array", body: `[{"id":1},{"id":2}]`, wantLen: 2},
		{name: "envelope", body: `{"count":1,"next":null,"results":[{"id":1}]}`, wantLen: 1},
		{name: "unexpected object", body: `{"detail":"ok"}`, wantLen: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hits := newServer(t, http.StatusOK, tt.body)
			c, err := api.NewClient(srv.URL+"/", time.Second)
			require.NoError(t, err)

			records, err := c.FetchCollection(context.Background(), "/api/users/")
			require.NoError(t, err)
			assert.Len(t, records, tt.wantLen)
			assert.EqualValues(t, 1, hits.Load())
		})
	}
}

func TestClient_FetchCollection_StatusError(t *testing.T) {
	srv, _ := newServer(t, http.StatusInternalServerError, `{"detail":"boom"}`)
	c, err := api.NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	records, err := c.FetchCollection(context.Background(), "/api/teams/")
	require.Error(t, err)
	assert.Nil(t, records)

	var se *api.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "HTTP error! status: 500", err.Error())
}

func TestClient_FetchCollection_InvalidJSON(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `<html>not json</html>`)
	c, err := api.NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = c.FetchCollection(context.Background(), "/api/workouts/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/api/workouts/")
}

func TestClient_FetchCollection_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := api.NewClient(url, time.Second)
	require.NoError(t, err)
	_, err = c.FetchCollection(context.Background(), "/api/leaderboard/")
	require.Error(t, err)
	var se *api.StatusError
	assert.False(t, errors.As(err, &se), "network errors are not status errors")
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := api.NewClient("  ", 0)
	assert.ErrorIs(t, err, api.ErrNoBaseURL)
}

func TestClient_URL(t *testing.T) {
	c, err := api.NewClient("https://octo-8000.app.github.dev/", 0)
	require.NoError(t, err)
	assert.Equal(t, "https://octo-8000.app.github.dev", c.BaseURL())
	assert.Equal(t, "https://octo-8000.app.github.dev/api/users/", c.URL("/api/users/"))
	assert.Equal(t, "https://octo-8000.app.github.dev/api/teams/", c.URL("api/teams/"))
}
