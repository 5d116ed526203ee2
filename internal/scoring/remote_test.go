package scoring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/fpl-predictor/internal/features"
)

func TestRemoteScorer_Score(t *testing.T) {
	var received scoreRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(scoreResponse{PredictedPoints: 6.2})
	}))
	defer server.Close()

	scorer := NewRemoteScorer(server.URL, 50, 30*time.Second)

	v := features.Vector{AvgPointsLast5: 4.0, IsHome: 1.0}
	score, err := scorer.Score(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, 6.2, score)

	require.Len(t, received.Features, features.FieldCount)
	assert.Equal(t, 4.0, received.Features["avg_points_last_5"])
	assert.Equal(t, 1.0, received.Features["is_home"])
}

func TestRemoteScorer_NonOKStatusFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	scorer := NewRemoteScorer(server.URL, 50, 30*time.Second)

	_, err := scorer.Score(context.Background(), features.Vector{})
	assert.Error(t, err)
}

func TestRemoteScorer_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	scorer := NewRemoteScorer(server.URL, 100, time.Minute)

	for i := 0; i < 5; i++ {
		_, err := scorer.Score(context.Background(), features.Vector{})
		require.Error(t, err)
	}

	// once open, calls fail fast without reaching the server
	assert.Less(t, calls, 5)
}
