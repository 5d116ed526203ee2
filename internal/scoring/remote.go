package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/jstittsworth/fpl-predictor/internal/features"
	"github.com/jstittsworth/fpl-predictor/pkg/logger"
)

// RemoteScorer calls an externally hosted scoring model over HTTP. Calls are
// rate limited and wrapped in a circuit breaker so a struggling model service
// degrades individual candidates instead of hammering the endpoint.
type RemoteScorer struct {
	url         string
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker
	rateLimiter *rate.Limiter
	logger      *logrus.Logger
}

type scoreRequest struct {
	Features map[string]float64 `json:"features"`
}

type scoreResponse struct {
	PredictedPoints float64 `json:"predicted_points"`
}

func NewRemoteScorer(url string, requestsPerSecond int, breakerTimeout time.Duration) *RemoteScorer {
	log := logger.GetLogger()

	settings := gobreaker.Settings{
		Name:    "scoring-model",
		Timeout: breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &RemoteScorer{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		breaker:     gobreaker.NewCircuitBreaker(settings),
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		logger:      log,
	}
}

func (s *RemoteScorer) Score(ctx context.Context, v features.Vector) (float64, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.call(ctx, v)
	})
	if err != nil {
		return 0, err
	}
	return result.(float64), nil
}

func (s *RemoteScorer) call(ctx context.Context, v features.Vector) (float64, error) {
	body, err := json.Marshal(scoreRequest{Features: v.Named()})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("score request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("scoring model returned status %d", resp.StatusCode)
	}

	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode score response: %w", err)
	}

	return out.PredictedPoints, nil
}
