package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Scorer is the inference contract with a trained model: an ordered
// numeric feature vector in, a single score out. Implementations must be
// pure (no side effects) and safe for concurrent use, since one loaded
// model serves all in-flight requests without locking.
type Scorer interface {
	Score(ctx context.Context, features []float64) (float64, error)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(ctx context.Context, features []float64) (float64, error)

func (f ScorerFunc) Score(ctx context.Context, features []float64) (float64, error) {
	return f(ctx, features)
}

// HTTPScorer invokes one named model hosted by an external model-serving
// process. The underlying http.Client is safe for concurrent use, so no
// per-model serialization is needed.
type HTTPScorer struct {
	serviceURL string
	modelName  string
	httpClient *http.Client
}

// NewHTTPScorer creates a scorer for a single hosted model.
func NewHTTPScorer(serviceURL, modelName string) *HTTPScorer {
	return &HTTPScorer{
		serviceURL: serviceURL,
		modelName:  modelName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type scoreRequest struct {
	Features []float64 `json:"features"`
}

type scoreResponse struct {
	Value float64 `json:"value"`
}

// Score sends the ordered feature values to the model server and returns
// the model output. Errors are never papered over with a fallback value:
// a prediction is deterministic, so a failure here is a real failure.
func (s *HTTPScorer) Score(ctx context.Context, features []float64) (float64, error) {
	body, err := json.Marshal(scoreRequest{Features: features})
	if err != nil {
		return 0, fmt.Errorf("scorer %s: failed to marshal request: %w", s.modelName, err)
	}

	url := fmt.Sprintf("%s/score/%s", s.serviceURL, s.modelName)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("scorer %s: failed to create request: %w", s.modelName, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("scorer %s: request failed: %w", s.modelName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("scorer %s: model server returned status %d", s.modelName, resp.StatusCode)
	}

	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("scorer %s: failed to decode response: %w", s.modelName, err)
	}

	return out.Value, nil
}

// Health checks model server connectivity. Called once at startup; a
// failure means the process must not serve predictions.
func (s *HTTPScorer) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", s.serviceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("scorer: failed to create health request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("scorer: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("scorer: health check returned status %d", resp.StatusCode)
	}

	return nil
}
