package loadcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/taxifare/internal/domain/fare"
	"github.com/okian/taxifare/pkg/logger"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// estimate submits one trip and decodes the answer.
func estimate(ctx context.Context, client *HTTPClient, url string, trip fare.Request) Result {
	res := Result{Trip: trip}
	resp, err := client.Post(ctx, url, trip)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	defer func() { _ = resp.Body.Close() }()

	res.Status = resp.StatusCode
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	if resp.StatusCode != http.StatusOK {
		res.Err = string(bytes.TrimSpace(body))
		return res
	}
	var a Answer
	if err := json.Unmarshal(body, &a); err != nil {
		res.Err = err.Error()
		return res
	}
	res.Answer = &a
	return res
}

// submitTrips posts trips concurrently using a worker pool. Results keep
// the order of trips.
func submitTrips(ctx context.Context, config *Config, trips []fare.Request, stats *Stats) []Result {
	log := logger.Get()
	log.Info(ctx, "submitting trips", logger.Int("trips", len(trips)), logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/v1/estimate"
	results := make([]Result, len(trips))

	var submitted, ok, failed atomic.Int64

	indexes := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup
	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = estimate(ctx, client, url, trips[i])
				submitted.Add(1)
				if results[i].Answer != nil {
					ok.Add(1)
				} else {
					failed.Add(1)
					if config.Verbose {
						log.Warn(ctx, "trip failed", logger.Int("index", i), logger.Int("status", results[i].Status), logger.String("error", results[i].Err))
					}
				}
			}
		}()
	}

	go func() {
		defer close(indexes)
		for i := range trips {
			select {
			case <-ctx.Done():
				return
			case indexes <- i:
			}
		}
	}()
	wg.Wait()

	stats.TripsSubmitted = int(submitted.Load())
	stats.TripsOK = int(ok.Load())
	stats.TripsFailed = int(failed.Load())
	log.Info(ctx, "trip submission completed",
		logger.Int("ok", stats.TripsOK),
		logger.Int("failed", stats.TripsFailed),
	)
	return results[:stats.TripsSubmitted:stats.TripsSubmitted]
}
