package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ra-challenge-bot/internal/adapters/metrics"
)

const DefaultBaseURL = "https://retroachievements.org/API"

// HTTPError carries the status code of a non-2xx response so callers can
// distinguish rate-limit responses from other failures.
type HTTPError struct {
	StatusCode int
	Endpoint   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: unexpected status code %d", e.Endpoint, e.StatusCode)
}

// IsRateLimited reports whether err is an HTTP 429 from the API.
func IsRateLimited(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	apiKey     string
}

func NewClient(username, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: NewMetricsRoundTripper(http.DefaultTransport),
		},
		baseURL:  DefaultBaseURL,
		username: username,
		apiKey:   apiKey,
	}
}

// NewTestClient creates a client with custom base URL for testing.
func NewTestClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

func (c *Client) GetUserRecentAchievements(username string, count int) ([]RecentAchievement, error) {
	params := url.Values{}
	params.Set("u", username)
	params.Set("c", strconv.Itoa(count))

	var data []RecentAchievement
	if err := c.getAndDecode("API_GetUserRecentAchievements.php", params, &data); err != nil {
		return nil, fmt.Errorf("fetch recent achievements: %w", err)
	}

	return data, nil
}

func (c *Client) GetGameInfoAndUserProgress(username string, gameID int) (*GameProgressResponse, error) {
	params := url.Values{}
	params.Set("u", username)
	params.Set("g", strconv.Itoa(gameID))

	var data GameProgressResponse
	if err := c.getAndDecode("API_GetGameInfoAndUserProgress.php", params, &data); err != nil {
		return nil, fmt.Errorf("fetch game progress: %w", err)
	}

	return &data, nil
}

func (c *Client) GetGame(gameID int) (*GameResponse, error) {
	params := url.Values{}
	params.Set("i", strconv.Itoa(gameID))

	var data GameResponse
	if err := c.getAndDecode("API_GetGame.php", params, &data); err != nil {
		return nil, fmt.Errorf("fetch game: %w", err)
	}

	return &data, nil
}

func (c *Client) getAndDecode(endpoint string, params url.Values, dest interface{}) error {
	params.Set("z", c.username)
	params.Set("y", c.apiKey)

	resp, err := c.httpClient.Get(fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode()))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{StatusCode: resp.StatusCode, Endpoint: endpoint}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// -- Middleware --

type MetricsRoundTripper struct {
	Proxied http.RoundTripper
}

func NewMetricsRoundTripper(proxied http.RoundTripper) *MetricsRoundTripper {
	if proxied == nil {
		proxied = http.DefaultTransport
	}
	return &MetricsRoundTripper{Proxied: proxied}
}

func (mrt *MetricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := mrt.Proxied.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil {
		status = fmt.Sprintf("%d", resp.StatusCode)
	}

	endpoint := "unknown"
	path := req.URL.Path
	switch {
	case strings.Contains(path, "GetUserRecentAchievements"):
		endpoint = "recent_achievements"
	case strings.Contains(path, "GetGameInfoAndUserProgress"):
		endpoint = "game_progress"
	case strings.Contains(path, "GetGame"):
		endpoint = "game"
	}

	metrics.RARequestDuration.WithLabelValues(endpoint, status).Observe(duration)
	metrics.RARequests.WithLabelValues(endpoint, status).Inc()

	return resp, err
}
