package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"CryptoPulse/internal/model"
)

// DefaultURL is the alternative.me Fear & Greed index endpoint.
const DefaultURL = "https://api.alternative.me/fng/?limit=1"

// Client fetches the crypto Fear & Greed index.
type Client struct {
	URL    string
	Client *http.Client
}

// NewClient creates a sentiment client with optional proxy support.
func NewClient(endpoint, proxyURL string) *Client {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		URL: endpoint,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

// fngResponse mirrors the API, which encodes numbers as strings.
type fngResponse struct {
	Data []struct {
		Value          string `json:"value"`
		Classification string `json:"value_classification"`
		Timestamp      string `json:"timestamp"`
	} `json:"data"`
	Metadata struct {
		Error *string `json:"error"`
	} `json:"metadata"`
}

// Fetch returns the latest index reading.
func (c *Client) Fetch(ctx context.Context) (*model.Sentiment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("sentiment request: %w", err)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sentiment fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sentiment read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sentiment status %d, body: %s", resp.StatusCode, string(body))
	}

	var r fngResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("sentiment decode: %w", err)
	}
	if r.Metadata.Error != nil && *r.Metadata.Error != "" {
		return nil, fmt.Errorf("sentiment api error: %s", *r.Metadata.Error)
	}
	if len(r.Data) == 0 {
		return nil, fmt.Errorf("sentiment returned no data")
	}

	d := r.Data[0]
	value, err := strconv.Atoi(d.Value)
	if err != nil || value < 0 || value > 100 {
		return nil, fmt.Errorf("sentiment value %q out of range", d.Value)
	}
	s := &model.Sentiment{Value: value, Classification: d.Classification}
	if ts, err := strconv.ParseInt(d.Timestamp, 10, 64); err == nil {
		s.Timestamp = time.Unix(ts, 0).UTC()
	}
	return s, nil
}
